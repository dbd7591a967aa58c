package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fieldboost/internal/input"
	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/sweep"
)

// Options configures the interactive application.
type Options struct {
	Theme  string
	Preset string
	// SweepSteps is the number of samples in the |E'| against boost speed
	// sparkline; zero hides it.
	SweepSteps int
}

type TickMsg time.Time

// field is one editable row of the input list.
type field struct {
	key   string // input.Nudge name
	label string
	step  float64
	get   func(state.State) float64
	edit  func(text string) input.Command
}

func componentField(key, label string, v input.Vector, i int) field {
	return field{
		key: key, label: label, step: 0.1,
		get: func(s state.State) float64 {
			if v == input.EField {
				return s.Field.E.Component(i)
			}
			return s.Field.B.Component(i)
		},
		edit: func(text string) input.Command { return input.SetComponent{Vector: v, Component: i, Text: text} },
	}
}

func sphericalFields(prefix, name string, t input.Target) []field {
	vel := func(s state.State) (r, phi, theta float64) {
		v := s.Boost.Velocity
		if t == input.ParticleVelocity {
			v = s.Particle.Velocity
		}
		return v.R, v.Phi, v.Theta
	}
	return []field{
		{key: prefix, label: "|" + name + "|", step: 0.05,
			get:  func(s state.State) float64 { r, _, _ := vel(s); return r },
			edit: func(text string) input.Command { return input.SetSpherical{Target: t, R: text} }},
		{key: prefix + "phi", label: name + " φ°", step: 5,
			get:  func(s state.State) float64 { _, p, _ := vel(s); return input.Degrees(p) },
			edit: func(text string) input.Command { return input.SetSpherical{Target: t, PhiDeg: text} }},
		{key: prefix + "theta", label: name + " θ°", step: 5,
			get:  func(s state.State) float64 { _, _, th := vel(s); return input.Degrees(th) },
			edit: func(text string) input.Command { return input.SetSpherical{Target: t, ThetaDeg: text} }},
	}
}

func fields() []field {
	fs := []field{
		componentField("ex", "Ex", input.EField, 0),
		componentField("ey", "Ey", input.EField, 1),
		componentField("ez", "Ez", input.EField, 2),
		componentField("bx", "Bx", input.BField, 0),
		componentField("by", "By", input.BField, 1),
		componentField("bz", "Bz", input.BField, 2),
	}
	fs = append(fs, sphericalFields("v", "v", input.BoostVelocity)...)
	fs = append(fs, sphericalFields("u", "u", input.ParticleVelocity)...)
	return append(fs,
		field{key: "q", label: "q", step: 0.1,
			get:  func(s state.State) float64 { return s.Particle.Charge },
			edit: func(text string) input.Command { return input.SetCharge{Text: text} }},
		field{key: "m", label: "m", step: 0.1,
			get:  func(s state.State) float64 { return s.Particle.Mass },
			edit: func(text string) input.Command { return input.SetMass{Text: text} }},
	)
}

// Model is the Bubble Tea model of the interactive application.
type Model struct {
	store   *state.Store
	opts    Options
	theme   Theme
	camera  Camera
	fields  []field
	cursor  int
	editing bool
	editBuf string
	preset  string
	status  string
	bars    []Bar
	spark   []float64
	width   int
	height  int
}

func NewModel(st *state.Store, opts Options) Model {
	m := Model{
		store:  st,
		opts:   opts,
		theme:  GetTheme(opts.Theme),
		camera: DefaultCamera(),
		fields: fields(),
		preset: opts.Preset,
		bars:   newBars(),
		width:  100,
		height: 40,
	}
	m.refresh()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

// refresh recomputes everything derived from the store snapshot.
func (m *Model) refresh() {
	s := m.store.Snapshot()
	setTargets(m.bars, s.Quantities())
	m.spark = nil
	if m.opts.SweepSteps < 2 {
		return
	}
	res, err := sweep.Run(context.Background(), s.Input(), sweep.Spec{
		Over: "speed", From: 0, To: m.store.Policy().MaxSpeed, Steps: m.opts.SweepSteps, Workers: 1,
		Policy: m.store.Policy(),
	})
	if err != nil {
		m.status = err.Error()
		return
	}
	m.spark, _ = res.Series("e-prime", "mag")
}

func (m *Model) apply(cmd input.Command) {
	m.status = ""
	if err := cmd.Apply(m.store); err != nil {
		m.status = err.Error()
	}
	m.refresh()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case TickMsg:
		for i := range m.bars {
			m.bars[i].Step()
		}
		return m, tick()
	case tea.KeyMsg:
		if m.editing {
			return m.updateEdit(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.apply(m.fields[m.cursor].edit(m.editBuf))
	case "esc":
		m.editing = false
	case "backspace":
		if len(m.editBuf) > 0 {
			r := []rune(m.editBuf)
			m.editBuf = string(r[:len(r)-1])
		}
	case "ctrl+c":
		return m, tea.Quit
	default:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				if strings.ContainsRune("0123456789.-+eE°", r) {
					m.editBuf += string(r)
				}
			}
		}
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.cursor = (m.cursor + 1) % len(m.fields)
	case "k", "up":
		m.cursor = (m.cursor - 1 + len(m.fields)) % len(m.fields)
	case "h", "left", "l", "right":
		f := m.fields[m.cursor]
		delta := f.step
		if key == "h" || key == "left" {
			delta = -delta
		}
		m.status = ""
		if err := input.Nudge(m.store, f.key, delta); err != nil {
			m.status = err.Error()
		}
		m.refresh()
	case "enter":
		m.editing, m.editBuf = true, ""
	case "f":
		m.apply(input.FlipBoost{})
	case "r":
		m.apply(input.Reset{})
	case "p":
		m.preset = input.NextPreset(m.preset)
		m.apply(input.LoadPreset{Name: m.preset})
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "[":
		m.camera.Rotate(-math.Pi / 12)
	case "]":
		m.camera.Rotate(math.Pi / 12)
	case "1", "2", "3", "4", "5", "6", "7":
		m.apply(input.Toggle{Name: input.ToggleNames[key[0]-'1']})
	}
	return m, nil
}

func (m Model) View() string {
	th := m.theme
	s := m.store.Snapshot()
	q := s.Quantities()

	title := lipgloss.NewStyle().Bold(true).Foreground(th.Title)
	muted := lipgloss.NewStyle().Foreground(th.Muted)

	var left strings.Builder
	left.WriteString(title.Render("FIELDBOOST") + "  " + muted.Render("preset: "+orDash(m.preset)) + "\n\n")
	for i, f := range m.fields {
		val := fmt.Sprintf("%9.4g", f.get(s))
		if m.editing && i == m.cursor {
			val = fmt.Sprintf("%9s", m.editBuf+"_")
		}
		if i == m.cursor {
			left.WriteString(lipgloss.NewStyle().Foreground(th.Accent).Bold(true).Render("▸ "+fmt.Sprintf("%-8s", f.label)) +
				lipgloss.NewStyle().Foreground(th.Text).Bold(true).Render(val) + "\n")
		} else {
			left.WriteString(muted.Render("  "+fmt.Sprintf("%-8s", f.label)+val) + "\n")
		}
	}
	left.WriteString("\n" + muted.Render("display: "+toggleSummary(s.Display)) + "\n")

	cols := max(20, (m.width-30)/2)
	rows := max(8, min(cols/2, m.height/2-4))
	arrows := Arrows(s, q)
	cv := NewCanvas(cols, rows)
	DrawScene(cv, arrows, m.camera)
	scene := cv.Render(func(ink Ink) lipgloss.Style {
		if ink == InkAxis {
			return muted
		}
		a := arrows[int(ink-InkArrow)]
		return lipgloss.NewStyle().Foreground(th.Color(a.Kind)).Faint(a.Primed)
	})

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(28).Render(left.String()),
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(th.Border).Render(scene),
	)

	var b strings.Builder
	b.WriteString(top + "\n")
	b.WriteString(RenderBars(m.bars, 30, th))
	if len(m.spark) > 0 {
		b.WriteString(muted.Render("|E'| vs |v| ") + lipgloss.NewStyle().Foreground(th.E).Render(Sparkline(m.spark, 40)) + "\n")
	}
	b.WriteString(RenderQuantities(s, q, th) + "\n")
	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(th.Warning).Render(m.status) + "\n")
	}
	b.WriteString(muted.Render("j/k select  h/l nudge  enter edit  f flip  r reset  p preset  1-7 toggles  t theme  [/] rotate  q quit"))
	return b.String()
}

func toggleSummary(d state.Display) string {
	parts := make([]string, len(input.ToggleNames))
	for i, name := range input.ToggleNames {
		mark := "·"
		if *input.ToggleFlag(&d, name) {
			mark = "✓"
		}
		parts[i] = fmt.Sprintf("%d%s%s", i+1, mark, name)
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Run starts the interactive application on st and blocks until it quits.
func Run(st *state.Store, opts Options) error {
	_, err := tea.NewProgram(NewModel(st, opts), tea.WithAltScreen()).Run()
	return err
}
