package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fieldboost/internal/state"
)

func newTestModel(t *testing.T) (Model, *state.Store) {
	t.Helper()
	st, err := state.New(state.DefaultPolicy(), state.Default())
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(st, Options{Theme: "minimal", SweepSteps: 16}), st
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModel_EditField(t *testing.T) {
	m, st := newTestModel(t)
	m = press(t, m, "enter", "0", ".", "3", "enter")
	if got := st.Snapshot().Field.E.X; got != 0.3 {
		t.Errorf("Ex = %v, want 0.3", got)
	}
	if m.editing {
		t.Error("still editing after enter")
	}

	m = press(t, m, "enter", "9", "esc")
	if got := st.Snapshot().Field.E.X; got != 0.3 {
		t.Errorf("Ex = %v after cancelled edit, want 0.3", got)
	}
}

func TestModel_Nudge(t *testing.T) {
	m, st := newTestModel(t)
	m = press(t, m, "down", "l", "l")
	if got := st.Snapshot().Field.E.Y; math.Abs(got-1.2) > 1e-12 {
		t.Errorf("Ey = %v, want 1.2", got)
	}
	_ = m
}

func TestModel_Hotkeys(t *testing.T) {
	m, st := newTestModel(t)

	m = press(t, m, "f")
	if v := st.Snapshot().Boost.Velocity.Cartesian(); math.Abs(v.X+0.5) > 1e-12 {
		t.Errorf("boost after flip = %v, want (-0.5, 0, 0)", v)
	}

	m = press(t, m, "1")
	if st.Snapshot().Display.E {
		t.Error("E still visible after toggle")
	}

	m = press(t, m, "r")
	if v := st.Snapshot().Boost.Velocity.Cartesian(); math.Abs(v.X-0.5) > 1e-12 {
		t.Errorf("boost after reset = %v, want (0.5, 0, 0)", v)
	}
	if st.Snapshot().Display.E {
		t.Error("reset changed display toggles")
	}

	m = press(t, m, "t")
	if m.theme.Name != "ocean" {
		t.Errorf("theme after t = %q, want ocean", m.theme.Name)
	}

	m = press(t, m, "p")
	if m.preset == "" {
		t.Error("p did not select a preset")
	}
}

func TestModel_SparklineAndView(t *testing.T) {
	m, _ := newTestModel(t)
	if len(m.spark) != 16 {
		t.Errorf("spark has %d samples, want 16", len(m.spark))
	}
	view := m.View()
	for _, want := range []string{"FIELDBOOST", "Ex", "|E'|"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_TickAnimatesBars(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Error("tick did not schedule the next frame")
	}
	if next.(Model).bars[0].Pos == 0 {
		t.Error("bar did not move toward its target")
	}
}
