package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fieldboost/internal/lorentz"
)

const fps = 60

// Bar is a magnitude gauge whose displayed value follows its target on a
// critically damped spring.
type Bar struct {
	Label  string
	Kind   Kind
	Pos    float64
	Target float64
	vel    float64
	spring harmonica.Spring
}

func newBar(label string, kind Kind) Bar {
	return Bar{Label: label, Kind: kind, spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0)}
}

// Step advances the spring by one frame. Non-finite targets snap to zero.
func (b *Bar) Step() {
	target := b.Target
	if !isFinite(target) {
		target = 0
	}
	b.Pos, b.vel = b.spring.Update(b.Pos, b.vel, target)
}

// Settled reports whether the bar is within tol of its target and at rest.
func (b Bar) Settled(tol float64) bool {
	target := b.Target
	if !isFinite(target) {
		target = 0
	}
	return math.Abs(b.Pos-target) < tol && math.Abs(b.vel) < tol
}

func newBars() []Bar {
	return []Bar{
		newBar("|E'|", KindE),
		newBar("|B'|", KindB),
		newBar("|S'|", KindPoynting),
		newBar("|u'|", KindVelocity),
		newBar("|F'|", KindForce),
		newBar("|a'|", KindAccel),
	}
}

func setTargets(bars []Bar, q lorentz.Quantities) {
	targets := []float64{
		q.EPrime.Length(),
		q.BPrime.Length(),
		q.PoyntingPrime.Length(),
		q.ParticleVelocityPrime.Length(),
		q.LorentzForcePrime.Length(),
		q.ParticleAccelerationPrime.Length(),
	}
	for i := range bars {
		bars[i].Target = targets[i]
	}
}

// RenderBars draws each bar scaled to the largest target.
func RenderBars(bars []Bar, width int, th Theme) string {
	var full float64
	for _, b := range bars {
		if isFinite(b.Target) {
			full = math.Max(full, b.Target)
		}
	}
	if full == 0 {
		full = 1
	}
	label := lipgloss.NewStyle().Foreground(th.Muted).Width(6)
	value := lipgloss.NewStyle().Foreground(th.Text)
	var out strings.Builder
	for _, b := range bars {
		filled := int(math.Round(b.Pos / full * float64(width)))
		filled = max(0, min(width, filled))
		bar := lipgloss.NewStyle().Foreground(th.Color(b.Kind)).Render(strings.Repeat("█", filled)) +
			lipgloss.NewStyle().Foreground(th.Border).Render(strings.Repeat("░", width-filled))
		out.WriteString(label.Render(b.Label) + bar + " " + value.Render(formatValue(b.Target)) + "\n")
	}
	return out.String()
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as one row of block characters, resampled to
// width. Non-finite values are drawn as blanks.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if isFinite(v) {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	span := hi - lo
	if span <= 0 || !isFinite(span) {
		span = 1
	}
	var b strings.Builder
	for i := 0; i < width; i++ {
		v := values[i*len(values)/width]
		if !isFinite(v) {
			b.WriteRune(' ')
			continue
		}
		idx := int((v - lo) / span * float64(len(sparkChars)-1))
		b.WriteRune(sparkChars[max(0, min(len(sparkChars)-1, idx))])
	}
	return b.String()
}
