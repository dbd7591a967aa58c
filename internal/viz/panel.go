package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

// NonFiniteWarning is shown under the panel when any output is NaN or Inf.
const NonFiniteWarning = "non-finite output: check that |v| < 1, |u| < 1 and m > 0"

type panelRow struct {
	cells []string
	bad   []bool
}

func vectorRow(label string, v vecmath.Vec3) panelRow {
	vals := []float64{v.X, v.Y, v.Z, v.Length()}
	r := panelRow{cells: []string{label}, bad: []bool{false}}
	for _, x := range vals {
		r.cells = append(r.cells, formatValue(x))
		r.bad = append(r.bad, !isFinite(x))
	}
	return r
}

func scalarRow(label string, vals ...float64) panelRow {
	r := panelRow{cells: []string{label}, bad: []bool{false}}
	for i := 0; i < 4; i++ {
		if i >= len(vals) {
			r.cells = append(r.cells, "")
			r.bad = append(r.bad, false)
			continue
		}
		r.cells = append(r.cells, formatValue(vals[i]))
		r.bad = append(r.bad, !isFinite(vals[i]))
	}
	return r
}

// QuantityRows returns the panel contents: the unprimed inputs, every
// derived vector and the frame scalars.
func QuantityRows(s state.State, q lorentz.Quantities) [][]string {
	rows := quantityRows(s, q)
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.cells
	}
	return out
}

func quantityRows(s state.State, q lorentz.Quantities) []panelRow {
	us := q.ParticleVelocityPrimeSpherical
	return []panelRow{
		vectorRow("v", q.BoostVelocity),
		vectorRow("E", s.Field.E),
		vectorRow("E'", q.EPrime),
		vectorRow("B", s.Field.B),
		vectorRow("B'", q.BPrime),
		vectorRow("S", q.Poynting),
		vectorRow("S'", q.PoyntingPrime),
		vectorRow("u", q.ParticleVelocity),
		vectorRow("u'", q.ParticleVelocityPrime),
		vectorRow("F", q.LorentzForce),
		vectorRow("F'", q.LorentzForcePrime),
		vectorRow("a", q.ParticleAcceleration),
		vectorRow("a'", q.ParticleAccelerationPrime),
		scalarRow("u' (r φ° θ°)", us.R, us.Phi*180/math.Pi, us.Theta*180/math.Pi),
		scalarRow("γ η (boost)", q.BoostGamma, q.BoostRapidity),
		scalarRow("γ γ' (particle)", q.ParticleGamma, q.ParticleGammaPrime),
		scalarRow("E·B E·B'", q.Invariants.Dot, q.InvariantsPrime.Dot),
		scalarRow("E²-B² (both)", q.Invariants.Difference, q.InvariantsPrime.Difference),
	}
}

// RenderQuantities renders the derived quantities as a bordered table.
// Non-finite values are shown in the theme's error color and a warning
// line is appended.
func RenderQuantities(s state.State, q lorentz.Quantities, th Theme) string {
	rows := quantityRows(s, q)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.cells
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(th.Title).Padding(0, 1)
	label := lipgloss.NewStyle().Foreground(th.Accent).Padding(0, 1)
	value := lipgloss.NewStyle().Foreground(th.Text).Padding(0, 1).Align(lipgloss.Right)
	bad := value.Foreground(th.Error).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(th.Border)).
		Headers("", "x", "y", "z", "|·|").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0:
				return label
			case row >= 0 && row < len(rows) && rows[row].bad[col]:
				return bad
			}
			return value
		})

	var b strings.Builder
	b.WriteString(t.Render())
	if !q.IsFinite() {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(th.Warning).Bold(true).Render("⚠ " + NonFiniteWarning))
	}
	return b.String()
}

func formatValue(x float64) string {
	if !isFinite(x) {
		return fmt.Sprint(x)
	}
	if x == 0 {
		return "0"
	}
	return fmt.Sprintf("%.4g", x)
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
