package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/fieldboost/internal/lorentz"
	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/vecmath"
	"github.com/san-kum/fieldboost/internal/viz"
)

// VectorsSVG draws the visible vectors of a scenario as labelled arrows in
// the default isometric view. Primed arrows are dashed.
func VectorsSVG(s state.State, q lorentz.Quantities, size int, th viz.Theme) string {
	arrows := viz.Arrows(s, q)
	cam := viz.DefaultCamera()
	c := float64(size) / 2
	radius := c * 0.8
	scale := radius / viz.Extent(arrows)
	screen := func(p vecmath.Vec3) (float64, float64) {
		x, y := cam.Project(p)
		return c + x, c - y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g font-family="monospace" font-size="%.0f">
`, size, size, size, size, math.Max(10, float64(size)/40)))

	for i, axis := range []string{"x", "y", "z"} {
		tip := vecmath.Vec3{}.With(i, radius*1.05)
		x0, y0 := screen(tip.Neg())
		x1, y1 := screen(tip)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>
<text x="%.1f" y="%.1f" fill="%s">%s</text>
`, x0, y0, x1, y1, th.Muted, x1+4, y1, th.Muted, axis))
	}

	for _, a := range arrows {
		color := string(th.Color(a.Kind))
		x1, y1 := screen(a.Vec.Scale(scale))
		dash := ""
		if a.Primed {
			dash = ` stroke-dasharray="6 3"`
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"%s/>
`, c, c, x1, y1, color, dash))
		if head := arrowHead(c, c, x1, y1); head != "" {
			sb.WriteString(fmt.Sprintf(`<polygon points="%s" fill="%s"/>
`, head, color))
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">%s</text>
`, x1+6, y1-6, color, a.Label))
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func arrowHead(x0, y0, x1, y1 float64) string {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length < 1 {
		return ""
	}
	head := math.Min(12, length/3)
	back := math.Atan2(-dy, -dx)
	pts := []string{fmt.Sprintf("%.1f,%.1f", x1, y1)}
	for _, spread := range []float64{-math.Pi / 8, math.Pi / 8} {
		a := back + spread
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", x1+head*math.Cos(a), y1+head*math.Sin(a)))
	}
	return strings.Join(pts, " ")
}

// SeriesSVG plots ys against xs as a polyline. Non-finite points break the
// line. It returns "" when fewer than two finite points remain.
func SeriesSVG(xs, ys []float64, width, height int, stroke string) string {
	n := min(len(xs), len(ys))
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	finite := 0
	for i := 0; i < n; i++ {
		if !finitePoint(xs[i], ys[i]) {
			continue
		}
		finite++
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	if finite < 2 {
		return ""
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, stroke))

	move := true
	for i := 0; i < n; i++ {
		if !finitePoint(xs[i], ys[i]) {
			move = true
			continue
		}
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		cmd := "L"
		if move {
			cmd, move = "M", false
		}
		sb.WriteString(fmt.Sprintf("%s%.1f,%.1f ", cmd, x, y))
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}

func finitePoint(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}
