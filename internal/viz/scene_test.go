package viz

import (
	"math"
	"testing"

	"github.com/san-kum/fieldboost/internal/state"
	"github.com/san-kum/fieldboost/internal/vecmath"
)

func TestArrows_Toggles(t *testing.T) {
	s := state.Default()
	q := s.Quantities()

	if got := len(Arrows(s, q)); got != 13 {
		t.Errorf("all visible: %d arrows, want 13", got)
	}

	s.Display.Primed = false
	if got := len(Arrows(s, q)); got != 7 {
		t.Errorf("unprimed only: %d arrows, want 7", got)
	}

	s.Display = state.Display{}
	arrows := Arrows(s, q)
	if len(arrows) != 1 || arrows[0].Kind != KindBoost {
		t.Errorf("nothing visible: got %+v, want the boost arrow only", arrows)
	}
}

func TestArrows_SkipsNonFinite(t *testing.T) {
	s := state.Default()
	q := s.Quantities()
	q.EPrime = vecmath.New(math.NaN(), 0, 0)
	for _, a := range Arrows(s, q) {
		if a.Label == "E'" {
			t.Error("non-finite E' was drawn")
		}
	}
}

func TestExtent(t *testing.T) {
	if got := Extent(nil); got != 1 {
		t.Errorf("Extent(nil) = %v, want 1", got)
	}
	arrows := []Arrow{{Vec: vecmath.New(3, 4, 0)}, {Vec: vecmath.New(0, 1, 0)}}
	if got := Extent(arrows); got != 5 {
		t.Errorf("Extent = %v, want 5", got)
	}
}

func TestCamera_Project(t *testing.T) {
	tests := []struct {
		name   string
		cam    Camera
		p      vecmath.Vec3
		wx, wy float64
	}{
		{"front", Camera{}, vecmath.New(1, 2, 3), 1, 2},
		{"quarter turn", Camera{Yaw: math.Pi / 2}, vecmath.New(1, 2, 3), -3, 2},
		{"up stays up", DefaultCamera(), vecmath.New(0, 1, 0), 0, math.Cos(DefaultCamera().Pitch)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.cam.Project(tt.p)
			if math.Abs(x-tt.wx) > 1e-12 || math.Abs(y-tt.wy) > 1e-12 {
				t.Errorf("Project = (%v, %v), want (%v, %v)", x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestDrawScene_LongestArrowReachesEdge(t *testing.T) {
	cv := NewCanvas(20, 10)
	arrows := []Arrow{{Kind: KindE, Label: "E", Vec: vecmath.New(1, 0, 0)}}
	DrawScene(cv, arrows, Camera{})
	cx, cy := cv.Width()/2, cv.Height()/2
	radius := float64(min(cv.Width(), cv.Height()))/2 - 2
	if !cv.Lit(cx+int(radius), cy) {
		t.Error("arrow tip not drawn at the scene radius")
	}
}
