package vecmath

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, 5, 6)

	if got := a.Add(b); got != New(5, 7, 9) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != New(3, 3, 3) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != New(2, 4, 6) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Cross(b); got != New(-3, 6, -3) {
		t.Errorf("Cross failed: got %v", got)
	}
}

func TestVec3_CrossIsRightHanded(t *testing.T) {
	x, y, z := New(1, 0, 0), New(0, 1, 0), New(0, 0, 1)
	if got := x.Cross(y); got != z {
		t.Errorf("x × y = %v, want %v", got, z)
	}
	if got := y.Cross(z); got != x {
		t.Errorf("y × z = %v, want %v", got, x)
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"zero stays zero", Vec3{}, Vec3{}},
		{"axis", New(0, 3, 0), New(0, 1, 0)},
		{"diagonal", New(3, 4, 0), New(0.6, 0.8, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !got.ApproxEqual(tt.want, 1e-12) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if !got.IsFinite() {
				t.Errorf("Normalize(%v) produced non-finite %v", tt.in, got)
			}
		})
	}
}

func TestVec3_IsFinite(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		valid bool
	}{
		{"zeros", Vec3{}, true},
		{"normal", New(1, -2, 3), true},
		{"with NaN", New(math.NaN(), 0, 0), false},
		{"with +Inf", New(0, math.Inf(1), 0), false},
		{"with -Inf", New(0, 0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.valid {
				t.Errorf("IsFinite() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVec3_ComponentAndWith(t *testing.T) {
	v := New(1, 2, 3)
	for i, want := range []float64{1, 2, 3} {
		if got := v.Component(i); got != want {
			t.Errorf("Component(%d) = %v, want %v", i, got, want)
		}
	}
	if got := v.With(1, 9); got != New(1, 9, 3) {
		t.Errorf("With(1, 9) = %v", got)
	}
	if v != New(1, 2, 3) {
		t.Error("With mutated the receiver")
	}
}
