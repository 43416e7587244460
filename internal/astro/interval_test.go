package astro

import (
	"errors"
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestNewClosedInterval_RejectsEmpty(t *testing.T) {
	for _, bounds := range [][2]float64{{1, 1}, {2, 1}, {math.NaN(), 1}} {
		if _, err := NewClosedInterval(bounds[0], bounds[1]); !errors.Is(err, ErrValidation) {
			t.Errorf("NewClosedInterval(%v, %v) error = %v, want ErrValidation", bounds[0], bounds[1], err)
		}
		if _, err := NewRightOpenInterval(bounds[0], bounds[1]); !errors.Is(err, ErrValidation) {
			t.Errorf("NewRightOpenInterval(%v, %v) error = %v, want ErrValidation", bounds[0], bounds[1], err)
		}
	}
}

func TestClosedInterval_Contains(t *testing.T) {
	iv, err := NewClosedInterval(-1, 2)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		v    float64
		want bool
	}{
		{-1, true},
		{2, true},
		{0.5, true},
		{-1.0001, false},
		{2.0001, false},
	}
	for _, tt := range tests {
		if got := iv.Contains(tt.v); got != tt.want {
			t.Errorf("%s.Contains(%v) = %v, want %v", iv, tt.v, got, tt.want)
		}
	}
}

func TestRightOpenInterval_Contains(t *testing.T) {
	iv, err := SymmetricRightOpenInterval(2)
	if err != nil {
		t.Fatal(err)
	}
	if !iv.Contains(-1) {
		t.Error("expected low bound to be contained")
	}
	if iv.Contains(1) {
		t.Error("expected high bound to be excluded")
	}
}

func TestRightOpenInterval_Reduce(t *testing.T) {
	iv, err := NewRightOpenInterval(-180, 180)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		v, want float64
	}{
		{0, 0},
		{180, -180},
		{-180, -180},
		{190.5, -169.5},
		{-190.5, 169.5},
		{540, -180},
		{359.25, -0.75},
	}
	for _, tt := range tests {
		if got := iv.Reduce(tt.v); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Reduce(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestIntervalString(t *testing.T) {
	c, _ := NewClosedInterval(0, 1)
	r, _ := NewRightOpenInterval(0, 1)
	if got := c.String(); got != "[0,1]" {
		t.Errorf("closed String() = %q", got)
	}
	if got := r.String(); got != "[0,1[" {
		t.Errorf("right-open String() = %q", got)
	}
}

func TestReduceAndClip_StayInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		low := rapid.Float64Range(-1e3, 1e3).Draw(t, "low")
		size := rapid.Float64Range(1e-3, 1e3).Draw(t, "size")
		v := rapid.Float64Range(-1e6, 1e6).Draw(t, "v")

		ro, err := NewRightOpenInterval(low, low+size)
		if err != nil {
			t.Fatal(err)
		}
		if r := ro.Reduce(v); !ro.Contains(r) {
			t.Fatalf("%s.Reduce(%v) = %v escapes interval", ro, v, r)
		}

		cl, err := NewClosedInterval(low, low+size)
		if err != nil {
			t.Fatal(err)
		}
		if c := cl.Clip(v); !cl.Contains(c) {
			t.Fatalf("%s.Clip(%v) = %v escapes interval", cl, v, c)
		}
	})
}
