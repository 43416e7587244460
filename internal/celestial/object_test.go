package celestial

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/ls-planetarium/internal/astro"
)

func mustEquatorialDeg(t *testing.T, raDeg, decDeg float64) astro.Equatorial {
	t.Helper()
	eq, err := astro.EquatorialOf(astro.OfDeg(raDeg), astro.OfDeg(decDeg))
	if err != nil {
		t.Fatal(err)
	}
	return eq
}

func mustStar(t *testing.T, id int, name string, raDeg, decDeg, mag, ci float64) Star {
	t.Helper()
	s, err := NewStar(id, name, mustEquatorialDeg(t, raDeg, decDeg), mag, ci)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStar_ColorTemperature(t *testing.T) {
	tests := []struct {
		name string
		ci   float64
		want int
	}{
		{"Rigel", -0.03, 10515},
		{"neutral", 0, 10125},
		{"Betelgeuse", 1.5, 3793},
	}
	for _, tt := range tests {
		s := mustStar(t, 1, tt.name, 0, 0, 0, tt.ci)
		if got := s.ColorTemperature(); got != tt.want {
			t.Errorf("%s: ColorTemperature() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestNewStar_Validation(t *testing.T) {
	eq := mustEquatorialDeg(t, 10, 10)
	tests := []struct {
		name string
		id   int
		ci   float64
	}{
		{"negative id", -1, 0},
		{"color index too blue", 1, -0.6},
		{"color index too red", 1, 5.6},
	}
	for _, tt := range tests {
		if _, err := NewStar(tt.id, "x", eq, 1, tt.ci); !errors.Is(err, astro.ErrValidation) {
			t.Errorf("%s: error = %v, want ErrValidation", tt.name, err)
		}
	}
}

func TestNewMoon_Validation(t *testing.T) {
	eq := mustEquatorialDeg(t, 10, 10)
	if _, err := NewMoon(eq, 0.009, 0, 1.01); !errors.Is(err, astro.ErrValidation) {
		t.Errorf("phase > 1: error = %v, want ErrValidation", err)
	}
	if _, err := NewMoon(eq, -0.1, 0, 0.5); !errors.Is(err, astro.ErrValidation) {
		t.Errorf("negative size: error = %v, want ErrValidation", err)
	}
	if _, err := NewPlanet("Mars", eq, math.NaN(), 0, Distances{}, 1); !errors.Is(err, astro.ErrValidation) {
		t.Errorf("NaN size: error = %v, want ErrValidation", err)
	}
}

func TestInfo(t *testing.T) {
	eq := mustEquatorialDeg(t, 10, 10)
	moon, err := NewMoon(eq, 0.009, 0, 0.375)
	if err != nil {
		t.Fatal(err)
	}
	if got := moon.Info(); got != "Moon (37.5%)" {
		t.Errorf("Moon.Info() = %q", got)
	}

	star := mustStar(t, 32349, "Sirius", 101.2875, -16.7161, -1.44, 0.009)
	if got := star.Info(); got != "Sirius" {
		t.Errorf("Star.Info() = %q", got)
	}
	if star.Kind() != KindStar || star.Kind().String() != "star" {
		t.Errorf("Kind() = %v", star.Kind())
	}
}

func TestNewAsterism(t *testing.T) {
	if _, err := NewAsterism("empty", nil); !errors.Is(err, astro.ErrValidation) {
		t.Errorf("empty asterism error = %v, want ErrValidation", err)
	}

	a := mustStar(t, 1, "a", 1, 1, 1, 0)
	b := mustStar(t, 2, "b", 2, 2, 1, 0)
	stars := []Star{a, b}
	ast, err := NewAsterism("pair", stars)
	if err != nil {
		t.Fatal(err)
	}
	stars[0] = b
	if got := ast.Stars(); got[0] != a {
		t.Error("asterism shares its backing array with the caller")
	}
}
