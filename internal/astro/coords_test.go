package astro

import (
	"errors"
	"math"
	"testing"
)

func TestFrameConstructors_Validate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() error
		wantErr bool
	}{
		{"ecliptic lon 2π", func() error { _, err := EclipticOf(Tau, 0); return err }, true},
		{"ecliptic lat π", func() error { _, err := EclipticOf(0, math.Pi); return err }, true},
		{"ecliptic lat -π/2", func() error { _, err := EclipticOf(0, -math.Pi/2); return err }, false},
		{"equatorial negative ra", func() error { _, err := EquatorialOf(-0.1, 0); return err }, true},
		{"equatorial ok", func() error { _, err := EquatorialOf(math.Pi, 0.5); return err }, false},
		{"horizontal az 2π", func() error { _, err := HorizontalOf(Tau, 0); return err }, true},
		{"horizontal alt π/2", func() error { _, err := HorizontalOf(0, math.Pi/2); return err }, false},
		{"geographic lon π", func() error { _, err := GeographicOf(math.Pi, 0); return err }, true},
		{"geographic lon -π", func() error { _, err := GeographicOf(-math.Pi, 0); return err }, false},
		{"geographic NaN lat", func() error { _, err := GeographicOf(0, math.NaN()); return err }, true},
		{"geographic degrees 180", func() error { _, err := GeographicOfDeg(180, 0); return err }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGeographicOfDeg(t *testing.T) {
	g, err := GeographicOfDeg(6.57, 46.52)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(g.LonDeg()-6.57) > 1e-12 || math.Abs(g.LatDeg()-46.52) > 1e-12 {
		t.Errorf("GeographicOfDeg round trip = %s", g)
	}
}

func TestHorizontal_AngularDistanceTo(t *testing.T) {
	north, _ := HorizontalOfDeg(0, 0)
	east, _ := HorizontalOfDeg(90, 0)
	zenith, _ := HorizontalOfDeg(123, 90)
	nearNorth, _ := HorizontalOfDeg(359, 0)

	tests := []struct {
		name string
		a, b Horizontal
		want float64
	}{
		{"same point", north, north, 0},
		{"quarter turn", north, east, 90},
		{"to zenith", east, zenith, 90},
		{"across north", north, nearNorth, 1},
	}
	for _, tt := range tests {
		got := ToDeg(tt.a.AngularDistanceTo(tt.b))
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("%s: AngularDistanceTo = %v°, want %v°", tt.name, got, tt.want)
		}
	}
}

func TestHorizontal_AngularDistanceToSmallSeparations(t *testing.T) {
	for _, sep := range []float64{1e-6, 1e-9, 1e-12} {
		a, _ := HorizontalOf(1.2, 0.4)
		b, _ := HorizontalOf(1.2, 0.4+sep)
		if got := a.AngularDistanceTo(b); math.Abs(got-sep) > 1e-15 {
			t.Errorf("altitude step %g: AngularDistanceTo = %g", sep, got)
		}
		c, _ := HorizontalOf(1.2+sep, 0)
		d, _ := HorizontalOf(1.2, 0)
		if got := c.AngularDistanceTo(d); math.Abs(got-sep) > 1e-15 {
			t.Errorf("azimuth step %g: AngularDistanceTo = %g", sep, got)
		}
	}

	p, _ := HorizontalOf(2.5, -0.3)
	if got := p.AngularDistanceTo(p); got != 0 {
		t.Errorf("AngularDistanceTo(self) = %g, want 0", got)
	}
	antipode, _ := HorizontalOf(2.5+math.Pi, 0.3)
	if got := p.AngularDistanceTo(antipode); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("AngularDistanceTo(antipode) = %v, want π", got)
	}
}

func TestHorizontal_AzOctantName(t *testing.T) {
	tests := []struct {
		az   float64
		want string
	}{
		{0, "N"},
		{22, "N"},
		{23, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{350, "N"},
	}
	for _, tt := range tests {
		h, err := HorizontalOfDeg(tt.az, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got := h.AzOctantName("N", "E", "S", "W"); got != tt.want {
			t.Errorf("AzOctantName(az=%v) = %q, want %q", tt.az, got, tt.want)
		}
	}
}

func TestEquatorial_Units(t *testing.T) {
	eq, err := EquatorialOf(OfHr(6), OfDeg(-16.7))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(eq.RAHr()-6) > 1e-12 || math.Abs(eq.RADeg()-90) > 1e-12 {
		t.Errorf("RA = %vh / %v°", eq.RAHr(), eq.RADeg())
	}
	if math.Abs(eq.DecDeg()+16.7) > 1e-12 {
		t.Errorf("Dec = %v°", eq.DecDeg())
	}
}
