package astro

import (
	"math"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestEclipticToEquatorial_Obliquity(t *testing.T) {
	conv := NewEclipticToEquatorial(time.Date(2009, 7, 6, 23, 0, 0, 0, time.UTC))
	if got := ToDeg(conv.Obliquity()); math.Abs(got-23.43805531) > 1e-5 {
		t.Errorf("Obliquity() = %v°, want 23.43805531°", got)
	}
}

func TestEclipticToEquatorial_Apply(t *testing.T) {
	conv := NewEclipticToEquatorial(time.Date(2009, 7, 6, 0, 0, 0, 0, time.UTC))
	lon, _ := OfDMS(139, 41, 10)
	lat, _ := OfDMS(4, 52, 31)
	ecl, err := EclipticOf(lon, lat)
	if err != nil {
		t.Fatal(err)
	}

	eq := conv.Apply(ecl)
	wantRA := 9 + 34.0/60 + 53.32/3600
	wantDec := 19 + 32.0/60 + 6.01/3600
	if math.Abs(eq.RAHr()-wantRA) > 1e-5 {
		t.Errorf("RA = %vh, want %vh", eq.RAHr(), wantRA)
	}
	if math.Abs(eq.DecDeg()-wantDec) > 1e-5 {
		t.Errorf("Dec = %v°, want %v°", eq.DecDeg(), wantDec)
	}
}

func TestFromHourAngle_TextbookFixture(t *testing.T) {
	hourAngle := OfHr(5 + 51.0/60 + 44.0/3600)
	dec, _ := OfDMS(23, 13, 10)
	lat := OfDeg(52)

	h := fromHourAngle(hourAngle, dec, math.Sin(lat), math.Cos(lat))
	if math.Abs(h.AltDeg()-19.33434522438047) > 1e-9 {
		t.Errorf("alt = %v°, want 19.334345°", h.AltDeg())
	}
	if math.Abs(h.AzDeg()-283.27102726727486) > 1e-9 {
		t.Errorf("az = %v°, want 283.271027°", h.AzDeg())
	}
}

func TestEquatorialToHorizontal_Poles(t *testing.T) {
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	northPole, _ := GeographicOfDeg(0, 90)
	conv := NewEquatorialToHorizontal(when, northPole)

	for _, raHr := range []float64{0, 6, 13.5, 23.9} {
		eq, err := EquatorialOf(OfHr(raHr), OfDeg(40))
		if err != nil {
			t.Fatal(err)
		}
		if got := conv.Apply(eq).AltDeg(); math.Abs(got-40) > 1e-9 {
			t.Errorf("ra=%vh: alt at the pole = %v°, want the declination 40°", raHr, got)
		}
	}
}

func TestEquatorialToHorizontal_Meridian(t *testing.T) {
	when := time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC)
	where, _ := GeographicOfDeg(6.57, 46.52)
	conv := NewEquatorialToHorizontal(when, where)

	// An object whose RA equals the local sidereal time transits due south.
	eq, _ := EquatorialOf(conv.LocalSiderealTime(), OfDeg(10))
	h := conv.Apply(eq)
	if math.Abs(h.AzDeg()-180) > 1e-9 {
		t.Errorf("az = %v°, want 180°", h.AzDeg())
	}
	if want := 90 - 46.52 + 10; math.Abs(h.AltDeg()-want) > 1e-9 {
		t.Errorf("alt = %v°, want %v°", h.AltDeg(), want)
	}
}

func TestConversions_StayInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		when := time.Unix(rapid.Int64Range(0, 4_000_000_000).Draw(t, "unix"), 0).UTC()
		lon := rapid.Float64Range(0, Tau).Filter(func(v float64) bool { return v < Tau }).Draw(t, "lon")
		lat := rapid.Float64Range(-math.Pi/2, math.Pi/2).Draw(t, "lat")
		obsLon := rapid.Float64Range(-math.Pi, math.Pi).Filter(func(v float64) bool { return v < math.Pi }).Draw(t, "obsLon")
		obsLat := rapid.Float64Range(-math.Pi/2, math.Pi/2).Draw(t, "obsLat")

		ecl, err := EclipticOf(lon, lat)
		if err != nil {
			t.Fatal(err)
		}
		where, err := GeographicOf(obsLon, obsLat)
		if err != nil {
			t.Fatal(err)
		}

		eq := NewEclipticToEquatorial(when).Apply(ecl)
		if _, err := EquatorialOf(eq.RA(), eq.Dec()); err != nil {
			t.Fatalf("equatorial out of range: %v", err)
		}
		h := NewEquatorialToHorizontal(when, where).Apply(eq)
		if _, err := HorizontalOf(h.Az(), h.Alt()); err != nil {
			t.Fatalf("horizontal out of range: %v", err)
		}
	})
}
