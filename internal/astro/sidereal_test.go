package astro

import (
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
)

func angleDiff(a, b float64) float64 {
	d := math.Abs(NormalizePositive(a) - NormalizePositive(b))
	return math.Min(d, Tau-d)
}

func TestGreenwichSiderealTime_KnownValue(t *testing.T) {
	// 1980-04-22T14:36:51.67Z has a GST of 4h40m5.23s.
	when := time.Date(1980, 4, 22, 14, 36, 51, 670_000_000, time.UTC)
	want := OfHr(4 + 40.0/60 + 5.23/3600)
	if got := GreenwichSiderealTime(when); angleDiff(got, want) > 1e-6 {
		t.Errorf("GreenwichSiderealTime() = %vh, want %vh", ToHr(got), ToHr(want))
	}
}

func TestGreenwichSiderealTime_MatchesAlmanac(t *testing.T) {
	instants := []time.Time{
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2004, 9, 23, 11, 0, 0, 0, time.UTC),
		time.Date(2020, 3, 20, 3, 49, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 22, 30, 0, 0, time.UTC),
	}

	for _, when := range instants {
		want := float64(sidereal.Mean(julian.TimeToJD(when)).Angle())
		got := GreenwichSiderealTime(when)
		if d := angleDiff(got, want); d > 1e-4 {
			t.Errorf("%v: GreenwichSiderealTime() = %v rad, almanac %v rad (Δ=%v)", when, got, want, d)
		}
	}
}

func TestGreenwichSiderealTime_ZoneIndependent(t *testing.T) {
	utc := time.Date(2024, 6, 15, 0, 30, 0, 0, time.UTC)
	local := utc.In(time.FixedZone("UTC-5", -5*3600))
	if a, b := GreenwichSiderealTime(utc), GreenwichSiderealTime(local); a != b {
		t.Errorf("sidereal time depends on zone: %v vs %v", a, b)
	}
}

func TestLocalSiderealTime(t *testing.T) {
	when := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	gst := GreenwichSiderealTime(when)

	greenwich, _ := GeographicOfDeg(0, 51.48)
	if got := LocalSiderealTime(when, greenwich); got != gst {
		t.Errorf("LST at lon=0 = %v, want GST %v", got, gst)
	}

	east, _ := GeographicOfDeg(90, 0)
	want := NormalizePositive(gst + math.Pi/2)
	if got := LocalSiderealTime(when, east); math.Abs(got-want) > 1e-12 {
		t.Errorf("LST at lon=90 = %v, want %v", got, want)
	}

	for lon := -180.0; lon < 180; lon += 30 {
		where, err := GeographicOfDeg(lon, 0)
		if err != nil {
			t.Fatal(err)
		}
		if lst := LocalSiderealTime(when, where); lst < 0 || lst >= Tau {
			t.Errorf("LST at lon=%v out of range: %v", lon, lst)
		}
	}
}
