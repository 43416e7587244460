package astro

import (
	"errors"
	"math"
	"time"
)

// EquatorialAtTime is an equatorial position sampled at an instant.
type EquatorialAtTime struct {
	Time time.Time
	Pos  Equatorial
}

// VisibilityWindow represents a rise-transit-set cycle for an object.
type VisibilityWindow struct {
	Rise          time.Time // zero when the object is already up at the first sample
	Transit       time.Time // highest point within the samples
	Set           time.Time // zero when the object does not set within the samples
	MaxAltitude   float64   // radians
	Valid         bool
	AlwaysVisible bool // never sets within the samples
	NeverVisible  bool // never rises within the samples
}

// HorizonAltitude is the altitude, in radians, above which an object
// counts as visible.
const HorizonAltitude = 0.0

// ErrInsufficientSamples is returned when fewer than two samples are given.
var ErrInsufficientSamples = errors.New("insufficient samples for visibility calculation")

type altSample struct {
	t   time.Time
	alt float64
}

func altitudes(where Geographic, samples []EquatorialAtTime) []altSample {
	out := make([]altSample, len(samples))
	for i, s := range samples {
		h := NewEquatorialToHorizontal(s.Time, where).Apply(s.Pos)
		out[i] = altSample{t: s.Time, alt: h.alt}
	}
	return out
}

// RiseSet computes rise, transit and set times for an object from
// chronologically ordered position samples. Horizon crossings are found by
// linear interpolation between samples.
func RiseSet(where Geographic, samples []EquatorialAtTime) (VisibilityWindow, error) {
	if len(samples) < 2 {
		return VisibilityWindow{}, ErrInsufficientSamples
	}

	alts := altitudes(where, samples)
	minAlt, maxAlt := math.Inf(1), math.Inf(-1)
	maxIdx := 0
	for i, s := range alts {
		minAlt = math.Min(minAlt, s.alt)
		if s.alt > maxAlt {
			maxAlt = s.alt
			maxIdx = i
		}
	}

	if minAlt > HorizonAltitude {
		return VisibilityWindow{
			Transit:       alts[maxIdx].t,
			MaxAltitude:   maxAlt,
			Valid:         true,
			AlwaysVisible: true,
		}, nil
	}
	if maxAlt < HorizonAltitude {
		return VisibilityWindow{Valid: true, NeverVisible: true}, nil
	}

	var rise, set time.Time
	riseIdx := -1
	for i := 1; i < len(alts); i++ {
		prev, curr := alts[i-1], alts[i]
		if prev.alt <= HorizonAltitude && curr.alt > HorizonAltitude {
			rise = interpolateCrossing(prev.t, curr.t, prev.alt, curr.alt, HorizonAltitude)
			riseIdx = i
			break
		}
	}

	from := 1
	if riseIdx > 0 {
		from = riseIdx + 1
	}
	for i := from; i < len(alts); i++ {
		prev, curr := alts[i-1], alts[i]
		if prev.alt > HorizonAltitude && curr.alt <= HorizonAltitude {
			set = interpolateCrossing(prev.t, curr.t, prev.alt, curr.alt, HorizonAltitude)
			break
		}
	}

	transit, transitAlt := MaxAltitude(where, samples)
	upAtStart := alts[0].alt > HorizonAltitude

	return VisibilityWindow{
		Rise:        rise,
		Transit:     transit,
		Set:         set,
		MaxAltitude: transitAlt,
		Valid:       riseIdx > 0 || !set.IsZero() || upAtStart,
	}, nil
}

// MaxAltitude returns the time and altitude (radians) of the highest
// sample, refined by parabolic interpolation through its neighbours.
func MaxAltitude(where Geographic, samples []EquatorialAtTime) (time.Time, float64) {
	if len(samples) == 0 {
		return time.Time{}, 0
	}
	alts := altitudes(where, samples)

	maxIdx := 0
	for i, s := range alts {
		if s.alt > alts[maxIdx].alt {
			maxIdx = i
		}
	}
	if maxIdx == 0 || maxIdx == len(alts)-1 {
		return alts[maxIdx].t, alts[maxIdx].alt
	}

	// y = a t² + b t + c through t = -1, 0, +1
	y0, y1, y2 := alts[maxIdx-1].alt, alts[maxIdx].alt, alts[maxIdx+1].alt
	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2
	if a >= 0 {
		return alts[maxIdx].t, y1
	}

	tMax := ClosedInterval{low: -1, high: 1}.Clip(-b / (2 * a))
	dt := alts[maxIdx].t.Sub(alts[maxIdx-1].t)
	refined := alts[maxIdx].t.Add(time.Duration(float64(dt) * tMax))
	return refined, a*tMax*tMax + b*tMax + c
}

// interpolateCrossing finds the time when altitude crosses a threshold.
func interpolateCrossing(t1, t2 time.Time, alt1, alt2, threshold float64) time.Time {
	if math.Abs(alt2-alt1) < 1e-9 {
		return t1
	}
	fraction := ClosedInterval{low: 0, high: 1}.Clip((threshold - alt1) / (alt2 - alt1))
	return t1.Add(time.Duration(float64(t2.Sub(t1)) * fraction))
}
