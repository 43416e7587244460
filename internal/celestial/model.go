package celestial

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-planetarium/internal/astro"
)

// ErrUnsupported is returned when the orbital model of the observation
// reference body (Earth) is queried for a position.
var ErrUnsupported = errors.New("unsupported operation")

// tropicalYear is the length of the tropical year in days.
const tropicalYear = 365.242191

// Model computes a body's state from the number of days since J2010.
// Implementations are pure.
type Model[T CelestialObject] interface {
	At(daysSinceJ2010 float64, conv astro.EclipticToEquatorial) (T, error)
}

// PositionFunc is a type-erased Model.
type PositionFunc func(daysSinceJ2010 float64, conv astro.EclipticToEquatorial) (CelestialObject, error)

// PositionOf erases the concrete result type of m.
func PositionOf[T CelestialObject](m Model[T]) PositionFunc {
	return func(days float64, conv astro.EclipticToEquatorial) (CelestialObject, error) {
		obj, err := m.At(days, conv)
		if err != nil {
			return nil, err
		}
		return obj, nil
	}
}

// LookupModel returns the model of the named body: "sun", "moon" or a
// planet name, case-insensitively.
func LookupModel(name string) (PositionFunc, error) {
	switch key := strings.ToLower(strings.TrimSpace(name)); key {
	case "sun":
		return PositionOf[Sun](SunOrbit), nil
	case "moon":
		return PositionOf[Moon](MoonOrbit), nil
	default:
		for _, p := range PlanetModels() {
			if strings.ToLower(p.Name()) == key {
				return PositionOf[Planet](p), nil
			}
		}
	}
	return nil, &astro.DomainError{Op: "celestial.lookup", Value: name, Err: astro.ErrValidation}
}

// Sample evaluates f every step over [start, start+span] and returns the
// equatorial positions in chronological order.
func Sample(f PositionFunc, start time.Time, span, step time.Duration) ([]astro.EquatorialAtTime, error) {
	if step <= 0 || span < 0 {
		return nil, &astro.DomainError{Op: "celestial.sample", Value: fmt.Sprintf("span=%s step=%s", span, step), Err: astro.ErrValidation}
	}

	n := int(span/step) + 1
	out := make([]astro.EquatorialAtTime, 0, n)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * step)
		obj, err := f(astro.J2010.DaysUntil(ts), astro.NewEclipticToEquatorial(ts))
		if err != nil {
			return nil, err
		}
		out = append(out, astro.EquatorialAtTime{Time: ts, Pos: obj.Equatorial()})
	}
	return out, nil
}

// SampleBody looks up the named body and samples it.
func SampleBody(name string, start time.Time, span, step time.Duration) ([]astro.EquatorialAtTime, error) {
	f, err := LookupModel(name)
	if err != nil {
		return nil, err
	}
	return Sample(f, start, span, step)
}

// LookupBody resolves name like LookupModel and falls back to a star of cat
// with that name. A star's position function ignores time.
func LookupBody(name string, cat *StarCatalogue) (PositionFunc, error) {
	f, err := LookupModel(name)
	if err == nil || cat == nil {
		return f, err
	}
	s, ok := cat.StarByName(name)
	if !ok {
		return nil, err
	}
	return func(float64, astro.EclipticToEquatorial) (CelestialObject, error) {
		return s, nil
	}, nil
}
