// Package celestial models the bodies of the sky, their orbital models, the
// star catalogue and per-instant observed sky snapshots.
package celestial

import (
	"fmt"
	"math"

	"github.com/litescript/ls-planetarium/internal/astro"
)

// Kind identifies the variant of a CelestialObject.
type Kind int

const (
	KindSun Kind = iota
	KindMoon
	KindPlanet
	KindStar
)

func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindMoon:
		return "moon"
	case KindPlanet:
		return "planet"
	case KindStar:
		return "star"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// CelestialObject is the capability shared by every body on the sky.
type CelestialObject interface {
	Name() string
	Equatorial() astro.Equatorial
	AngularSize() float64 // radians
	Magnitude() float64
	Info() string
	Kind() Kind
}

// body holds the fields common to all objects. Every variant embeds it by
// value so the variants stay comparable and usable as map keys.
type body struct {
	name string
	eq   astro.Equatorial
	size float64
	mag  float64
}

func newBody(op, name string, eq astro.Equatorial, size, mag float64) (body, error) {
	if !(size >= 0) || math.IsInf(size, 1) {
		return body{}, &astro.DomainError{Op: op, Value: fmt.Sprintf("size=%g", size), Err: astro.ErrValidation}
	}
	return body{name: name, eq: eq, size: size, mag: mag}, nil
}

func (b body) Name() string                 { return b.name }
func (b body) Equatorial() astro.Equatorial { return b.eq }
func (b body) AngularSize() float64         { return b.size }
func (b body) Magnitude() float64           { return b.mag }
func (b body) Info() string                 { return b.name }
