package celestial

import (
	"fmt"

	"github.com/litescript/ls-planetarium/internal/astro"
)

var unitPhase = mustClosed(0, 1)

// Moon is the Moon's state at an instant.
type Moon struct {
	body
	phase float64
}

// NewMoon validates and returns a Moon snapshot. phase is the illuminated
// fraction in [0, 1].
func NewMoon(eq astro.Equatorial, size, mag, phase float64) (Moon, error) {
	if !unitPhase.Contains(phase) {
		return Moon{}, &astro.DomainError{Op: "moon.of", Value: fmt.Sprintf("phase=%g", phase), Err: astro.ErrValidation}
	}
	b, err := newBody("moon.of", "Moon", eq, size, mag)
	if err != nil {
		return Moon{}, err
	}
	return Moon{body: b, phase: phase}, nil
}

func (m Moon) Kind() Kind { return KindMoon }

// Phase returns the illuminated fraction in [0, 1].
func (m Moon) Phase() float64 { return m.phase }

// Info renders the name with the phase as a percentage, e.g. "Moon (37.5%)".
func (m Moon) Info() string {
	return fmt.Sprintf("%s (%.1f%%)", m.name, m.phase*100)
}

func mustClosed(low, high float64) astro.ClosedInterval {
	i, err := astro.NewClosedInterval(low, high)
	if err != nil {
		panic(err)
	}
	return i
}
