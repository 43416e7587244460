package celestial

import (
	"fmt"
	"math"

	"github.com/litescript/ls-planetarium/internal/astro"
)

var colorIndexRange = mustClosed(-0.5, 5.5)

// Star is a catalogue star. Stars are fixed on the equatorial sphere and
// have no angular size.
type Star struct {
	body
	id         int
	colorIndex float64
}

// NewStar validates and returns a star. id must be non-negative and the
// B-V color index must lie in [-0.5, 5.5].
func NewStar(id int, name string, eq astro.Equatorial, mag, colorIndex float64) (Star, error) {
	if id < 0 {
		return Star{}, &astro.DomainError{Op: "star.of", Value: fmt.Sprintf("id=%d", id), Err: astro.ErrValidation}
	}
	if !colorIndexRange.Contains(colorIndex) {
		return Star{}, &astro.DomainError{Op: "star.of", Value: fmt.Sprintf("ci=%g", colorIndex), Err: astro.ErrValidation}
	}
	b, err := newBody("star.of", name, eq, 0, mag)
	if err != nil {
		return Star{}, err
	}
	return Star{body: b, id: id, colorIndex: colorIndex}, nil
}

func (s Star) Kind() Kind { return KindStar }

// ID returns the external catalogue id, 0 when unknown.
func (s Star) ID() int { return s.id }

// ColorIndex returns the B-V color index.
func (s Star) ColorIndex() float64 { return s.colorIndex }

// ColorTemperature returns the approximate surface temperature in kelvin
// derived from the color index (Ballesteros' formula).
func (s Star) ColorTemperature() int {
	c := 0.92 * s.colorIndex
	return int(math.Floor(4600 * (1/(c+1.7) + 1/(c+0.62))))
}
