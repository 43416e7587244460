package celestial

import "github.com/litescript/ls-planetarium/internal/astro"

// Asterism is a named, ordered, non-empty sequence of stars.
type Asterism struct {
	name  string
	stars []Star
}

// NewAsterism returns an asterism over a copy of stars.
func NewAsterism(name string, stars []Star) (Asterism, error) {
	if len(stars) == 0 {
		return Asterism{}, &astro.DomainError{Op: "asterism.of", Value: name, Err: astro.ErrValidation}
	}
	return Asterism{name: name, stars: append([]Star(nil), stars...)}, nil
}

func (a Asterism) Name() string { return a.name }

// Stars returns a copy of the member stars.
func (a Asterism) Stars() []Star {
	return append([]Star(nil), a.stars...)
}

// Len returns the number of member stars.
func (a Asterism) Len() int { return len(a.stars) }
