package celestial

import (
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-planetarium/internal/astro"
)

// StarCatalogue is an immutable set of stars and asterisms. Each asterism
// is also available as indices into the star sequence. It is safe for
// concurrent use.
type StarCatalogue struct {
	stars     []Star
	asterisms []Asterism
	indices   [][]int
}

// NewStarCatalogue builds a catalogue. It fails when an asterism refers to
// a star absent from stars.
func NewStarCatalogue(stars []Star, asterisms []Asterism) (*StarCatalogue, error) {
	pos := make(map[Star]int, len(stars))
	for i, s := range stars {
		if _, dup := pos[s]; !dup {
			pos[s] = i
		}
	}

	indices := make([][]int, len(asterisms))
	for ai, a := range asterisms {
		idx := make([]int, len(a.stars))
		for si, s := range a.stars {
			i, ok := pos[s]
			if !ok {
				return nil, &astro.DomainError{
					Op:    "catalogue.of",
					Value: fmt.Sprintf("asterism %q cites unknown star %q", a.name, s.Name()),
					Err:   astro.ErrValidation,
				}
			}
			idx[si] = i
		}
		indices[ai] = idx
	}

	return &StarCatalogue{
		stars:     append([]Star(nil), stars...),
		asterisms: append([]Asterism(nil), asterisms...),
		indices:   indices,
	}, nil
}

// Stars returns a copy of the stars in catalogue order.
func (c *StarCatalogue) Stars() []Star {
	return append([]Star(nil), c.stars...)
}

// StarCount returns the number of stars.
func (c *StarCatalogue) StarCount() int { return len(c.stars) }

// StarByName returns the first star whose name matches, ignoring case.
func (c *StarCatalogue) StarByName(name string) (Star, bool) {
	for _, s := range c.stars {
		if strings.EqualFold(s.Name(), strings.TrimSpace(name)) {
			return s, true
		}
	}
	return Star{}, false
}

// Asterisms returns a copy of the asterisms.
func (c *StarCatalogue) Asterisms() []Asterism {
	return append([]Asterism(nil), c.asterisms...)
}

// AsterismIndices returns the star indices of the i-th asterism, or nil
// when i is out of range.
func (c *StarCatalogue) AsterismIndices(i int) []int {
	if i < 0 || i >= len(c.indices) {
		return nil
	}
	return append([]int(nil), c.indices[i]...)
}

// Loader ingests records from r into b.
type Loader interface {
	Load(r io.Reader, b *Builder) error
}

// Builder accumulates stars and asterisms before producing an immutable
// StarCatalogue. It is not safe for concurrent use.
type Builder struct {
	stars     []Star
	byID      map[int]int
	asterisms []Asterism
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{byID: make(map[int]int)}
}

// AddStar appends s. Stars with a non-zero id become resolvable by
// StarByID; the first one added wins.
func (b *Builder) AddStar(s Star) *Builder {
	if s.id != 0 {
		if _, ok := b.byID[s.id]; !ok {
			b.byID[s.id] = len(b.stars)
		}
	}
	b.stars = append(b.stars, s)
	return b
}

// AddAsterism appends a.
func (b *Builder) AddAsterism(a Asterism) *Builder {
	b.asterisms = append(b.asterisms, a)
	return b
}

// Stars returns a copy of the stars added so far.
func (b *Builder) Stars() []Star {
	return append([]Star(nil), b.stars...)
}

// StarCount returns the number of stars added so far.
func (b *Builder) StarCount() int { return len(b.stars) }

// StarAt returns the i-th star added, or false when i is out of range.
func (b *Builder) StarAt(i int) (Star, bool) {
	if i < 0 || i >= len(b.stars) {
		return Star{}, false
	}
	return b.stars[i], true
}

// StarByID returns the first star added with the given catalogue id.
func (b *Builder) StarByID(id int) (Star, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Star{}, false
	}
	return b.stars[i], true
}

// Asterisms returns a copy of the asterisms added so far.
func (b *Builder) Asterisms() []Asterism {
	return append([]Asterism(nil), b.asterisms...)
}

// LoadFrom feeds r through l into b.
func (b *Builder) LoadFrom(r io.Reader, l Loader) error {
	return l.Load(r, b)
}

// Build returns the catalogue of everything added so far.
func (b *Builder) Build() (*StarCatalogue, error) {
	return NewStarCatalogue(b.stars, b.asterisms)
}
