package celestial

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/litescript/ls-planetarium/internal/astro"
)

func TestNewStarCatalogue(t *testing.T) {
	a := mustStar(t, 1, "a", 10, 0, 1, 0)
	b := mustStar(t, 2, "b", 20, 0, 1, 0)
	c := mustStar(t, 3, "c", 30, 0, 1, 0)

	ast, err := NewAsterism("line", []Star{c, a})
	if err != nil {
		t.Fatal(err)
	}
	cat, err := NewStarCatalogue([]Star{a, b, c}, []Asterism{ast})
	if err != nil {
		t.Fatalf("NewStarCatalogue() error = %v", err)
	}

	if got := cat.AsterismIndices(0); len(got) != 2 || got[0] != 2 || got[1] != 0 {
		t.Errorf("AsterismIndices(0) = %v, want [2 0]", got)
	}
	if cat.AsterismIndices(1) != nil {
		t.Error("out-of-range AsterismIndices should be nil")
	}

	got := cat.AsterismIndices(0)
	got[0] = 99
	if cat.AsterismIndices(0)[0] != 2 {
		t.Error("AsterismIndices exposes internal state")
	}
}

func TestNewStarCatalogue_UnknownStar(t *testing.T) {
	a := mustStar(t, 1, "a", 10, 0, 1, 0)
	stranger := mustStar(t, 9, "stranger", 50, 0, 1, 0)
	ast, _ := NewAsterism("bad", []Star{a, stranger})

	_, err := NewStarCatalogue([]Star{a}, []Asterism{ast})
	if !errors.Is(err, astro.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// idLoader reads "id ra dec" lines; it stands in for a real catalogue
// format.
type idLoader struct{}

func (idLoader) Load(r io.Reader, b *Builder) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		f := strings.Fields(sc.Text())
		id, _ := strconv.Atoi(f[0])
		ra, _ := strconv.ParseFloat(f[1], 64)
		dec, _ := strconv.ParseFloat(f[2], 64)
		eq, err := astro.EquatorialOf(astro.OfDeg(ra), astro.OfDeg(dec))
		if err != nil {
			continue
		}
		s, err := NewStar(id, "s"+f[0], eq, 0, 0)
		if err != nil {
			continue
		}
		b.AddStar(s)
	}
	return sc.Err()
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	if err := b.LoadFrom(strings.NewReader("10 1 1\n20 2 2\n0 3 3\n30 400 0\n"), idLoader{}); err != nil {
		t.Fatal(err)
	}
	if b.StarCount() != 3 {
		t.Fatalf("StarCount() = %d, want 3", b.StarCount())
	}
	if s, ok := b.StarAt(1); !ok || s.ID() != 20 {
		t.Errorf("StarAt(1) = %+v, %v, want id 20", s, ok)
	}
	for _, i := range []int{-1, 3} {
		if _, ok := b.StarAt(i); ok {
			t.Errorf("StarAt(%d) should be out of range", i)
		}
	}

	s10, ok := b.StarByID(10)
	if !ok {
		t.Fatal("StarByID(10) not found")
	}
	if _, ok := b.StarByID(0); ok {
		t.Error("id 0 must not be resolvable")
	}

	// The view is a copy.
	view := b.Stars()
	view[0] = view[1]
	if s, _ := b.StarAt(0); s != s10 {
		t.Error("Stars() exposes internal state")
	}

	s20, _ := b.StarByID(20)
	ast, _ := NewAsterism("pair", []Star{s10, s20})
	b.AddAsterism(ast)

	cat, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if cat.StarCount() != 3 || len(cat.Asterisms()) != 1 {
		t.Errorf("catalogue has %d stars, %d asterisms", cat.StarCount(), len(cat.Asterisms()))
	}
}
