package astro

import (
	"math"
	"strconv"
	"strings"
)

// Polynomial holds coefficients from the highest degree down to the
// constant term.
type Polynomial struct {
	coeffs []float64
}

// NewPolynomial builds c_n x^n + ... + c_0 from (c_n, c_{n-1}, ..., c_0).
// The leading coefficient must be non-zero.
func NewPolynomial(leading float64, rest ...float64) (Polynomial, error) {
	if leading == 0 {
		return Polynomial{}, invalid("polynomial.of", "leading=0")
	}
	coeffs := make([]float64, 0, len(rest)+1)
	coeffs = append(coeffs, leading)
	coeffs = append(coeffs, rest...)
	return Polynomial{coeffs: coeffs}, nil
}

func mustPolynomial(leading float64, rest ...float64) Polynomial {
	p, err := NewPolynomial(leading, rest...)
	if err != nil {
		panic(err)
	}
	return p
}

// Degree returns the polynomial's degree.
func (p Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// At evaluates the polynomial with Horner's method.
func (p Polynomial) At(x float64) float64 {
	var acc float64
	for _, c := range p.coeffs {
		acc = acc*x + c
	}
	return acc
}

// String renders the polynomial, e.g. "x^2-2x+3.5".
func (p Polynomial) String() string {
	var b strings.Builder
	deg := p.Degree()
	for i, c := range p.coeffs {
		power := deg - i
		if c == 0 {
			continue
		}
		switch {
		case c < 0:
			b.WriteByte('-')
		case b.Len() > 0:
			b.WriteByte('+')
		}
		abs := math.Abs(c)
		if abs != 1 || power == 0 {
			b.WriteString(strconv.FormatFloat(abs, 'g', -1, 64))
		}
		switch {
		case power == 1:
			b.WriteByte('x')
		case power > 1:
			b.WriteString("x^" + strconv.Itoa(power))
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}
