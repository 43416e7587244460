package celestial

import "github.com/litescript/ls-planetarium/internal/astro"

// Sun is the Sun's state at an instant.
type Sun struct {
	body
	ecliptic    astro.Ecliptic
	meanAnomaly float64
}

// NewSun validates and returns a Sun snapshot.
func NewSun(ecliptic astro.Ecliptic, eq astro.Equatorial, size, meanAnomaly float64) (Sun, error) {
	b, err := newBody("sun.of", "Sun", eq, size, sunMagnitude)
	if err != nil {
		return Sun{}, err
	}
	return Sun{body: b, ecliptic: ecliptic, meanAnomaly: meanAnomaly}, nil
}

func (s Sun) Kind() Kind { return KindSun }

// Ecliptic returns the Sun's ecliptic position.
func (s Sun) Ecliptic() astro.Ecliptic { return s.ecliptic }

// MeanAnomaly returns the mean anomaly in radians, in [0, 2π).
func (s Sun) MeanAnomaly() float64 { return s.meanAnomaly }
