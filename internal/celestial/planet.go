package celestial

import "github.com/litescript/ls-planetarium/internal/astro"

// Distances holds heliocentric distances in kilometres.
type Distances struct {
	Perihelion float64
	Aphelion   float64
	Mean       float64
}

// Planet is a planet's state at an instant as seen from Earth.
type Planet struct {
	body
	distances Distances
	distance  float64 // geocentric, AU
}

// NewPlanet validates and returns a Planet snapshot.
func NewPlanet(name string, eq astro.Equatorial, size, mag float64, distances Distances, distanceAU float64) (Planet, error) {
	b, err := newBody("planet.of", name, eq, size, mag)
	if err != nil {
		return Planet{}, err
	}
	return Planet{body: b, distances: distances, distance: distanceAU}, nil
}

func (p Planet) Kind() Kind { return KindPlanet }

// Distances returns the planet's perihelion, aphelion and mean distance.
func (p Planet) Distances() Distances { return p.distances }

// DistanceAU returns the distance to Earth at the snapshot's instant.
func (p Planet) DistanceAU() float64 { return p.distance }
