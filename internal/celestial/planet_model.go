package celestial

import (
	"fmt"
	"math"

	"github.com/litescript/ls-planetarium/internal/astro"
)

// PlanetModel holds a planet's J2010 orbital elements.
type PlanetModel struct {
	name         string
	period       float64 // tropical years
	lonAtEpoch   float64
	lonPerihel   float64
	eccentricity float64
	semiMajor    float64 // AU
	inclination  float64
	lonNode      float64
	angularSize  float64 // at 1 AU
	magnitude    float64 // at 1 AU, full phase
	distances    Distances
}

func planetElements(name string, tp, eps, varpi, e, a, inc, node, sizeArcsec, v0 float64, d Distances) PlanetModel {
	return PlanetModel{
		name:         name,
		period:       tp,
		lonAtEpoch:   astro.OfDeg(eps),
		lonPerihel:   astro.OfDeg(varpi),
		eccentricity: e,
		semiMajor:    a,
		inclination:  astro.OfDeg(inc),
		lonNode:      astro.OfDeg(node),
		angularSize:  astro.OfArcsec(sizeArcsec),
		magnitude:    v0,
		distances:    d,
	}
}

// Planet models in order of distance from the Sun. Earth is the
// observation frame: it serves as the reference for the others and
// cannot be queried itself.
var (
	Mercury = planetElements("Mercury", 0.24085, 75.5671, 77.612, 0.205627, 0.387098, 7.0051, 48.449, 6.74, -0.42,
		Distances{Perihelion: 46.0e6, Aphelion: 69.82e6, Mean: 57.91e6})
	Venus = planetElements("Venus", 0.615207, 272.30044, 131.54, 0.006812, 0.723329, 3.3947, 76.769, 16.92, -4.40,
		Distances{Perihelion: 107.48e6, Aphelion: 108.94e6, Mean: 108.21e6})
	Earth = planetElements("Earth", 0.999996, 99.556772, 103.2055, 0.016671, 0.999985, 0, 0, 0, 0,
		Distances{Perihelion: 147.10e6, Aphelion: 152.10e6, Mean: 149.60e6})
	Mars = planetElements("Mars", 1.880765, 109.09646, 336.217, 0.093348, 1.523689, 1.8497, 49.632, 9.36, -1.52,
		Distances{Perihelion: 206.62e6, Aphelion: 249.23e6, Mean: 227.92e6})
	Jupiter = planetElements("Jupiter", 11.857911, 337.917132, 14.6633, 0.048907, 5.20278, 1.3035, 100.595, 196.74, -9.40,
		Distances{Perihelion: 740.52e6, Aphelion: 816.62e6, Mean: 778.57e6})
	Saturn = planetElements("Saturn", 29.310579, 172.398316, 89.567, 0.053853, 9.51134, 2.4873, 113.752, 165.60, -8.88,
		Distances{Perihelion: 1352.55e6, Aphelion: 1514.50e6, Mean: 1433.53e6})
	Uranus = planetElements("Uranus", 84.039492, 356.135400, 172.884833, 0.046321, 19.21814, 0.773059, 73.926961, 65.80, -7.19,
		Distances{Perihelion: 2741.30e6, Aphelion: 3003.62e6, Mean: 2872.46e6})
	Neptune = planetElements("Neptune", 165.84539, 326.895127, 23.07, 0.010483, 30.1985, 1.7673, 131.879, 62.20, -6.87,
		Distances{Perihelion: 4444.45e6, Aphelion: 4545.67e6, Mean: 4495.06e6})
)

// PlanetModels returns all eight planet models, Earth included, in order
// of distance from the Sun.
func PlanetModels() []PlanetModel {
	return []PlanetModel{Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune}
}

// ObservablePlanetModels returns the seven models that can be queried.
func ObservablePlanetModels() []PlanetModel {
	all := PlanetModels()
	out := make([]PlanetModel, 0, len(all)-1)
	for _, p := range all {
		if !p.IsReference() {
			out = append(out, p)
		}
	}
	return out
}

func (m PlanetModel) Name() string { return m.name }

// IsReference reports whether m is the observation frame.
func (m PlanetModel) IsReference() bool { return m.name == Earth.name }

// heliocentric holds a planet's position in its orbit.
type heliocentric struct {
	r, l   float64 // radius (AU) and heliocentric longitude
	psi    float64 // heliocentric latitude
	rp, lp float64 // radius and longitude projected on the ecliptic
}

func (m PlanetModel) heliocentricAt(days float64) heliocentric {
	e := m.eccentricity

	// Mean and true anomaly
	meanAnomaly := (astro.Tau/tropicalYear)*(days/m.period) + m.lonAtEpoch - m.lonPerihel
	v := meanAnomaly + 2*e*math.Sin(meanAnomaly)

	r := m.semiMajor * (1 - e*e) / (1 + e*math.Cos(v))
	l := v + m.lonPerihel

	sinLN, cosLN := math.Sincos(l - m.lonNode)
	psi := math.Asin(sinLN * math.Sin(m.inclination))

	return heliocentric{
		r:   r,
		l:   l,
		psi: psi,
		rp:  r * math.Cos(psi),
		lp:  math.Atan2(sinLN*math.Cos(m.inclination), cosLN) + m.lonNode,
	}
}

// At returns the planet's state as seen from Earth daysSinceJ2010 days
// after J2010. It fails with ErrUnsupported for Earth.
func (m PlanetModel) At(daysSinceJ2010 float64, conv astro.EclipticToEquatorial) (Planet, error) {
	if m.IsReference() {
		return Planet{}, fmt.Errorf("position of %s: %w", m.name, ErrUnsupported)
	}

	p := m.heliocentricAt(daysSinceJ2010)
	earth := Earth.heliocentricAt(daysSinceJ2010)
	bigR, bigL := earth.r, earth.l

	// Geocentric ecliptic longitude
	var lon float64
	if m.semiMajor < Earth.semiMajor {
		lon = math.Pi + bigL + math.Atan2(p.rp*math.Sin(bigL-p.lp), bigR-p.rp*math.Cos(bigL-p.lp))
	} else {
		lon = p.lp + math.Atan2(bigR*math.Sin(p.lp-bigL), p.rp-bigR*math.Cos(p.lp-bigL))
	}

	// Geocentric ecliptic latitude
	lat := math.Atan(p.rp * math.Tan(p.psi) * math.Sin(lon-p.lp) / (bigR * math.Sin(p.lp-bigL)))
	if math.IsNaN(lat) {
		// 0/0 at conjunction with the planet on the ecliptic
		lat = 0
	}

	ecl, err := astro.EclipticOf(astro.NormalizePositive(lon), lat)
	if err != nil {
		return Planet{}, err
	}

	// Distance to Earth, phase and magnitude
	rho := math.Sqrt(bigR*bigR + p.r*p.r - 2*bigR*p.r*math.Cos(p.l-bigL)*math.Cos(p.psi))
	phase := (1 + math.Cos(lon-p.l)) / 2
	mag := m.magnitude + 5*math.Log10(p.r*rho/math.Sqrt(phase))

	return NewPlanet(m.name, conv.Apply(ecl), m.angularSize/rho, mag, m.distances, rho)
}
