package celestial

import (
	"math"

	"github.com/litescript/ls-planetarium/internal/astro"
)

// MoonModel is a first-order lunar theory with the main solar
// perturbations.
type MoonModel struct {
	meanLon      float64 // mean longitude at J2010
	lonPerigee   float64 // mean longitude of perigee at J2010
	lonNode      float64 // longitude of ascending node at J2010
	inclination  float64
	eccentricity float64
	angularSize  float64 // at a distance of one semi-major axis
	magnitude    float64
}

// MoonOrbit is the Moon's model for J2010.
var MoonOrbit = MoonModel{
	meanLon:      astro.OfDeg(91.929336),
	lonPerigee:   astro.OfDeg(130.143076),
	lonNode:      astro.OfDeg(291.682547),
	inclination:  astro.OfDeg(5.145396),
	eccentricity: 0.0549,
	angularSize:  astro.OfDeg(0.5181),
	magnitude:    0,
}

var (
	moonDailyMotion    = astro.OfDeg(13.1763966)
	perigeeDailyMotion = astro.OfDeg(0.1114041)
	nodeDailyMotion    = astro.OfDeg(0.0529539)
)

// At returns the Moon's state daysSinceJ2010 days after J2010. The solar
// perturbations use the Sun model evaluated at the same instant.
func (m MoonModel) At(daysSinceJ2010 float64, conv astro.EclipticToEquatorial) (Moon, error) {
	sun, err := SunOrbit.At(daysSinceJ2010, conv)
	if err != nil {
		return Moon{}, err
	}
	sunLon := sun.Ecliptic().Lon()
	sinSunM := math.Sin(sun.MeanAnomaly())
	d := daysSinceJ2010

	// Orbital longitude and mean anomaly
	l := moonDailyMotion*d + m.meanLon
	mm := l - perigeeDailyMotion*d - m.lonPerigee

	// Evection, annual equation and third correction
	ev := astro.OfDeg(1.2739) * math.Sin(2*(l-sunLon)-mm)
	ae := astro.OfDeg(0.1858) * sinSunM
	a3 := astro.OfDeg(0.37) * sinSunM

	// Corrected anomaly and equation of centre
	mmc := mm + ev - ae - a3
	ec := astro.OfDeg(6.2886) * math.Sin(mmc)
	a4 := astro.OfDeg(0.214) * math.Sin(2*mmc)

	// True orbital longitude with variation
	lc := l + ev + ec - ae + a4
	v := astro.OfDeg(0.6583) * math.Sin(2*(lc-sunLon))
	lt := lc + v

	// Ecliptic position
	n := m.lonNode - nodeDailyMotion*d - astro.OfDeg(0.16)*sinSunM
	sinLN, cosLN := math.Sincos(lt - n)
	lon := math.Atan2(sinLN*math.Cos(m.inclination), cosLN) + n
	lat := math.Asin(sinLN * math.Sin(m.inclination))

	ecl, err := astro.EclipticOf(astro.NormalizePositive(lon), lat)
	if err != nil {
		return Moon{}, err
	}

	phase := (1 - math.Cos(lt-sunLon)) / 2
	e := m.eccentricity
	rho := (1 - e*e) / (1 + e*math.Cos(mmc+ec))

	return NewMoon(conv.Apply(ecl), m.angularSize/rho, m.magnitude, phase)
}
