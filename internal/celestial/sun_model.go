package celestial

import (
	"math"

	"github.com/litescript/ls-planetarium/internal/astro"
)

const sunMagnitude = -26.7

// SunModel is the closed-form low-eccentricity solar orbit.
type SunModel struct {
	lonAtEpoch   float64 // ecliptic longitude at J2010
	lonPerigee   float64
	eccentricity float64
	angularSize  float64 // at 1 AU
}

// SunOrbit is the Sun's model for J2010.
var SunOrbit = SunModel{
	lonAtEpoch:   astro.OfDeg(279.557208),
	lonPerigee:   astro.OfDeg(283.112438),
	eccentricity: 0.016705,
	angularSize:  astro.OfDeg(0.533128),
}

// At returns the Sun's state daysSinceJ2010 days after J2010.
func (m SunModel) At(daysSinceJ2010 float64, conv astro.EclipticToEquatorial) (Sun, error) {
	e := m.eccentricity

	// Mean anomaly
	meanAnomaly := (astro.Tau/tropicalYear)*daysSinceJ2010 + m.lonAtEpoch - m.lonPerigee

	// True anomaly, first order in e
	v := meanAnomaly + 2*e*math.Sin(meanAnomaly)

	ecl, err := astro.EclipticOf(astro.NormalizePositive(v+m.lonPerigee), 0)
	if err != nil {
		return Sun{}, err
	}
	size := m.angularSize * (1 + e*math.Cos(v)) / (1 - e*e)

	return NewSun(ecl, conv.Apply(ecl), size, astro.NormalizePositive(meanAnomaly))
}
