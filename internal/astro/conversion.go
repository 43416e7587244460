package astro

import (
	"math"
	"time"
)

// Obliquity correction in arcseconds as a function of Julian centuries
// since J2000.
var obliquityCorrection = mustPolynomial(0.00181, -0.0006, -46.815, 0)

var obliquityAtJ2000 = func() float64 {
	rad, err := OfDMS(23, 26, 21.45)
	if err != nil {
		panic(err)
	}
	return rad
}()

// EclipticToEquatorial converts ecliptic coordinates to equatorial ones
// for a fixed instant.
type EclipticToEquatorial struct {
	obliquity      float64
	cosEps, sinEps float64
}

// NewEclipticToEquatorial precomputes the obliquity of the ecliptic at when.
func NewEclipticToEquatorial(when time.Time) EclipticToEquatorial {
	t := J2000.JulianCenturiesUntil(when)
	eps := OfArcsec(obliquityCorrection.At(t)) + obliquityAtJ2000
	return EclipticToEquatorial{
		obliquity: eps,
		cosEps:    math.Cos(eps),
		sinEps:    math.Sin(eps),
	}
}

// Obliquity returns the obliquity of the ecliptic in radians.
func (c EclipticToEquatorial) Obliquity() float64 {
	return c.obliquity
}

// Apply converts ecl to equatorial coordinates.
func (c EclipticToEquatorial) Apply(ecl Ecliptic) Equatorial {
	sinLon := math.Sin(ecl.lon)
	ra := math.Atan2(sinLon*c.cosEps-math.Tan(ecl.lat)*c.sinEps, math.Cos(ecl.lon))
	dec := asin(math.Sin(ecl.lat)*c.cosEps + math.Cos(ecl.lat)*c.sinEps*sinLon)
	return Equatorial{ra: NormalizePositive(ra), dec: dec}
}

// EquatorialToHorizontal converts equatorial coordinates to horizontal
// ones for a fixed instant and observer.
type EquatorialToHorizontal struct {
	lst            float64
	sinLat, cosLat float64
}

// NewEquatorialToHorizontal precomputes the local sidereal time at when
// for an observer at where.
func NewEquatorialToHorizontal(when time.Time, where Geographic) EquatorialToHorizontal {
	return EquatorialToHorizontal{
		lst:    LocalSiderealTime(when, where),
		sinLat: math.Sin(where.lat),
		cosLat: math.Cos(where.lat),
	}
}

// LocalSiderealTime returns the sidereal time the conversion was built for.
func (c EquatorialToHorizontal) LocalSiderealTime() float64 {
	return c.lst
}

// Apply converts eq to horizontal coordinates. Azimuth is measured from
// north, clockwise.
func (c EquatorialToHorizontal) Apply(eq Equatorial) Horizontal {
	return fromHourAngle(c.lst-eq.ra, eq.dec, c.sinLat, c.cosLat)
}

func fromHourAngle(hourAngle, dec, sinLat, cosLat float64) Horizontal {
	sinH, cosH := math.Sincos(hourAngle)
	sinDec, cosDec := math.Sincos(dec)

	alt := asin(sinDec*sinLat + cosDec*cosLat*cosH)
	az := math.Atan2(-cosDec*sinH, sinDec*cosLat-cosDec*sinLat*cosH)
	return Horizontal{az: NormalizePositive(az), alt: alt}
}
