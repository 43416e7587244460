package astro

import (
	"fmt"
	"math"
)

// Frame intervals, in radians.
var (
	lonSymmetric = RightOpenInterval{low: -math.Pi, high: math.Pi}
	lonPositive  = RightOpenInterval{low: 0, high: Tau}
	latClosed    = ClosedInterval{low: -math.Pi / 2, high: math.Pi / 2}
)

func checkPair(op string, lon RightOpenInterval, lat ClosedInterval, lonRad, latRad float64) error {
	if !lon.Contains(lonRad) {
		return invalid(op, "lon=%g rad not in %s", lonRad, lon)
	}
	if !lat.Contains(latRad) {
		return invalid(op, "lat=%g rad not in %s", latRad, lat)
	}
	return nil
}

// Geographic is a location on Earth. Longitude is in [-π, π) and
// positive east; latitude is in [-π/2, π/2].
type Geographic struct {
	lon, lat float64
}

// GeographicOf validates and returns geographic coordinates in radians.
func GeographicOf(lon, lat float64) (Geographic, error) {
	if err := checkPair("geographic.of", lonSymmetric, latClosed, lon, lat); err != nil {
		return Geographic{}, err
	}
	return Geographic{lon: lon, lat: lat}, nil
}

// GeographicOfDeg validates and returns geographic coordinates given in
// degrees: longitude in [-180, 180), latitude in [-90, 90].
func GeographicOfDeg(lonDeg, latDeg float64) (Geographic, error) {
	return GeographicOf(OfDeg(lonDeg), OfDeg(latDeg))
}

func (g Geographic) Lon() float64    { return g.lon }
func (g Geographic) Lat() float64    { return g.lat }
func (g Geographic) LonDeg() float64 { return ToDeg(g.lon) }
func (g Geographic) LatDeg() float64 { return ToDeg(g.lat) }

func (g Geographic) String() string {
	return fmt.Sprintf("(lon=%.4f°, lat=%.4f°)", g.LonDeg(), g.LatDeg())
}

// Equatorial holds right ascension in [0, 2π) and declination in
// [-π/2, π/2].
type Equatorial struct {
	ra, dec float64
}

// EquatorialOf validates and returns equatorial coordinates in radians.
func EquatorialOf(ra, dec float64) (Equatorial, error) {
	if err := checkPair("equatorial.of", lonPositive, latClosed, ra, dec); err != nil {
		return Equatorial{}, err
	}
	return Equatorial{ra: ra, dec: dec}, nil
}

func (e Equatorial) RA() float64     { return e.ra }
func (e Equatorial) Dec() float64    { return e.dec }
func (e Equatorial) RADeg() float64  { return ToDeg(e.ra) }
func (e Equatorial) RAHr() float64   { return ToHr(e.ra) }
func (e Equatorial) DecDeg() float64 { return ToDeg(e.dec) }

func (e Equatorial) String() string {
	return fmt.Sprintf("(ra=%.4fh, dec=%.4f°)", e.RAHr(), e.DecDeg())
}

// Ecliptic holds ecliptic longitude in [0, 2π) and latitude in
// [-π/2, π/2].
type Ecliptic struct {
	lon, lat float64
}

// EclipticOf validates and returns ecliptic coordinates in radians.
func EclipticOf(lon, lat float64) (Ecliptic, error) {
	if err := checkPair("ecliptic.of", lonPositive, latClosed, lon, lat); err != nil {
		return Ecliptic{}, err
	}
	return Ecliptic{lon: lon, lat: lat}, nil
}

func (e Ecliptic) Lon() float64    { return e.lon }
func (e Ecliptic) Lat() float64    { return e.lat }
func (e Ecliptic) LonDeg() float64 { return ToDeg(e.lon) }
func (e Ecliptic) LatDeg() float64 { return ToDeg(e.lat) }

func (e Ecliptic) String() string {
	return fmt.Sprintf("(λ=%.4f°, β=%.4f°)", e.LonDeg(), e.LatDeg())
}

// Horizontal holds azimuth in [0, 2π), measured from north through east,
// and altitude in [-π/2, π/2].
type Horizontal struct {
	az, alt float64
}

// HorizontalOf validates and returns horizontal coordinates in radians.
func HorizontalOf(az, alt float64) (Horizontal, error) {
	if err := checkPair("horizontal.of", lonPositive, latClosed, az, alt); err != nil {
		return Horizontal{}, err
	}
	return Horizontal{az: az, alt: alt}, nil
}

// HorizontalOfDeg validates and returns horizontal coordinates given in
// degrees.
func HorizontalOfDeg(azDeg, altDeg float64) (Horizontal, error) {
	return HorizontalOf(OfDeg(azDeg), OfDeg(altDeg))
}

func (h Horizontal) Az() float64     { return h.az }
func (h Horizontal) Alt() float64    { return h.alt }
func (h Horizontal) AzDeg() float64  { return ToDeg(h.az) }
func (h Horizontal) AltDeg() float64 { return ToDeg(h.alt) }

// AngularDistanceTo returns the great-circle distance to that, in radians.
// The atan2 form keeps full precision for both tiny and near-antipodal
// separations.
func (h Horizontal) AngularDistanceTo(that Horizontal) float64 {
	dAz := h.az - that.az
	sinA, cosA := math.Sincos(h.alt)
	sinB, cosB := math.Sincos(that.alt)
	y := math.Hypot(cosB*math.Sin(dAz), cosA*sinB-sinA*cosB*math.Cos(dAz))
	x := sinA*sinB + cosA*cosB*math.Cos(dAz)
	return math.Atan2(y, x)
}

// AzOctantName names the azimuth's nearest compass octant using the given
// cardinal labels, e.g. "N", "NE", "E".
func (h Horizontal) AzOctantName(n, e, s, w string) string {
	octants := [8]string{n, n + e, e, s + e, s, s + w, w, n + w}
	i := int(math.Round(h.az/(Tau/8))) % 8
	return octants[i]
}

func (h Horizontal) String() string {
	return fmt.Sprintf("(az=%.4f°, alt=%.4f°)", h.AzDeg(), h.AltDeg())
}
