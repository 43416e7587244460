package astro

import "time"

// Sidereal time at 0h UT, in hours, as a function of Julian centuries
// since J2000.
var siderealAt0h = mustPolynomial(0.000025862, 2400.051336, 6.697374558)

const siderealRate = 1.002737909

// GreenwichSiderealTime returns the sidereal time at Greenwich for the
// given instant, in radians in [0, 2π).
func GreenwichSiderealTime(when time.Time) float64 {
	utc := when.UTC()
	day := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)

	centuries := J2000.JulianCenturiesUntil(day)
	hours := float64(utc.UnixMilli()-day.UnixMilli()) / millisPerHour

	s0 := siderealAt0h.At(centuries)
	s1 := siderealRate * hours
	return NormalizePositive(OfHr(s0 + s1))
}

// LocalSiderealTime returns the sidereal time at the given location, in
// radians in [0, 2π).
func LocalSiderealTime(when time.Time, where Geographic) float64 {
	return NormalizePositive(GreenwichSiderealTime(when) + where.Lon())
}
