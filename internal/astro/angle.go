package astro

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

const (
	degPerRad   = 180 / math.Pi
	radPerDeg   = math.Pi / 180
	hrPerRad    = 24 / Tau
	radPerHr    = Tau / 24
	secPerDeg   = 3600.0
	minPerDeg   = 60.0
	arcsecToRad = radPerDeg / secPerDeg
)

var positiveAngles = RightOpenInterval{low: 0, high: Tau}

// NormalizePositive reduces an angle in radians to [0, 2π).
func NormalizePositive(rad float64) float64 {
	return positiveAngles.Reduce(rad)
}

// OfArcsec converts arcseconds to radians.
func OfArcsec(sec float64) float64 {
	return sec * arcsecToRad
}

// OfDMS converts degrees, minutes and seconds of arc to radians.
// Minutes and seconds must lie in [0, 60).
func OfDMS(deg int, min int, sec float64) (float64, error) {
	if min < 0 || min >= 60 {
		return 0, invalid("angle.of_dms", "min=%d", min)
	}
	if !(sec >= 0 && sec < 60) {
		return 0, invalid("angle.of_dms", "sec=%g", sec)
	}
	return OfDeg(float64(deg) + float64(min)/minPerDeg + sec/secPerDeg), nil
}

// OfDeg converts degrees to radians.
func OfDeg(deg float64) float64 {
	return deg * radPerDeg
}

// ToDeg converts radians to degrees.
func ToDeg(rad float64) float64 {
	return rad * degPerRad
}

// OfHr converts hours to radians.
func OfHr(hr float64) float64 {
	return hr * radPerHr
}

// ToHr converts radians to hours.
func ToHr(rad float64) float64 {
	return rad * hrPerRad
}

var unitRange = ClosedInterval{low: -1, high: 1}

// asin clips its argument so rounding just past ±1 cannot produce NaN.
func asin(x float64) float64 { return math.Asin(unitRange.Clip(x)) }
