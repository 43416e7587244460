package astro

import "time"

const (
	millisPerHour  = 3600 * 1000.0
	millisPerDay   = 24 * millisPerHour
	daysPerCentury = 36525.0
)

// Epoch is a fixed reference instant from which elapsed time is measured.
type Epoch struct {
	at time.Time
}

var (
	// J2000 is 2000-01-01T12:00:00Z.
	J2000 = Epoch{at: time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)}

	// J2010 is the reference of the orbital element tables. It sits at
	// midnight UTC on 2009-12-31, one day before the nominal year boundary,
	// and the element tables are calibrated to that instant.
	J2010 = Epoch{at: time.Date(2009, time.December, 31, 0, 0, 0, 0, time.UTC)}
)

// Instant returns the epoch as a UTC time.
func (e Epoch) Instant() time.Time {
	return e.at
}

// DaysUntil returns the signed number of days, to the millisecond, from
// the epoch to when.
func (e Epoch) DaysUntil(when time.Time) float64 {
	return float64(when.UnixMilli()-e.at.UnixMilli()) / millisPerDay
}

// JulianCenturiesUntil returns DaysUntil in units of 36525 days.
func (e Epoch) JulianCenturiesUntil(when time.Time) float64 {
	return e.DaysUntil(when) / daysPerCentury
}
