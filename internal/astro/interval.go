package astro

import (
	"fmt"
	"math"
)

// ClosedInterval is the set of reals in [low, high].
type ClosedInterval struct {
	low, high float64
}

// NewClosedInterval returns [low, high]; low must be strictly less than high.
func NewClosedInterval(low, high float64) (ClosedInterval, error) {
	if !(low < high) {
		return ClosedInterval{}, invalid("interval.closed", "low=%g high=%g", low, high)
	}
	return ClosedInterval{low: low, high: high}, nil
}

// SymmetricClosedInterval returns [-size/2, size/2].
func SymmetricClosedInterval(size float64) (ClosedInterval, error) {
	if !(size > 0) {
		return ClosedInterval{}, invalid("interval.closed_symmetric", "size=%g", size)
	}
	return ClosedInterval{low: -size / 2, high: size / 2}, nil
}

func (i ClosedInterval) Low() float64  { return i.low }
func (i ClosedInterval) High() float64 { return i.high }
func (i ClosedInterval) Size() float64 { return i.high - i.low }

// Contains reports whether low <= v <= high.
func (i ClosedInterval) Contains(v float64) bool {
	return i.low <= v && v <= i.high
}

// Clip clamps v into [low, high].
func (i ClosedInterval) Clip(v float64) float64 {
	switch {
	case v < i.low:
		return i.low
	case v > i.high:
		return i.high
	default:
		return v
	}
}

func (i ClosedInterval) String() string {
	return fmt.Sprintf("[%g,%g]", i.low, i.high)
}

// RightOpenInterval is the set of reals in [low, high).
type RightOpenInterval struct {
	low, high float64
}

// NewRightOpenInterval returns [low, high); low must be strictly less than high.
func NewRightOpenInterval(low, high float64) (RightOpenInterval, error) {
	if !(low < high) {
		return RightOpenInterval{}, invalid("interval.right_open", "low=%g high=%g", low, high)
	}
	return RightOpenInterval{low: low, high: high}, nil
}

// SymmetricRightOpenInterval returns [-size/2, size/2).
func SymmetricRightOpenInterval(size float64) (RightOpenInterval, error) {
	if !(size > 0) {
		return RightOpenInterval{}, invalid("interval.right_open_symmetric", "size=%g", size)
	}
	return RightOpenInterval{low: -size / 2, high: size / 2}, nil
}

func (i RightOpenInterval) Low() float64  { return i.low }
func (i RightOpenInterval) High() float64 { return i.high }
func (i RightOpenInterval) Size() float64 { return i.high - i.low }

// Contains reports whether low <= v < high.
func (i RightOpenInterval) Contains(v float64) bool {
	return i.low <= v && v < i.high
}

// Reduce maps any real into [low, high) by floor-based modular reduction.
func (i RightOpenInterval) Reduce(v float64) float64 {
	size := i.Size()
	x := v - i.low
	r := x - size*math.Floor(x/size)
	// A tiny negative x rounds up to exactly size, and low+r can round
	// up to high.
	if res := i.low + r; r < size && res < i.high {
		return res
	}
	return i.low
}

func (i RightOpenInterval) String() string {
	return fmt.Sprintf("[%g,%g[", i.low, i.high)
}
