package astro

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Cartesian is a point on the projection plane.
type Cartesian struct {
	v r2.Vec
}

// CartesianOf returns the point (x, y).
func CartesianOf(x, y float64) Cartesian {
	return Cartesian{v: r2.Vec{X: x, Y: y}}
}

func (c Cartesian) X() float64  { return c.v.X }
func (c Cartesian) Y() float64  { return c.v.Y }
func (c Cartesian) Vec() r2.Vec { return c.v }

// DistanceTo returns the Euclidean distance between c and o.
func (c Cartesian) DistanceTo(o Cartesian) float64 {
	return r2.Norm(r2.Sub(c.v, o.v))
}

func (c Cartesian) String() string {
	return fmt.Sprintf("(x=%.4f, y=%.4f)", c.v.X, c.v.Y)
}

// StereographicProjection maps horizontal coordinates onto a plane
// tangent to the sphere at a chosen center.
type StereographicProjection struct {
	center           Horizontal
	sinAlt0, cosAlt0 float64
}

// NewStereographicProjection returns the projection centered on center.
func NewStereographicProjection(center Horizontal) StereographicProjection {
	sinAlt0, cosAlt0 := math.Sincos(center.alt)
	return StereographicProjection{center: center, sinAlt0: sinAlt0, cosAlt0: cosAlt0}
}

// Center returns the direction mapped to the origin.
func (p StereographicProjection) Center() Horizontal {
	return p.center
}

// Apply projects h onto the plane. The point antipodal to the center maps
// to (+Inf, +Inf).
func (p StereographicProjection) Apply(h Horizontal) Cartesian {
	sinPhi, cosPhi := math.Sincos(h.alt)
	sinDL, cosDL := math.Sincos(h.az - p.center.az)

	denom := 1 + sinPhi*p.sinAlt0 + cosPhi*p.cosAlt0*cosDL
	if denom == 0 {
		return CartesianOf(math.Inf(1), math.Inf(1))
	}
	d := 1 / denom
	return CartesianOf(
		d*cosPhi*sinDL,
		d*(sinPhi*p.cosAlt0-cosPhi*p.sinAlt0*cosDL),
	)
}

// InverseApply returns the horizontal coordinates that project to c.
func (p StereographicProjection) InverseApply(c Cartesian) Horizontal {
	x, y := c.v.X, c.v.Y
	rho := math.Hypot(x, y)
	if rho == 0 {
		return p.center
	}
	rho2 := rho * rho
	sinC := 2 * rho / (rho2 + 1)
	cosC := (1 - rho2) / (rho2 + 1)

	az := math.Atan2(x*sinC, rho*p.cosAlt0*cosC-y*p.sinAlt0*sinC) + p.center.az
	alt := asin(cosC*p.sinAlt0 + y*sinC*p.cosAlt0/rho)
	return Horizontal{az: NormalizePositive(az), alt: alt}
}

// CircleCenterForParallel returns the center of the circle the given
// parallel projects to. It lies on the y axis and is infinitely far when
// the parallel passes through the antipode of the center.
func (p StereographicProjection) CircleCenterForParallel(parallel Horizontal) Cartesian {
	denom := math.Sin(parallel.alt) + p.sinAlt0
	if denom == 0 {
		return CartesianOf(0, math.Inf(1))
	}
	return CartesianOf(0, p.cosAlt0/denom)
}

// CircleRadiusForParallel returns the radius of the circle the given
// parallel projects to; +Inf when it passes through the antipode.
func (p StereographicProjection) CircleRadiusForParallel(parallel Horizontal) float64 {
	denom := math.Sin(parallel.alt) + p.sinAlt0
	if denom == 0 {
		return math.Inf(1)
	}
	return math.Cos(parallel.alt) / denom
}

// ApplyToAngle returns the planar diameter of an object of the given
// angular size centered at the projection center.
func (p StereographicProjection) ApplyToAngle(rad float64) float64 {
	return 2 * math.Tan(rad/4)
}

func (p StereographicProjection) String() string {
	return fmt.Sprintf("StereographicProjection(center=%s)", p.center)
}
