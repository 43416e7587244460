package celestial

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-planetarium/internal/astro"
)

type placed struct {
	obj   CelestialObject
	hor   astro.Horizontal
	point astro.Cartesian
}

// ObservedSky is the sky at one instant, from one place, through one
// projection. It is immutable once built.
type ObservedSky struct {
	when       time.Time
	where      astro.Geographic
	projection astro.StereographicProjection
	catalogue  *StarCatalogue

	sun       Sun
	sunPoint  astro.Cartesian
	moon      Moon
	moonPoint astro.Cartesian

	planets         []Planet
	planetPositions []float64 // x0, y0, x1, y1, ...
	starPositions   []float64

	// objects lists every body in query order: Sun, Moon, planets, stars.
	objects []placed
	index   map[CelestialObject]int
}

// NewObservedSky computes every body's projected position.
func NewObservedSky(when time.Time, where astro.Geographic, projection astro.StereographicProjection, catalogue *StarCatalogue) (*ObservedSky, error) {
	days := astro.J2010.DaysUntil(when)
	eclToEqu := astro.NewEclipticToEquatorial(when)
	equToHor := astro.NewEquatorialToHorizontal(when, where)

	sky := &ObservedSky{
		when:       when,
		where:      where,
		projection: projection,
		catalogue:  catalogue,
		index:      make(map[CelestialObject]int),
	}
	place := func(obj CelestialObject) astro.Cartesian {
		h := equToHor.Apply(obj.Equatorial())
		p := projection.Apply(h)
		if _, ok := sky.index[obj]; !ok {
			sky.index[obj] = len(sky.objects)
		}
		sky.objects = append(sky.objects, placed{obj: obj, hor: h, point: p})
		return p
	}

	sun, err := SunOrbit.At(days, eclToEqu)
	if err != nil {
		return nil, fmt.Errorf("sun: %w", err)
	}
	sky.sun, sky.sunPoint = sun, place(sun)

	moon, err := MoonOrbit.At(days, eclToEqu)
	if err != nil {
		return nil, fmt.Errorf("moon: %w", err)
	}
	sky.moon, sky.moonPoint = moon, place(moon)

	models := ObservablePlanetModels()
	sky.planets = make([]Planet, 0, len(models))
	sky.planetPositions = make([]float64, 0, 2*len(models))
	for _, m := range models {
		p, err := m.At(days, eclToEqu)
		if err != nil {
			return nil, fmt.Errorf("planet %s: %w", m.Name(), err)
		}
		pt := place(p)
		sky.planets = append(sky.planets, p)
		sky.planetPositions = append(sky.planetPositions, pt.X(), pt.Y())
	}

	if catalogue != nil {
		sky.starPositions = make([]float64, 0, 2*len(catalogue.stars))
		for _, s := range catalogue.stars {
			pt := place(s)
			sky.starPositions = append(sky.starPositions, pt.X(), pt.Y())
		}
	}

	return sky, nil
}

func (s *ObservedSky) When() time.Time                           { return s.when }
func (s *ObservedSky) Where() astro.Geographic                   { return s.where }
func (s *ObservedSky) Projection() astro.StereographicProjection { return s.projection }
func (s *ObservedSky) Sun() Sun                                  { return s.sun }
func (s *ObservedSky) SunPoint() astro.Cartesian                 { return s.sunPoint }
func (s *ObservedSky) Moon() Moon                                { return s.moon }
func (s *ObservedSky) MoonPoint() astro.Cartesian                { return s.moonPoint }

// Planets returns a copy of the seven planets in model order.
func (s *ObservedSky) Planets() []Planet {
	return append([]Planet(nil), s.planets...)
}

// PlanetPositions returns a copy of the planets' projected points, two
// values per planet.
func (s *ObservedSky) PlanetPositions() []float64 {
	return append([]float64(nil), s.planetPositions...)
}

// Stars returns a copy of the catalogue stars.
func (s *ObservedSky) Stars() []Star {
	if s.catalogue == nil {
		return nil
	}
	return s.catalogue.Stars()
}

// StarPositions returns a copy of the stars' projected points, two values
// per star in catalogue order.
func (s *ObservedSky) StarPositions() []float64 {
	return append([]float64(nil), s.starPositions...)
}

// Asterisms returns the catalogue's asterisms.
func (s *ObservedSky) Asterisms() []Asterism {
	if s.catalogue == nil {
		return nil
	}
	return s.catalogue.Asterisms()
}

// AsterismIndices returns the star indices of the i-th asterism.
func (s *ObservedSky) AsterismIndices(i int) []int {
	if s.catalogue == nil {
		return nil
	}
	return s.catalogue.AsterismIndices(i)
}

// PointOf returns the projected point of obj.
func (s *ObservedSky) PointOf(obj CelestialObject) (astro.Cartesian, bool) {
	i, ok := s.index[obj]
	if !ok {
		return astro.Cartesian{}, false
	}
	return s.objects[i].point, true
}

// HorizontalOf returns obj's horizontal position.
func (s *ObservedSky) HorizontalOf(obj CelestialObject) (astro.Horizontal, bool) {
	i, ok := s.index[obj]
	if !ok {
		return astro.Horizontal{}, false
	}
	return s.objects[i].hor, true
}

// Objects calls fn for every body in query order: Sun, Moon, planets,
// then stars.
func (s *ObservedSky) Objects(fn func(obj CelestialObject, h astro.Horizontal, p astro.Cartesian)) {
	for _, o := range s.objects {
		fn(o.obj, o.hor, o.point)
	}
}

// ObjectClosestTo returns the body nearest to p whose distance is below
// maxDistance. Ties go to the body enumerated first.
func (s *ObservedSky) ObjectClosestTo(p astro.Cartesian, maxDistance float64) (CelestialObject, bool) {
	var best CelestialObject
	bestDist := math.Inf(1)
	for _, o := range s.objects {
		if math.Abs(o.point.X()-p.X()) >= maxDistance || math.Abs(o.point.Y()-p.Y()) >= maxDistance {
			continue
		}
		d := o.point.DistanceTo(p)
		if d < maxDistance && d < bestDist {
			best, bestDist = o.obj, d
		}
	}
	return best, best != nil
}
