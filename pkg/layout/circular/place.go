package circular

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/orbit/pkg/geom"
)

// Collision retry tuning.
const (
	// CollisionAttempts is how many fan radii are tried before giving up.
	CollisionAttempts = 5

	// RadiusGrowth is the fraction of LevelSpacing added to the fan radius
	// after a colliding attempt.
	RadiusGrowth = 0.15
)

// PlacedChild is a child position chosen by PlaceChildrenOnCircle.
type PlacedChild struct {
	ID    string
	X, Y  float64
	Angle float64
}

// Vec returns the child's position as a vector.
func (c PlacedChild) Vec() r2.Vec { return r2.Vec{X: c.X, Y: c.Y} }

// Fan is the outcome of placing one set of siblings.
type Fan struct {
	Children []PlacedChild

	// Radius is the fan radius actually used, at least the requested one.
	Radius float64

	Attempts int

	// Collided is set when the last attempt still collided.
	Collided bool
}

// PlaceChildrenOnCircle fans children across sector at childRadius around
// center.
//
// A single child continues the parent's spoke at parentAngle. N children
// divide the sector into N+1 equal slots and take the inner slot borders, so
// no child sits on a sector edge. Every candidate is tested against all
// positions in occupied and against its earlier siblings; a candidate
// collides when its rectangle overlaps or comes closer than
// params.MinNodeSpacing. On a collision the radius grows by
// RadiusGrowth·LevelSpacing and all candidates are recomputed at the same
// angles, for at most CollisionAttempts attempts. The last attempt is
// returned even if it still collides.
func PlaceChildrenOnCircle(children []string, parentAngle, childRadius float64, sector geom.Sector, center r2.Vec, params Params, occupied map[string]r2.Vec) Fan {
	if len(children) == 0 {
		return Fan{Radius: childRadius}
	}

	angles := fanAngles(len(children), parentAngle, sector, params.Clockwise)
	own := make(map[string]bool, len(children))
	for _, id := range children {
		own[id] = true
	}

	fan := Fan{Radius: childRadius}
	for attempt := 1; attempt <= CollisionAttempts; attempt++ {
		fan.Attempts = attempt
		fan.Children = fanAt(children, angles, fan.Radius, center)
		fan.Collided = fanCollides(fan.Children, occupied, own, params)
		if !fan.Collided || attempt == CollisionAttempts {
			break
		}
		fan.Radius += params.LevelSpacing * RadiusGrowth
	}
	return fan
}

// fanAngles returns the child angles in placement order.
func fanAngles(n int, parentAngle float64, sector geom.Sector, clockwise bool) []float64 {
	if n == 1 {
		return []float64{geom.Normalize(parentAngle)}
	}
	slot := sector.Width / float64(n+1)
	angles := make([]float64, n)
	for k := range angles {
		offset := float64(k+1) * slot
		if clockwise {
			angles[k] = geom.Normalize(sector.Start + offset)
		} else {
			angles[k] = geom.Normalize(sector.Start + sector.Width - offset)
		}
	}
	return angles
}

func fanAt(children []string, angles []float64, radius float64, center r2.Vec) []PlacedChild {
	out := make([]PlacedChild, len(children))
	for i, id := range children {
		p := geom.Polar(center, radius, angles[i])
		out[i] = PlacedChild{ID: id, X: p.X, Y: p.Y, Angle: angles[i]}
	}
	return out
}

func fanCollides(fan []PlacedChild, occupied map[string]r2.Vec, own map[string]bool, params Params) bool {
	for i, c := range fan {
		rect := params.rectAt(c.Vec())
		for id, p := range occupied {
			if own[id] {
				continue
			}
			if collides(rect, params.rectAt(p), params.MinNodeSpacing) {
				return true
			}
		}
		for _, prev := range fan[:i] {
			if collides(rect, params.rectAt(prev.Vec()), params.MinNodeSpacing) {
				return true
			}
		}
	}
	return false
}

func collides(a, b geom.Rect, minSpacing float64) bool {
	return a.Overlaps(b) || geom.RectDistance(a, b) < minSpacing
}
