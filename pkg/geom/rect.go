package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rect is an axis-aligned rectangle described by its center and size.
type Rect struct {
	Center r2.Vec
	Size   r2.Vec
}

// NewRect creates a rectangle centered at (x, y) with the given width and height.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Center: r2.Vec{X: x, Y: y}, Size: r2.Vec{X: w, Y: h}}
}

// Box returns the rectangle as a gonum bounding box.
func (r Rect) Box() r2.Box {
	half := r2.Scale(0.5, r.Size)
	lo, hi := r2.Sub(r.Center, half), r2.Add(r.Center, half)
	return r2.NewBox(lo.X, lo.Y, hi.X, hi.Y)
}

// Vertices returns the four corners in counter-clockwise order starting at
// the minimum corner.
func (r Rect) Vertices() []r2.Vec { return r.Box().Vertices() }

// Overlaps reports whether the interiors of r and o intersect. Rectangles
// that only share a border do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	a, b := r.Box(), o.Box()
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X &&
		a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
}

// RectDistance returns the minimal distance between the borders of a and b.
//
// Every vertex of one rectangle is measured against every edge segment of the
// other, in both directions, and the smallest value wins. The result is never
// negative. Overlapping rectangles still report the distance from the nearest
// enclosed vertex to an edge rather than a penetration depth, so callers
// should treat values below a small threshold as touching.
func RectDistance(a, b Rect) float64 {
	va, vb := a.Vertices(), b.Vertices()
	return math.Min(verticesToEdges(va, vb), verticesToEdges(vb, va))
}

func verticesToEdges(vertices, polygon []r2.Vec) float64 {
	best := math.Inf(1)
	for _, p := range vertices {
		for i := range polygon {
			d := pointSegmentDistance(p, polygon[i], polygon[(i+1)%len(polygon)])
			if d < best {
				best = d
			}
		}
	}
	return best
}

// pointSegmentDistance is the perpendicular distance when the projection of p
// falls inside [a, b], otherwise the distance to the nearer endpoint.
func pointSegmentDistance(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	t := r2.Dot(r2.Sub(p, a), ab) / l2
	if t >= 0 && t <= 1 {
		return r2.Norm(r2.Sub(p, r2.Add(a, r2.Scale(t, ab))))
	}
	return math.Min(r2.Norm(r2.Sub(p, a)), r2.Norm(r2.Sub(p, b)))
}
