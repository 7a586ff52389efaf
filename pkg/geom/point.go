package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Polar returns the point at angle a and radius r around center.
func Polar(center r2.Vec, r, a float64) r2.Vec {
	return r2.Add(center, r2.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)})
}

// AngleOf returns the normalized angle of p as seen from center.
func AngleOf(center, p r2.Vec) float64 {
	d := r2.Sub(p, center)
	return Normalize(math.Atan2(d.Y, d.X))
}

// RadiusOf returns the distance from center to p.
func RadiusOf(center, p r2.Vec) float64 {
	return r2.Norm(r2.Sub(p, center))
}
