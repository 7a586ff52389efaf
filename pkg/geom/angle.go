package geom

import "math"

// FullTurn is one complete revolution in radians.
const FullTurn = 2 * math.Pi

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Normalize maps an angle into (-π, π].
func Normalize(a float64) float64 {
	a = math.Mod(a, FullTurn)
	if a <= -math.Pi {
		a += FullTurn
	} else if a > math.Pi {
		a -= FullTurn
	}
	return a
}

// AngularDistance returns the signed shortest rotation from a to b, in (-π, π].
// Positive values mean b lies clockwise of a.
func AngularDistance(a, b float64) float64 {
	return Normalize(b - a)
}

// Midpoint returns the angle halfway along the clockwise arc from start to end.
// If end < start the arc crosses the seam, so a full turn is added to end
// before averaging. The result is normalized.
func Midpoint(start, end float64) float64 {
	if end < start {
		end += FullTurn
	}
	return Normalize((start + end) / 2)
}

// ArcWidth returns the clockwise angular width from start to end in [0, 2π).
func ArcWidth(start, end float64) float64 {
	w := math.Mod(end-start, FullTurn)
	if w < 0 {
		w += FullTurn
	}
	return w
}

// Sector is a contiguous angular range running clockwise from Start for Width
// radians. Start is kept normalized; Width is in [0, 2π].
type Sector struct {
	Start float64
	Width float64
}

// NewSector builds a sector from a start angle and width. Width is clamped to
// [0, 2π].
func NewSector(start, width float64) Sector {
	return Sector{Start: Normalize(start), Width: math.Max(0, math.Min(width, FullTurn))}
}

// SectorBetween builds the clockwise sector from start to end.
func SectorBetween(start, end float64) Sector {
	return Sector{Start: Normalize(start), Width: ArcWidth(start, end)}
}

// End returns the normalized angle where the sector stops.
func (s Sector) End() float64 { return Normalize(s.Start + s.Width) }

// IsFull reports whether the sector spans the whole circle.
func (s Sector) IsFull() bool { return s.Width >= FullTurn-1e-9 }

// Mid returns the sector's angular midpoint. A full-turn sector has no
// midpoint distinct from its seam, so its start angle is returned instead.
func (s Sector) Mid() float64 {
	if s.IsFull() {
		return s.Start
	}
	return Midpoint(s.Start, s.End())
}

// At returns the normalized angle at fraction t (0..1) of the way through the
// sector.
func (s Sector) At(t float64) float64 {
	return Normalize(s.Start + t*s.Width)
}

// Slice splits the sector into n equal consecutive sub-sectors.
func (s Sector) Slice(n int) []Sector {
	if n <= 0 {
		return nil
	}
	w := s.Width / float64(n)
	out := make([]Sector, n)
	for i := range out {
		out[i] = Sector{Start: Normalize(s.Start + float64(i)*w), Width: w}
	}
	return out
}

// Contains reports whether angle a lies inside the sector (inclusive).
func (s Sector) Contains(a float64) bool {
	if s.IsFull() {
		return true
	}
	return ArcWidth(s.Start, a) <= s.Width+1e-9
}
