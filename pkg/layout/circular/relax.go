package circular

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/orbit/pkg/geom"
)

// Relaxation tuning. These values set the convergence behavior.
const (
	// MaxRelaxIterations caps the number of relaxation rounds.
	MaxRelaxIterations = 100

	// ConvergenceThreshold is the largest per-round move, in arc pixels,
	// at which relaxation stops.
	ConvergenceThreshold = 0.5

	// OverlapThreshold is the border gap below which a round counts as
	// overlapping.
	OverlapThreshold = 1.0

	// OverlapDamping scales corrections in rounds that saw an overlap.
	OverlapDamping = 0.5

	// SpacingDamping scales corrections in rounds without overlap.
	SpacingDamping = 0.3

	// ChordShrink approximates how much of a node's width it occupies
	// along the arc.
	ChordShrink = 0.85
)

// RootPosition is a relaxed root placement.
type RootPosition struct {
	ID    string
	Angle float64
	Pos   r2.Vec
}

// Relaxation is the result of AdjustNodeSpacing.
type Relaxation struct {
	Positions []RootPosition

	// ActualRadius is the ring radius used, never less than the one requested.
	ActualRadius float64

	Iterations int
	Converged  bool
}

// Angles returns the relaxed angles in input order.
func (r Relaxation) Angles() []float64 {
	out := make([]float64, len(r.Positions))
	for i, p := range r.Positions {
		out[i] = p.Angle
	}
	return out
}

// AdjustNodeSpacing spreads ids around a ring so that the border gaps between
// neighbouring rectangles even out.
//
// Angles always restart from equal steps at startAngle (radians), so the
// result depends only on the count, the radius and the parameters. The ring
// grows when the nodes cannot fit on it. Each round measures every adjacent
// gap, then moves all nodes at once: towards zero gap while anything
// overlaps, otherwise towards the round's average gap. Fewer than two ids are
// returned at startAngle without relaxing.
func AdjustNodeSpacing(ids []string, params Params, center r2.Vec, radius, startAngle float64) Relaxation {
	n := len(ids)
	dir := params.direction()
	result := Relaxation{ActualRadius: radius, Converged: true}

	angles := make([]float64, n)
	step := geom.FullTurn / float64(max(n, 1))
	for i := range angles {
		angles[i] = startAngle + dir*float64(i)*step
	}

	if n >= 2 {
		required := float64(n) * (params.NodeWidth*ChordShrink + params.MinNodeSpacing)
		if required > geom.FullTurn*radius {
			result.ActualRadius = math.Ceil(required / geom.FullTurn)
		}
		result.Iterations, result.Converged = relaxAngles(angles, params, center, result.ActualRadius)
	}

	result.Positions = make([]RootPosition, n)
	for i, id := range ids {
		a := geom.Normalize(angles[i])
		result.Positions[i] = RootPosition{ID: id, Angle: a, Pos: geom.Polar(center, result.ActualRadius, a)}
	}
	return result
}

// relaxAngles updates angles in place and reports the rounds run and whether
// the last move fell under the convergence threshold.
func relaxAngles(angles []float64, params Params, center r2.Vec, radius float64) (int, bool) {
	n := len(angles)
	dir := params.direction()
	gaps := make([]float64, n)
	deltas := make([]float64, n)

	for round := 1; round <= MaxRelaxIterations; round++ {
		// gaps[i] is the distance between node i and node i+1.
		overlap := false
		var total float64
		for i := range angles {
			a := params.rectAt(geom.Polar(center, radius, angles[i]))
			b := params.rectAt(geom.Polar(center, radius, angles[(i+1)%n]))
			gaps[i] = geom.RectDistance(a, b)
			total += gaps[i]
			if gaps[i] < OverlapThreshold {
				overlap = true
			}
		}

		target, damping := total/float64(n), SpacingDamping
		if overlap {
			target, damping = 0, OverlapDamping
		}

		var largest float64
		for i := range angles {
			next, prev := gaps[i], gaps[(i-1+n)%n]
			correction := -dir*(target-next)/(2*radius) + dir*(target-prev)/(2*radius)
			deltas[i] = correction * damping
			largest = math.Max(largest, math.Abs(deltas[i]))
		}
		for i := range angles {
			angles[i] += deltas[i]
		}

		if largest*radius < ConvergenceThreshold {
			return round, true
		}
	}
	return MaxRelaxIterations, false
}
