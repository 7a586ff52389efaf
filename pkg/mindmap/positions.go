package mindmap

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// Position is the center of a node in screen coordinates (y grows downward).
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Vec converts the position to a gonum vector.
func (p Position) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// FromVec converts a gonum vector to a position.
func FromVec(v r2.Vec) Position { return Position{X: v.X, Y: v.Y} }

// Positions maps node IDs to their centers. It is the default sink the layout
// engine writes into.
type Positions map[string]Position

// Position returns the stored position of id.
func (p Positions) Position(id string) (Position, bool) {
	pos, ok := p[id]
	return pos, ok
}

// SetPosition stores the position of id.
func (p Positions) SetPosition(id string, pos Position) {
	p[id] = pos
}

// IDs returns the positioned node IDs in sorted order.
func (p Positions) IDs() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clone returns a shallow copy.
func (p Positions) Clone() Positions {
	out := make(Positions, len(p))
	for id, pos := range p {
		out[id] = pos
	}
	return out
}

// Bounds returns the box spanned by all node centers expanded by half of
// nodeSize on each side. An empty map yields the zero box.
func (p Positions) Bounds(nodeSize r2.Vec) r2.Box {
	if len(p) == 0 {
		return r2.Box{}
	}
	lo := r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi := r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, pos := range p {
		lo.X = math.Min(lo.X, pos.X)
		lo.Y = math.Min(lo.Y, pos.Y)
		hi.X = math.Max(hi.X, pos.X)
		hi.Y = math.Max(hi.Y, pos.Y)
	}
	half := r2.Scale(0.5, nodeSize)
	return r2.Box{Min: r2.Sub(lo, half), Max: r2.Add(hi, half)}
}
