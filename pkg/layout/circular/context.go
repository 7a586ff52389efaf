package circular

import (
	"context"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/orbit/pkg/geom"
	"github.com/matzehuels/orbit/pkg/mindmap"
	"github.com/matzehuels/orbit/pkg/observability"
)

// PositionSink is the caller-owned store the engine reads anchors from and
// writes results into. mindmap.Positions implements it.
type PositionSink interface {
	Position(id string) (mindmap.Position, bool)
	SetPosition(id string, pos mindmap.Position)
}

// polar records where a node sits relative to the pass center.
type polar struct {
	angle  float64
	radius float64
}

// placement is the state of one layout pass. occupied holds every rectangle
// collision tests must avoid; only ids in written are committed to the sink.
type placement struct {
	ctx    context.Context
	params Params
	logger *log.Logger
	center r2.Vec

	occupied map[string]r2.Vec
	polar    map[string]polar
	written  []string

	exhausted int
}

func newPlacement(ctx context.Context, params Params, logger *log.Logger, center r2.Vec) *placement {
	return &placement{
		ctx:      ctx,
		params:   params,
		logger:   logger,
		center:   center,
		occupied: make(map[string]r2.Vec),
		polar:    make(map[string]polar),
	}
}

// block marks a position as taken without writing it back.
func (p *placement) block(id string, pos r2.Vec) {
	p.occupied[id] = pos
}

// place records a node at angle and radius around the center.
func (p *placement) place(id string, angle, radius float64) {
	if _, ok := p.polar[id]; !ok {
		p.written = append(p.written, id)
	}
	angle = geom.Normalize(angle)
	p.polar[id] = polar{angle: angle, radius: radius}
	p.occupied[id] = geom.Polar(p.center, radius, angle)
}

func (p *placement) placed(id string) (polar, bool) {
	pp, ok := p.polar[id]
	return pp, ok
}

// commit writes every placed node to sink in placement order.
func (p *placement) commit(sink PositionSink) {
	for _, id := range p.written {
		sink.SetPosition(id, mindmap.FromVec(p.occupied[id]))
	}
}

// fan places the children of parent with PlaceChildrenOnCircle, testing them
// against everything occupied so far.
func (p *placement) fan(parent string, ids []string, angle, radius float64, sector geom.Sector) {
	fan := PlaceChildrenOnCircle(ids, angle, radius, sector, p.center, p.params, p.occupied)
	if fan.Collided {
		p.exhausted++
		p.logger.Warn("collision retries exhausted", "parent", parent, "children", len(ids), "radius", fan.Radius)
		observability.Layout().OnCollisionExhausted(p.ctx, parent, len(ids), fan.Radius)
	}
	for _, c := range fan.Children {
		p.place(c.ID, c.Angle, fan.Radius)
	}
}

// positionTreeInSector places the descendants of t inside sector; t itself
// must already be placed. Children are fanned by PlaceChildrenOnCircle and
// each recurses into an equal slice of the sector.
func (p *placement) positionTreeInSector(t *TreeNode, sector geom.Sector, depth int) {
	self, ok := p.placed(t.ID)
	if !ok || t.IsLeaf() {
		return
	}

	ids := make([]string, len(t.Children))
	for i, c := range t.Children {
		ids[i] = c.ID
	}
	childRadius := max(p.params.ringRadius(depth+1), self.radius+p.params.LevelSpacing)
	p.fan(t.ID, ids, self.angle, childRadius, sector)

	parts := sector.Slice(len(t.Children))
	for i, c := range t.Children {
		p.positionTreeInSector(c, sliceFor(parts, i, p.params.Clockwise), depth+1)
	}
}
