package circular

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/geom"
	"github.com/matzehuels/orbit/pkg/mindmap"
	"github.com/matzehuels/orbit/pkg/observability"
)

// Layout modes reported to observability hooks.
const (
	ModeFull  = "full"
	ModeFocus = "focus"
)

// Result reports a whole-graph layout.
type Result struct {
	Success bool

	// ActualRadius is the root ring radius after relaxation. It is only set
	// when HasActualRadius is true, which requires at least two roots.
	ActualRadius    float64
	HasActualRadius bool

	// Placed is the number of positions written.
	Placed int

	// Exhausted counts fans that still collided after every retry.
	Exhausted int
}

// Engine runs radial layouts with fixed parameters.
type Engine struct {
	params Params
	logger *log.Logger
}

// New creates an engine. A nil logger discards output.
func New(params Params, logger *log.Logger) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{params: params, logger: logger}, nil
}

// Params returns the engine's parameters.
func (e *Engine) Params() Params { return e.params }

// ApplyCircularLayout lays out every tree of g around center with default
// logging. See Engine.ApplyCircularLayout.
func ApplyCircularLayout(g *mindmap.Graph, sink PositionSink, center r2.Vec, params Params) (Result, error) {
	e, err := New(params, nil)
	if err != nil {
		return Result{}, err
	}
	return e.ApplyCircularLayout(context.Background(), g, sink, center)
}

// ApplyCircularToSelected re-centers the subtree of selectedID with default
// logging. See Engine.ApplyCircularToSelected.
func ApplyCircularToSelected(g *mindmap.Graph, sink PositionSink, selectedID string, params Params) (bool, error) {
	e, err := New(params, nil)
	if err != nil {
		return false, err
	}
	return e.ApplyCircularToSelected(context.Background(), g, sink, selectedID)
}

// ApplyCircularLayout lays out every tree of g around center and writes all
// positions into sink.
//
// Roots go on the inner ring in sectors sized by their direct child counts.
// With two or more roots the ring is relaxed for even spacing, and each
// root's final sector runs between the midpoints to its neighbours. Every
// subtree is then placed within its root's sector. Root placement does not
// depend on what sink already holds.
//
// A graph without roots fails with NO_ROOTS and leaves sink untouched. The
// context is only passed to observability hooks.
func (e *Engine) ApplyCircularLayout(ctx context.Context, g *mindmap.Graph, sink PositionSink, center r2.Vec) (Result, error) {
	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, ModeFull, g.NodeCount())

	res, err := e.layoutAll(ctx, g, sink, center)

	observability.Layout().OnLayoutComplete(ctx, ModeFull, res.Placed, time.Since(start), err)
	return res, err
}

func (e *Engine) layoutAll(ctx context.Context, g *mindmap.Graph, sink PositionSink, center r2.Vec) (Result, error) {
	h := newHierarchy(g)
	roots := h.roots(g)
	if len(roots) == 0 {
		return Result{}, errors.New(errors.ErrCodeNoRoots, "no root nodes found among %d nodes", g.NodeCount())
	}
	e.logger.Debug("laying out forest", "roots", len(roots), "nodes", g.NodeCount())

	seen := make(map[string]bool)
	trees := make([]*TreeNode, len(roots))
	for i, id := range roots {
		trees[i] = h.build(id, nil, seen)
	}

	p := newPlacement(ctx, e.params, e.logger, center)
	startAngle := e.params.startRadians()

	// Roots first take the anchors of their proportional sectors.
	sectors := CalculateFlexibleSectors(trees, startAngle, geom.FullTurn, e.params.Clockwise)
	for i, t := range trees {
		p.place(t.ID, sectors[i].Mid(), e.params.InnerRadius)
	}

	res := Result{Success: true}
	if len(trees) >= 2 {
		rel := AdjustNodeSpacing(roots, e.params, center, e.params.InnerRadius, startAngle)
		e.logger.Debug("relaxed root ring",
			"roots", len(roots), "iterations", rel.Iterations,
			"radius", rel.ActualRadius, "converged", rel.Converged)
		observability.Layout().OnRelaxation(ctx, len(roots), rel.Iterations, rel.ActualRadius, rel.Converged)

		for _, rp := range rel.Positions {
			p.place(rp.ID, rp.Angle, rel.ActualRadius)
		}
		res.ActualRadius, res.HasActualRadius = rel.ActualRadius, true
		sectors = neighbourSectors(rel.Angles(), e.params.Clockwise)
	}

	for i, t := range trees {
		if !t.IsLeaf() {
			p.positionTreeInSector(t, sectors[i], 0)
		}
	}

	p.commit(sink)
	res.Placed = len(p.written)
	res.Exhausted = p.exhausted
	return res, nil
}

// ApplyCircularToSelected arranges the descendants of selectedID around the
// node's current position in sink. The node itself does not move.
//
// Children of the selected node get sectors proportional to their subtree
// sizes, never narrower than MinSectorAngle, and sit on the inner ring around
// the node unless an obstacle pushes them further out. Nodes outside the
// subtree that already have positions, the selected node included, are
// treated as obstacles. The call fails with NODE_NOT_FOUND, NO_POSITION or
// NO_CHILDREN, without touching sink, when the node is missing, unpositioned
// or childless.
func (e *Engine) ApplyCircularToSelected(ctx context.Context, g *mindmap.Graph, sink PositionSink, selectedID string) (bool, error) {
	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, ModeFocus, g.NodeCount())

	placed, err := e.layoutSelected(ctx, g, sink, selectedID)

	observability.Layout().OnLayoutComplete(ctx, ModeFocus, placed, time.Since(start), err)
	return err == nil, err
}

func (e *Engine) layoutSelected(ctx context.Context, g *mindmap.Graph, sink PositionSink, selectedID string) (int, error) {
	if _, ok := g.Nodes[selectedID]; !ok {
		return 0, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", selectedID)
	}
	anchor, ok := sink.Position(selectedID)
	if !ok {
		return 0, errors.New(errors.ErrCodeNoPosition, "node %q has no position", selectedID)
	}

	tree := newHierarchy(g).build(selectedID, nil, make(map[string]bool))
	if tree.IsLeaf() {
		return 0, errors.New(errors.ErrCodeNoChildren, "node %q has no children", selectedID)
	}
	e.logger.Debug("re-centering subtree", "node", selectedID, "size", tree.SubtreeSize)

	p := newPlacement(ctx, e.params, e.logger, anchor.Vec())
	inTree := make(map[string]bool, tree.SubtreeSize)
	tree.Walk(func(t *TreeNode) { inTree[t.ID] = true })
	for id := range g.Nodes {
		if inTree[id] && id != selectedID {
			continue
		}
		if pos, ok := sink.Position(id); ok {
			p.block(id, pos.Vec())
		}
	}

	sectors := subtreeSectors(tree.Children, e.params.startRadians(), geom.FullTurn,
		geom.Radians(e.params.MinSectorAngle), e.params.Clockwise)
	// Each child takes its sector midpoint on the inner ring, pushed outward
	// like any fan when it would touch an obstacle or an earlier sibling.
	for i, c := range tree.Children {
		p.fan(selectedID, []string{c.ID}, sectors[i].Mid(), e.params.InnerRadius, sectors[i])
		p.positionTreeInSector(c, sectors[i], 0)
	}

	p.commit(sink)
	return len(p.written), nil
}
