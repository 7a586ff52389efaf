package pipeline

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/orbit/pkg/layout/circular"
	"github.com/matzehuels/orbit/pkg/mindmap"
)

// LayoutOutput is the cacheable part of a Result.
type LayoutOutput struct {
	Positions       mindmap.Positions `json:"positions"`
	ActualRadius    float64           `json:"actual_radius,omitempty"`
	HasActualRadius bool              `json:"has_actual_radius,omitempty"`
	Placed          int               `json:"placed"`
	Exhausted       int               `json:"exhausted,omitempty"`
}

func (l *LayoutOutput) marshal() ([]byte, error) {
	return json.Marshal(l)
}

func unmarshalLayoutOutput(data []byte) (*LayoutOutput, error) {
	var l LayoutOutput
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	if l.Positions == nil {
		l.Positions = mindmap.Positions{}
	}
	return &l, nil
}

// generateLayout runs the engine for opts.Mode without caching.
//
// positions is only read in focus mode, where it anchors the selected node and
// supplies obstacles. It is never modified.
func generateLayout(ctx context.Context, g *mindmap.Graph, positions mindmap.Positions, opts Options) (*LayoutOutput, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	engine, err := circular.New(opts.EngineParams(), opts.Logger)
	if err != nil {
		return nil, err
	}

	if opts.IsFocus() {
		return generateFocusLayout(ctx, engine, g, positions, opts.Selected)
	}
	return generateFullLayout(ctx, engine, g, r2.Vec{X: opts.CenterX, Y: opts.CenterY})
}

func generateFullLayout(ctx context.Context, engine *circular.Engine, g *mindmap.Graph, center r2.Vec) (*LayoutOutput, error) {
	sink := mindmap.Positions{}
	res, err := engine.ApplyCircularLayout(ctx, g, sink, center)
	if err != nil {
		return nil, err
	}
	return &LayoutOutput{
		Positions:       sink,
		ActualRadius:    res.ActualRadius,
		HasActualRadius: res.HasActualRadius,
		Placed:          res.Placed,
		Exhausted:       res.Exhausted,
	}, nil
}

func generateFocusLayout(ctx context.Context, engine *circular.Engine, g *mindmap.Graph, positions mindmap.Positions, selected string) (*LayoutOutput, error) {
	sink := positions.Clone()
	before := positions.Clone()
	if _, err := engine.ApplyCircularToSelected(ctx, g, sink, selected); err != nil {
		return nil, err
	}

	moved := 0
	for id, pos := range sink {
		if old, ok := before[id]; !ok || old != pos {
			moved++
		}
	}
	return &LayoutOutput{Positions: sink, Placed: moved}, nil
}

// loggerOr returns l, or fallback when l is nil.
func loggerOr(l, fallback *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return fallback
}
