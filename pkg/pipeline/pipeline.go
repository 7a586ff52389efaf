// Package pipeline provides the load → layout pipeline shared by the CLI and
// the HTTP API.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: Read a mindmap from JSON or DOT and validate it
//  2. Layout: Compute radial positions, either for the whole forest (full
//     mode) or for the subtree of one node (focus mode)
//
// Layout results are cached by graph content, parameters, mode and, in focus
// mode, the input positions.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	g, err := pipeline.LoadGraph("ideas.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, g, nil, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = mindmap.WritePositionsFile(result.Positions, "ideas.positions.json")
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orbit/pkg/cache"
	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/layout/circular"
	"github.com/matzehuels/orbit/pkg/mindmap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Layout modes.
const (
	// ModeFull lays out every tree of the graph.
	ModeFull = circular.ModeFull

	// ModeFocus re-centers the subtree of Options.Selected.
	ModeFocus = circular.ModeFocus
)

// DefaultMode is the layout mode used when none is given.
const DefaultMode = ModeFull

// ValidModes is the set of supported layout modes.
var ValidModes = map[string]bool{
	ModeFull:  true,
	ModeFocus: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one layout run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Mode is "full" or "focus". Empty means full.
	Mode string `json:"mode,omitempty"`

	// Selected is the node whose subtree is re-centered in focus mode.
	Selected string `json:"selected,omitempty"`

	// CenterX and CenterY locate the layout center in full mode.
	CenterX float64 `json:"center_x,omitempty"`
	CenterY float64 `json:"center_y,omitempty"`

	// Params overrides the engine parameters. Nil means circular.DefaultParams.
	Params *circular.Params `json:"params,omitempty"`

	// Refresh skips the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string `json:"run_id"`

	// Mode is the layout mode that ran.
	Mode string `json:"mode"`

	// GraphHash is the content hash of the graph.
	GraphHash string `json:"graph_hash"`

	// Positions holds every positioned node. In focus mode this includes the
	// unchanged input positions.
	Positions mindmap.Positions `json:"positions"`

	// ActualRadius is the relaxed root ring radius; see circular.Result.
	ActualRadius    float64 `json:"actual_radius,omitempty"`
	HasActualRadius bool    `json:"has_actual_radius"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheHit reports whether the layout came from the cache.
	CacheHit bool `json:"cache_hit"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int           `json:"node_count"`
	EdgeCount  int           `json:"edge_count"`
	Placed     int           `json:"placed"`
	Exhausted  int           `json:"exhausted"`
	LayoutTime time.Duration `json:"layout_time_ns"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateMode checks that a layout mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be one of: full, focus)", mode)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if o.IsFocus() {
		if err := errors.ValidateNodeID(o.Selected); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "focus mode needs a selected node")
		}
	}
	if o.Params == nil {
		p := circular.DefaultParams()
		o.Params = &p
	}
	if err := o.Params.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// IsFocus returns true when only a subtree is laid out.
func (o Options) IsFocus() bool {
	return o.Mode == ModeFocus
}

// EngineParams returns the effective engine parameters.
func (o Options) EngineParams() circular.Params {
	if o.Params == nil {
		return circular.DefaultParams()
	}
	return *o.Params
}

// LayoutKeyOpts returns the cache key options for a layout run.
// positionsHash is only recorded in focus mode, where the input positions
// change the result.
func (o Options) LayoutKeyOpts(positionsHash string) cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Mode:   o.Mode,
		Params: o.EngineParams(),
	}
	if o.IsFocus() {
		k.Selected = o.Selected
		k.PositionsHash = positionsHash
	} else {
		k.CenterX, k.CenterY = o.CenterX, o.CenterY
	}
	return k
}
