package circular

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/geom"
)

// Defaults for Params.
const (
	DefaultInnerRadius         = 150.0
	DefaultLevelSpacing        = 120.0
	DefaultStartAngle          = -90.0
	DefaultMinSectorAngle      = 30.0
	DefaultNodeSpacing         = 20.0
	DefaultSpacingRatio        = 1.0
	DefaultNodeWidth           = 120.0
	DefaultNodeHeight          = 40.0
	DefaultMinNodeSpacing      = 10.0
	DefaultNodeSizeScaleFactor = 1.0
)

// Params configures a radial layout. Lengths are pixels and angles degrees.
type Params struct {
	// InnerRadius is the radius of the ring holding depth-0 nodes.
	InnerRadius float64 `toml:"inner_radius" json:"inner_radius"`

	// LevelSpacing is the radial distance between generations.
	LevelSpacing float64 `toml:"level_spacing" json:"level_spacing"`

	// StartAngle is where the first root goes; 0° points up.
	StartAngle float64 `toml:"start_angle" json:"start_angle"`

	// Clockwise selects the direction in which roots and children are laid out.
	Clockwise bool `toml:"clockwise" json:"clockwise"`

	// MinSectorAngle floors each child sector when re-centering a subtree.
	MinSectorAngle float64 `toml:"min_sector_angle" json:"min_sector_angle"`

	// NodeSpacing is informational and not used by placement.
	NodeSpacing float64 `toml:"node_spacing" json:"node_spacing"`

	// SpacingRatio is reserved.
	SpacingRatio float64 `toml:"spacing_ratio" json:"spacing_ratio"`

	// NodeWidth and NodeHeight give the rectangle used for collision tests.
	NodeWidth  float64 `toml:"node_width" json:"node_width"`
	NodeHeight float64 `toml:"node_height" json:"node_height"`

	// MinNodeSpacing is the smallest border gap that does not count as a collision.
	MinNodeSpacing float64 `toml:"min_node_spacing" json:"min_node_spacing"`

	// NodeSizeScaleFactor is reserved.
	NodeSizeScaleFactor float64 `toml:"node_size_scale_factor" json:"node_size_scale_factor"`
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() Params {
	return Params{
		InnerRadius:         DefaultInnerRadius,
		LevelSpacing:        DefaultLevelSpacing,
		StartAngle:          DefaultStartAngle,
		Clockwise:           true,
		MinSectorAngle:      DefaultMinSectorAngle,
		NodeSpacing:         DefaultNodeSpacing,
		SpacingRatio:        DefaultSpacingRatio,
		NodeWidth:           DefaultNodeWidth,
		NodeHeight:          DefaultNodeHeight,
		MinNodeSpacing:      DefaultMinNodeSpacing,
		NodeSizeScaleFactor: DefaultNodeSizeScaleFactor,
	}
}

// Validate checks that all lengths and angles are usable.
func (p Params) Validate() error {
	finite := []struct {
		name string
		v    float64
	}{
		{"inner_radius", p.InnerRadius},
		{"level_spacing", p.LevelSpacing},
		{"start_angle", p.StartAngle},
		{"min_sector_angle", p.MinSectorAngle},
		{"node_width", p.NodeWidth},
		{"node_height", p.NodeHeight},
		{"min_node_spacing", p.MinNodeSpacing},
		{"node_spacing", p.NodeSpacing},
		{"spacing_ratio", p.SpacingRatio},
		{"node_size_scale_factor", p.NodeSizeScaleFactor},
	}
	for _, f := range finite {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.New(errors.ErrCodeInvalidParams, "%s must be a finite number", f.name)
		}
	}

	switch {
	case p.InnerRadius <= 0:
		return errors.New(errors.ErrCodeInvalidParams, "inner_radius must be positive, got %g", p.InnerRadius)
	case p.LevelSpacing <= 0:
		return errors.New(errors.ErrCodeInvalidParams, "level_spacing must be positive, got %g", p.LevelSpacing)
	case p.NodeWidth <= 0 || p.NodeHeight <= 0:
		return errors.New(errors.ErrCodeInvalidParams, "node size must be positive, got %gx%g", p.NodeWidth, p.NodeHeight)
	case p.MinNodeSpacing < 0:
		return errors.New(errors.ErrCodeInvalidParams, "min_node_spacing must not be negative, got %g", p.MinNodeSpacing)
	case p.MinSectorAngle < 0 || p.MinSectorAngle >= 360:
		return errors.New(errors.ErrCodeInvalidParams, "min_sector_angle must be in [0, 360), got %g", p.MinSectorAngle)
	case p.NodeSpacing < 0:
		return errors.New(errors.ErrCodeInvalidParams, "node_spacing must not be negative, got %g", p.NodeSpacing)
	case p.SpacingRatio <= 0:
		return errors.New(errors.ErrCodeInvalidParams, "spacing_ratio must be positive, got %g", p.SpacingRatio)
	case p.NodeSizeScaleFactor <= 0:
		return errors.New(errors.ErrCodeInvalidParams, "node_size_scale_factor must be positive, got %g", p.NodeSizeScaleFactor)
	}
	return nil
}

// startRadians converts StartAngle to the internal convention where 0 points
// along +x.
func (p Params) startRadians() float64 {
	return geom.Normalize(geom.Radians(p.StartAngle) - math.Pi/2)
}

// direction is +1 for clockwise and -1 for counter-clockwise steps.
func (p Params) direction() float64 {
	if p.Clockwise {
		return 1
	}
	return -1
}

func (p Params) nodeSize() r2.Vec {
	return r2.Vec{X: p.NodeWidth, Y: p.NodeHeight}
}

func (p Params) rectAt(v r2.Vec) geom.Rect {
	return geom.Rect{Center: v, Size: p.nodeSize()}
}

// ringRadius is the nominal radius of generation depth.
func (p Params) ringRadius(depth int) float64 {
	return p.InnerRadius + float64(depth)*p.LevelSpacing
}
