package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/orbit/pkg/cache"
	"github.com/matzehuels/orbit/pkg/mindmap"
	"github.com/matzehuels/orbit/pkg/observability"
)

// cacheKeyLayout labels layout entries in cache hooks.
const cacheKeyLayout = "layout"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute lays out g with caching.
//
// positions is only consulted in focus mode and is never modified. The
// returned positions are always a fresh map the caller may keep.
func (r *Runner) Execute(ctx context.Context, g *mindmap.Graph, positions mindmap.Positions, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	opts.Logger = loggerOr(opts.Logger, r.Logger)

	result := &Result{
		RunID: uuid.NewString(),
		Mode:  opts.Mode,
		Stats: Stats{
			NodeCount: g.NodeCount(),
			EdgeCount: g.EdgeCount(),
		},
	}

	graphData, err := mindmap.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	result.GraphHash = cache.Hash(graphData)

	start := time.Now()
	out, hit, err := r.GenerateLayoutWithCacheInfo(ctx, g, result.GraphHash, positions, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Stats.LayoutTime = time.Since(start)
	result.CacheHit = hit
	result.Positions = out.Positions
	result.ActualRadius = out.ActualRadius
	result.HasActualRadius = out.HasActualRadius
	result.Stats.Placed = out.Placed
	result.Stats.Exhausted = out.Exhausted

	opts.Logger.Info("computed layout",
		"run", result.RunID,
		"mode", result.Mode,
		"nodes", result.Stats.NodeCount,
		"placed", result.Stats.Placed,
		"cached", hit,
		"duration", result.Stats.LayoutTime)
	if out.Exhausted > 0 {
		opts.Logger.Warn("some children still overlap", "fans", out.Exhausted)
	}

	return result, nil
}

// GenerateLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, g *mindmap.Graph, graphHash string, positions mindmap.Positions, opts Options) (*LayoutOutput, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	opts.Logger = loggerOr(opts.Logger, r.Logger)

	posHash := ""
	if opts.IsFocus() {
		data, err := mindmap.MarshalPositions(positions)
		if err != nil {
			return nil, false, fmt.Errorf("serialize positions for cache key: %w", err)
		}
		posHash = cache.Hash(data)
	}
	cacheKey, err := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts(posHash))
	if err != nil {
		opts.Logger.Warn("cache key unavailable, bypassing cache", "error", err)
		out, err := generateLayout(ctx, g, positions, opts)
		return out, false, err
	}

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if out, err := unmarshalLayoutOutput(data); err == nil {
				observability.Cache().OnCacheHit(ctx, cacheKeyLayout)
				return out, true, nil
			}
			// Fall through on corrupt entries
		} else if err != nil {
			opts.Logger.Debug("cache lookup failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyLayout)
	}

	out, err := generateLayout(ctx, g, positions, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := out.marshal(); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Debug("cache store failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyLayout, len(data))
		}
	}

	return out, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
