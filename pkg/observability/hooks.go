// Package observability lets a binary observe layout runs, cache lookups,
// and API requests without the libraries importing a metrics backend.
//
// Libraries call the hooks returned by [Layout], [Cache], and [HTTP]. They
// are no-ops until main installs real implementations:
//
//	observability.SetLayoutHooks(promLayoutHooks{})
//
// Installing nil keeps the current hooks.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// LayoutHooks receives events from the radial layout engine.
type LayoutHooks interface {
	// OnLayoutStart fires before a pass; mode is "full" or "focus".
	OnLayoutStart(ctx context.Context, mode string, nodeCount int)

	// OnLayoutComplete fires after a pass with the number of placed nodes.
	OnLayoutComplete(ctx context.Context, mode string, placed int, duration time.Duration, err error)

	// OnRelaxation reports the outcome of root spacing relaxation.
	OnRelaxation(ctx context.Context, roots, iterations int, radius float64, converged bool)

	// OnCollisionExhausted fires when a fan-out still collides after all retries.
	OnCollisionExhausted(ctx context.Context, parentID string, children int, radius float64)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response status and handling time.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks ignores every layout event.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, string, int)                          {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}
func (NoopLayoutHooks) OnRelaxation(context.Context, int, int, float64, bool)               {}
func (NoopLayoutHooks) OnCollisionExhausted(context.Context, string, int, float64)          {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every request.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds the installed implementation of one hook interface.
type slot[T any] struct{ p atomic.Pointer[T] }

func (s *slot[T]) load(def T) T {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return def
}

func (s *slot[T]) store(h *T) { s.p.Store(h) }

var (
	layoutSlot slot[LayoutHooks]
	cacheSlot  slot[CacheHooks]
	httpSlot   slot[HTTPHooks]
)

// SetLayoutHooks installs h for all later layout runs.
func SetLayoutHooks(h LayoutHooks) {
	if h != nil {
		layoutSlot.store(&h)
	}
}

// SetCacheHooks installs h for all later cache lookups.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.store(&h)
	}
}

// SetHTTPHooks installs h for all later requests.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.store(&h)
	}
}

// Layout returns the installed layout hooks.
func Layout() LayoutHooks { return layoutSlot.load(NoopLayoutHooks{}) }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.load(NoopCacheHooks{}) }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.load(NoopHTTPHooks{}) }

// Reset restores the no-op hooks. Tests use it in cleanups.
func Reset() {
	layoutSlot.store(nil)
	cacheSlot.store(nil)
	httpSlot.store(nil)
}
