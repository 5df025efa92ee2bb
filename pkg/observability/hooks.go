// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout computation, diff runs, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Callers wrap the pure packages with hook calls:
//
//	observability.Layout().OnLayoutStart(ctx, nodeCount, taskCount)
//	res := layout.Compute(in, cfg)
//	observability.Layout().OnLayoutComplete(ctx, len(res.Nodes), time.Since(start), nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout computation.
type LayoutHooks interface {
	// OnLayoutStart records the start of a layout run.
	OnLayoutStart(ctx context.Context, branchCount, taskCount int)

	// OnLayoutComplete records the end of a layout run with the number of
	// placed nodes.
	OnLayoutComplete(ctx context.Context, placedCount int, duration time.Duration, err error)

	// OnOverlaySkipped records a tentative overlay that was dropped because
	// its anchor does not exist in the branch graph.
	OnOverlaySkipped(ctx context.Context, anchor string)
}

// =============================================================================
// Diff Hooks
// =============================================================================

// DiffHooks receives events from diff computation.
type DiffHooks interface {
	// OnDiffStart records the start of a diff run.
	OnDiffStart(ctx context.Context, oldLines, newLines int)

	// OnDiffComplete records the end of a diff run.
	OnDiffComplete(ctx context.Context, opCount int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, int, int)                     {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {}
func (NoopLayoutHooks) OnOverlaySkipped(context.Context, string)                    {}

// NoopDiffHooks is a no-op implementation of DiffHooks.
type NoopDiffHooks struct{}

func (NoopDiffHooks) OnDiffStart(context.Context, int, int)              {}
func (NoopDiffHooks) OnDiffComplete(context.Context, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	diffHooks   DiffHooks   = NoopDiffHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout runs.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetDiffHooks registers custom diff hooks.
// This should be called once at application startup before any diff runs.
func SetDiffHooks(h DiffHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		diffHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Diff returns the registered diff hooks.
func Diff() DiffHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return diffHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	diffHooks = NoopDiffHooks{}
	cacheHooks = NoopCacheHooks{}
}
