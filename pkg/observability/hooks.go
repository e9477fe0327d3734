// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about diagram rendering, cache operations, and the HTTP host.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [LogDiagramHooks] and [LogCacheHooks] forward events to a charmbracelet
// logger at debug level; the CLI registers them when --verbose is set.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDiagramHooks(observability.LogDiagramHooks{Logger: logger})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Diagram().OnConvert(ctx, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Diagram Hooks
// =============================================================================

// DiagramHooks receives events from mounted diagrams.
type DiagramHooks interface {
	// OnMount records a new diagram instance.
	OnMount(ctx context.Context, id string)

	// OnConvert records a tree conversion.
	OnConvert(ctx context.Context, nodeCount int, duration time.Duration, err error)

	// OnCentered records the one-time centering of a diagram.
	OnCentered(ctx context.Context, id string, x, y float64)

	// OnLayout records a Graphviz layout run.
	OnLayout(ctx context.Context, nodeCount int, duration time.Duration, err error)

	// OnRender records the production of an artifact.
	OnRender(ctx context.Context, format string, size int, duration time.Duration, err error)
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
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP host.
type ServerHooks interface {
	// OnRequest records a handled request.
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDiagramHooks is a no-op implementation of DiagramHooks.
type NoopDiagramHooks struct{}

func (NoopDiagramHooks) OnMount(context.Context, string)                             {}
func (NoopDiagramHooks) OnConvert(context.Context, int, time.Duration, error)        {}
func (NoopDiagramHooks) OnCentered(context.Context, string, float64, float64)        {}
func (NoopDiagramHooks) OnLayout(context.Context, int, time.Duration, error)         {}
func (NoopDiagramHooks) OnRender(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	diagramHooks DiagramHooks = NoopDiagramHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	serverHooks  ServerHooks  = NoopServerHooks{}
	hooksMu      sync.RWMutex
)

// SetDiagramHooks registers custom diagram hooks.
// This should be called once at application startup before any diagram is mounted.
func SetDiagramHooks(h DiagramHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		diagramHooks = h
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

// SetServerHooks registers custom server hooks.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Diagram returns the registered diagram hooks.
func Diagram() DiagramHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return diagramHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	diagramHooks = NoopDiagramHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}
