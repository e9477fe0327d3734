package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogDiagramHooks logs diagram events at debug level.
type LogDiagramHooks struct {
	Logger *log.Logger
}

func (h LogDiagramHooks) OnMount(_ context.Context, id string) {
	h.Logger.Debug("diagram mounted", "id", id)
}

func (h LogDiagramHooks) OnConvert(_ context.Context, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("tree conversion failed", "err", err)
		return
	}
	h.Logger.Debug("tree converted", "nodes", nodeCount, "took", d)
}

func (h LogDiagramHooks) OnCentered(_ context.Context, id string, x, y float64) {
	h.Logger.Debug("diagram centered", "id", id, "x", x, "y", y)
}

func (h LogDiagramHooks) OnLayout(_ context.Context, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout failed", "err", err)
		return
	}
	h.Logger.Debug("layout computed", "nodes", nodeCount, "took", d)
}

func (h LogDiagramHooks) OnRender(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "format", format, "err", err)
		return
	}
	h.Logger.Debug("rendered", "format", format, "bytes", size, "took", d)
}

// LogCacheHooks logs cache events at debug level.
type LogCacheHooks struct {
	Logger *log.Logger
}

func (h LogCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

// LogServerHooks reports failed requests: server errors at warn level,
// client errors at debug level.
type LogServerHooks struct {
	Logger *log.Logger
}

func (h LogServerHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	switch {
	case status >= 500:
		h.Logger.Warn("request failed", "method", method, "route", route, "status", status, "took", d)
	case status >= 400:
		h.Logger.Debug("request rejected", "method", method, "route", route, "status", status, "took", d)
	}
}

var (
	_ DiagramHooks = LogDiagramHooks{}
	_ CacheHooks   = LogCacheHooks{}
	_ ServerHooks  = LogServerHooks{}
)
