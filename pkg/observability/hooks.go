// Package observability lets callers plug metrics, tracing or logging into
// dagmatch without the libraries depending on any backend.
//
// The pipeline, the caches and the HTTP server report events to whatever
// hooks are registered. Until something is registered every event goes to
// a no-op implementation. [LogHooks] is a ready-made implementation that
// writes each event to a charmbracelet logger at debug level.
//
// Register hooks once, before work starts:
//
//	hooks := observability.NewLogHooks(logger)
//	observability.SetAnalysisHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	observability.SetHTTPHooks(hooks)
package observability

import (
	"context"
	"time"
)

// AnalysisHooks receives events from the analysis pipeline.
type AnalysisHooks interface {
	OnValidate(ctx context.Context, nodeCount int, valid bool, duration time.Duration)
	OnOrder(ctx context.Context, mode string, nodeCount, visited int, duration time.Duration)
	OnMatchStart(ctx context.Context, patternNodes, targetNodes int)
	// OnMatchComplete fires after every search, including failed ones.
	// checks counts the candidate pairs tested.
	OnMatchComplete(ctx context.Context, found bool, checks int, duration time.Duration, err error)
	OnTransform(ctx context.Context, edgesRemoved int, duration time.Duration)
}

// CacheHooks receives events from the pipeline's result cache. op is the
// pipeline operation whose result was looked up or stored.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, op string)
	OnCacheMiss(ctx context.Context, op string)
	OnCacheSet(ctx context.Context, op string, size int)
}

// HTTPHooks receives events from the HTTP server. path is the raw request
// path, not the route pattern.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopAnalysisHooks discards analysis events.
type NoopAnalysisHooks struct{}

func (NoopAnalysisHooks) OnValidate(context.Context, int, bool, time.Duration)             {}
func (NoopAnalysisHooks) OnOrder(context.Context, string, int, int, time.Duration)         {}
func (NoopAnalysisHooks) OnMatchStart(context.Context, int, int)                           {}
func (NoopAnalysisHooks) OnMatchComplete(context.Context, bool, int, time.Duration, error) {}
func (NoopAnalysisHooks) OnTransform(context.Context, int, time.Duration)                  {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
