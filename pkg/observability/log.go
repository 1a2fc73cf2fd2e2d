package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

var (
	_ AnalysisHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)

// NewLogHooks returns hooks that log through logger. A nil logger uses
// [log.Default].
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnValidate(_ context.Context, nodeCount int, valid bool, d time.Duration) {
	h.logger.Debug("validate", "nodes", nodeCount, "valid", valid, "took", d)
}

func (h *LogHooks) OnOrder(_ context.Context, mode string, nodeCount, visited int, d time.Duration) {
	h.logger.Debug("order", "mode", mode, "nodes", nodeCount, "visited", visited, "took", d)
}

func (h *LogHooks) OnMatchStart(_ context.Context, patternNodes, targetNodes int) {
	h.logger.Debug("match started", "pattern", patternNodes, "target", targetNodes)
}

func (h *LogHooks) OnMatchComplete(_ context.Context, found bool, checks int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("match failed", "checks", checks, "took", d, "err", err)
		return
	}
	h.logger.Debug("match", "found", found, "checks", checks, "took", d)
}

func (h *LogHooks) OnTransform(_ context.Context, edgesRemoved int, d time.Duration) {
	h.logger.Debug("transform", "removed", edgesRemoved, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, op string) {
	h.logger.Debug("cache hit", "op", op)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, op string) {
	h.logger.Debug("cache miss", "op", op)
}

func (h *LogHooks) OnCacheSet(_ context.Context, op string, size int) {
	h.logger.Debug("cache set", "op", op, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "took", d)
}
