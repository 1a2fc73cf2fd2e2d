package observability

import "sync"

type registry struct {
	mu       sync.RWMutex
	analysis AnalysisHooks
	cache    CacheHooks
	http     HTTPHooks
}

var hooks = newRegistry()

func newRegistry() *registry {
	return &registry{
		analysis: NoopAnalysisHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	}
}

// SetAnalysisHooks replaces the analysis hooks. nil is ignored.
func SetAnalysisHooks(h AnalysisHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.analysis = h
	hooks.mu.Unlock()
}

// SetCacheHooks replaces the cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// SetHTTPHooks replaces the HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.http = h
	hooks.mu.Unlock()
}

// Analysis returns the current analysis hooks.
func Analysis() AnalysisHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.analysis
}

// Cache returns the current cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// HTTP returns the current HTTP hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset puts the no-op hooks back. Tests call it in cleanup.
func Reset() {
	fresh := newRegistry()
	hooks.mu.Lock()
	hooks.analysis, hooks.cache, hooks.http = fresh.analysis, fresh.cache, fresh.http
	hooks.mu.Unlock()
}
