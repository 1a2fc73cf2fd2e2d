package cache

import "strings"

// ScopedKeyer prepends a fixed namespace to every key produced by another
// Keyer. The runner scopes keys by build version so a new release never
// reads results written by an older matcher.
type ScopedKeyer struct {
	inner Keyer
	scope string
}

// NewScopedKeyer returns a Keyer whose keys start with scope followed by a
// colon. A trailing colon on scope is not doubled. A nil inner uses
// [DefaultKeyer]; an empty scope returns inner unchanged.
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	scope = strings.TrimSuffix(scope, ":")
	if scope == "" {
		return inner
	}
	return &ScopedKeyer{inner: inner, scope: scope + ":"}
}

func (k *ScopedKeyer) ResultKey(op, graphHash string, opts any) string {
	return k.scope + k.inner.ResultKey(op, graphHash, opts)
}
