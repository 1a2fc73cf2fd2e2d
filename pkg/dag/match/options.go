package match

import "github.com/matzehuels/dagmatch/pkg/graph"

// EqualFunc reports whether a pattern payload matches a target payload.
type EqualFunc func(pattern, target any) bool

// Stats records the work done by one [FindMapping] call.
type Stats struct {
	// Checks is the number of candidate pairs tested for feasibility.
	Checks int `json:"checks"`
	// Backtracks is the number of committed pairs that were undone.
	Backtracks int `json:"backtracks"`
	// MaxDepth is the largest number of pattern nodes mapped at once.
	MaxDepth int `json:"max_depth"`
}

// Option configures [FindMapping].
type Option func(*options)

type options struct {
	equal EqualFunc
	stats *Stats
}

func defaultOptions() options {
	return options{equal: graph.DataEqual}
}

// WithEqual replaces the payload comparison. A nil fn keeps the default.
func WithEqual(fn EqualFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.equal = fn
		}
	}
}

// WithStats makes FindMapping record its work into st. st is reset first.
func WithStats(st *Stats) Option {
	return func(o *options) { o.stats = st }
}
