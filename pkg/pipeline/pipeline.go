// Package pipeline runs graph analyses for the CLI and the HTTP API.
//
// The graph core (pkg/dag and its subpackages) is pure: no context, no
// logging, no limits, no caching. This package wraps it with everything an
// entry point needs so the CLI and the server behave the same way:
//
//   - cancellation: every operation checks the context before working
//   - limits: input sizes are checked against [Limits], so the exponential
//     subgraph search only ever sees bounded inputs
//   - caching: results are stored under a key derived from the graph
//     content and the options (see [cache.Keyer])
//   - instrumentation: events go to the [observability] hooks and a
//     structured log line records each call with its duration
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Validate(ctx, g)
//	order, err := runner.Order(ctx, g, pipeline.OrderOptions{Mode: pipeline.OrderBFS})
//	m, err := runner.Match(ctx, pattern, target)
//
// [cache.Keyer]: github.com/matzehuels/dagmatch/pkg/cache.Keyer
// [observability]: github.com/matzehuels/dagmatch/pkg/observability
package pipeline

import (
	"strings"

	"github.com/matzehuels/dagmatch/pkg/dag/match"
	apperrors "github.com/matzehuels/dagmatch/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxGraphNodes bounds documents passed to validate, order and
	// transform.
	DefaultMaxGraphNodes = 100_000

	// DefaultMaxPatternNodes bounds the pattern of a subgraph search. The
	// search is exponential in the pattern size.
	DefaultMaxPatternNodes = 32

	// DefaultMaxTargetNodes bounds the target of a subgraph search.
	DefaultMaxTargetNodes = 5_000
)

// Limits bounds the inputs the runner accepts. A zero field disables that
// check.
type Limits struct {
	MaxGraphNodes   int `json:"max_graph_nodes" toml:"max_graph_nodes"`
	MaxPatternNodes int `json:"max_pattern_nodes" toml:"max_pattern_nodes"`
	MaxTargetNodes  int `json:"max_target_nodes" toml:"max_target_nodes"`
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxGraphNodes:   DefaultMaxGraphNodes,
		MaxPatternNodes: DefaultMaxPatternNodes,
		MaxTargetNodes:  DefaultMaxTargetNodes,
	}
}

// =============================================================================
// Order Options
// =============================================================================

// OrderMode selects the traversal used by [Runner.Order].
type OrderMode string

const (
	OrderTopological OrderMode = "topo"
	OrderBFS         OrderMode = "bfs"
	OrderDFS         OrderMode = "dfs"
)

// OrderModes lists the accepted modes in display order.
var OrderModes = []OrderMode{OrderTopological, OrderBFS, OrderDFS}

// ParseOrderMode converts a user-supplied mode. The empty string means
// topological order; matching is case-insensitive.
func ParseOrderMode(s string) (OrderMode, error) {
	switch OrderMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderTopological, "topological":
		return OrderTopological, nil
	case OrderBFS:
		return OrderBFS, nil
	case OrderDFS, "postorder":
		return OrderDFS, nil
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidInput,
		"invalid order mode: %q (must be one of: topo, bfs, dfs)", s)
}

// OrderOptions configures [Runner.Order].
type OrderOptions struct {
	Mode OrderMode `json:"mode"`

	// Start lists the nodes BFS and DFS start from. Empty means the roots.
	// Topological order ignores it.
	Start []string `json:"start,omitempty"`
}

// ValidateAndSetDefaults normalizes the mode and rejects unknown ones.
func (o *OrderOptions) ValidateAndSetDefaults() error {
	mode, err := ParseOrderMode(string(o.Mode))
	if err != nil {
		return err
	}
	o.Mode = mode
	if mode == OrderTopological {
		o.Start = nil
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// MatchResult is the outcome of [Runner.Match].
type MatchResult struct {
	Found   bool          `json:"found"`
	Mapping match.Mapping `json:"mapping"`
	Stats   match.Stats   `json:"stats"`
}

// TransformOptions configures [Runner.Transform].
type TransformOptions struct {
	BreakCycles bool `json:"break_cycles"`
	Reduce      bool `json:"reduce"`
}

// String describes the selected steps for log lines.
func (o TransformOptions) String() string {
	var steps []string
	if o.BreakCycles {
		steps = append(steps, "break-cycles")
	}
	if o.Reduce {
		steps = append(steps, "reduce")
	}
	if len(steps) == 0 {
		return "none"
	}
	return strings.Join(steps, ",")
}
