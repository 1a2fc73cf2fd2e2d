package transform

import "github.com/matzehuels/dagmatch/pkg/dag"

// Result reports what [Apply] changed.
type Result struct {
	// CyclesRemoved is the number of back edges removed. Zero means the
	// input was already acyclic or cycle breaking was not requested.
	CyclesRemoved int `json:"cycles_removed"`

	// TransitiveEdgesRemoved is the number of edges removed by transitive
	// reduction.
	TransitiveEdgesRemoved int `json:"transitive_edges_removed"`
}

// Removed returns the total number of edges removed.
func (r Result) Removed() int { return r.CyclesRemoved + r.TransitiveEdgesRemoved }

// Options selects the steps run by [Apply]. The zero value does nothing.
type Options struct {
	// BreakCycles removes back edges first.
	BreakCycles bool

	// Reduce removes transitive edges. Without BreakCycles the store must
	// already be acyclic.
	Reduce bool
}

// Apply runs the selected transformations on s in place: cycle breaking
// first, then transitive reduction.
func Apply(s *dag.Store, opts Options) Result {
	var r Result
	if opts.BreakCycles {
		r.CyclesRemoved = BreakCycles(s)
	}
	if opts.Reduce {
		r.TransitiveEdgesRemoved = TransitiveReduction(s)
	}
	return r
}
