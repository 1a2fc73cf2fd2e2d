// Package transform rewrites a [dag.Store] in place.
//
// # Cycle Breaking
//
// [BreakCycles] removes every back edge found by a depth-first search that
// starts from the roots and then from any node not yet reached. The result
// is acyclic, so a document rejected by the validator for its cycles can be
// repaired and then ordered or matched. The removed set is deterministic for
// a given store but is not a minimum feedback arc set.
//
// # Transitive Reduction
//
// [TransitiveReduction] removes an edge u→v whenever v is also reachable
// from u through another child of u. If A→B, B→C and A→C exist, A→C is
// dropped. Reachability is computed once before any removal, so the input
// must be acyclic; run [BreakCycles] first when that is not known.
//
// # Usage
//
// [Apply] runs the requested steps in the right order and reports what
// changed:
//
//	s := dag.FromGraph(g)
//	res := transform.Apply(s, transform.Options{BreakCycles: true, Reduce: true})
//	out := s.ToGraph()
//
// [dag.Store]: github.com/matzehuels/dagmatch/pkg/dag.Store
package transform
