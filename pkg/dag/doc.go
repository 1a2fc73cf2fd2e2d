// Package dag provides the adjacency store that every graph algorithm in
// dagmatch runs on.
//
// # Overview
//
// A [Store] owns three maps kept mutually consistent by every mutation: the
// nodes by identifier, the outgoing edge set of each node and the incoming
// edge set of each node. Callers never see the raw maps; [Store.Children]
// and [Store.Parents] hand out copies.
//
// The store is built from and exported to the plain [graph.Graph] value:
//
//	s := dag.FromGraph(g)       // New + Load
//	s.AddNode(graph.Node{ID: "cache"})
//	s.AddEdge("api", "cache")
//	out := s.ToGraph()
//
// # Permissive Mutation
//
// No operation fails. [Store.AddNode] upserts (last payload wins, first
// position is kept), and [Store.AddEdge] silently ignores edges whose
// endpoints are not registered. Loading a document with dangling edges
// therefore drops them; the validator reports them from the raw document.
// Parallel edges collapse because adjacency is a set.
//
// # Ordering
//
// Adjacency sets remember insertion order. Nodes iterate in the order they
// were first added, children in the order their edges were added. Every
// algorithm that breaks ties by adjacency order (cycle reporting, Kahn's
// queue, the subgraph search) is therefore deterministic for a given input
// document.
//
// # Related Packages
//
//   - [validate]: cycle, orphan and dangling-reference detection
//   - [traverse]: topological, breadth-first and depth-first post-order
//   - [match]: structure- and label-preserving subgraph search
//   - [transform]: cycle breaking and transitive reduction
//
// # Concurrency
//
// A Store is not safe for concurrent use. The algorithm packages each build
// a private store per call, so they are safe to call from many goroutines as
// long as the input graphs are not mutated concurrently.
//
// [validate]: github.com/matzehuels/dagmatch/pkg/dag/validate
// [traverse]: github.com/matzehuels/dagmatch/pkg/dag/traverse
// [match]: github.com/matzehuels/dagmatch/pkg/dag/match
// [transform]: github.com/matzehuels/dagmatch/pkg/dag/transform
package dag
