// Package traverse computes canonical node orders over a [graph.Graph].
//
// Three orders are available:
//
//   - [TopologicalSort]: Kahn's algorithm with a FIFO queue seeded by the
//     zero in-degree nodes in listed order.
//   - [BFS]: breadth-first from a start set, the roots by default.
//   - [DFSPostOrder]: depth-first from a start set, each node emitted after
//     all of its children, the roots by default.
//
// Each call builds a private [dag.Store] from the graph, so dangling edges
// are ignored and parallel edges count once. Ties are broken by listed node
// order and then by edge order, which makes every result deterministic for
// a given document.
//
// # Cyclic Input
//
// TopologicalSort does not report cycles. Nodes on a cycle, and everything
// downstream of one, never reach in-degree zero and are left out. Callers
// compare the result length with the node count, or validate first.
//
// [dag.Store]: github.com/matzehuels/dagmatch/pkg/dag.Store
// [graph.Graph]: github.com/matzehuels/dagmatch/pkg/graph.Graph
package traverse
