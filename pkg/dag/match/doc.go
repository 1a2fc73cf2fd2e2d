// Package match finds a pattern graph inside a target graph.
//
// [FindMapping] searches for an injective mapping from every pattern node to
// a distinct target node such that mapped payloads are equal and every
// pattern edge p1→p2 has a target edge map(p1)→map(p2). The target may have
// extra edges and extra nodes: this is subgraph, not induced-subgraph,
// matching. Neither graph has to be acyclic.
//
// # Search
//
// The search is depth-first backtracking in the style of VF2. Pattern nodes
// are committed one per level in listed order. Candidates are tried in the
// target's listed order, skipping target nodes already in use, and each
// candidate pair must pass three feasibility checks before it is committed:
//
//   - Payload: the two payloads are equal under [graph.DataEqual] or the
//     function passed to [WithEqual].
//   - Degree: a pattern root needs at least as many target successors as it
//     has pattern successors, a pattern leaf at least as many target
//     predecessors. An interior pattern node needs exactly the same in- and
//     out-degree on the target side.
//   - Neighbors: every pattern successor and predecessor that is already
//     mapped must be joined to the candidate by the matching target edge.
//     A pattern self-loop needs a target self-loop.
//
// The first complete assignment wins. A pattern with more nodes than the
// target fails before any search. The empty pattern matches anything with
// the empty mapping.
//
// # Degree Rule
//
// The exact-degree check on interior nodes rejects some mappings that plain
// subgraph containment would accept: an interior pattern node a→b→c will
// not map onto a target node with a second outgoing edge. This trades
// completeness for pruning and is part of the matcher's contract.
//
// # Cost
//
// Worst case is exponential in the pattern size. The matcher has no
// cancellation; callers bound it by limiting the input sizes, as
// pipeline.Runner does. [WithStats] exposes the work done per call.
//
// [graph.DataEqual]: github.com/matzehuels/dagmatch/pkg/graph.DataEqual
package match
