package transform

import "github.com/matzehuels/dagmatch/pkg/dag"

// TransitiveReduction removes every edge u→v for which another child w of u
// reaches v, and returns the number of edges removed.
//
// Reachability from every node is computed once, before any edge is
// removed, and stored as one bitset per node: O(V·(V+E)) time and V²/8
// bytes. On cyclic input an edge may be removed because of a path that
// runs through itself; call [BreakCycles] first.
func TransitiveReduction(s *dag.Store) int {
	ids := s.NodeIDs()
	if len(ids) == 0 {
		return 0
	}

	pos := dag.PosMap(ids)
	succ := make([][]int, len(ids))
	for i, id := range ids {
		for _, child := range s.Children(id) {
			succ[i] = append(succ[i], pos[child])
		}
	}
	reach := reachability(succ)

	removed := 0
	for u, children := range succ {
	edges:
		for _, v := range children {
			for _, w := range children {
				if w != v && reach[w].has(v) {
					s.RemoveEdge(ids[u], ids[v])
					removed++
					continue edges
				}
			}
		}
	}
	return removed
}

type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) set(i int)      { b[i/64] |= 1 << (i % 64) }
func (b bitset) has(i int) bool { return b[i/64]&(1<<(i%64)) != 0 }

// reachability returns, for each node, the set of nodes reachable from it
// including itself.
func reachability(succ [][]int) []bitset {
	out := make([]bitset, len(succ))
	queue := make([]int, 0, len(succ))
	for src := range succ {
		seen := newBitset(len(succ))
		seen.set(src)
		queue = append(queue[:0], src)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range succ[cur] {
				if !seen.has(next) {
					seen.set(next)
					queue = append(queue, next)
				}
			}
		}
		out[src] = seen
	}
	return out
}
