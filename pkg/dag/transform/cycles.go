package transform

import "github.com/matzehuels/dagmatch/pkg/dag"

type visitState uint8

const (
	unvisited visitState = iota
	onStack
	finished
)

type edgeRef struct{ from, to string }

// BreakCycles removes back edges from s until it is acyclic and returns the
// number of edges removed.
//
// A depth-first search is started from every root, then from any node
// still unvisited (nodes reachable only through a cycle). An edge into a
// node that is still on the search stack closes a cycle and is removed.
// Starting from roots means that for a mostly acyclic input the edge that
// points back up the hierarchy is the one that goes. A self-loop is always
// removed.
//
// The search keeps its own stack, so deep chains do not recurse. O(V + E).
func BreakCycles(s *dag.Store) int {
	state := make(map[string]visitState, s.NodeCount())
	var back []edgeRef

	type frame struct {
		id       string
		children []string
		next     int
	}
	var stack []frame

	visit := func(root string) {
		state[root] = onStack
		stack = append(stack, frame{id: root, children: s.Children(root)})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.children) {
				state[top.id] = finished
				stack = stack[:len(stack)-1]
				continue
			}
			child := top.children[top.next]
			top.next++
			switch state[child] {
			case unvisited:
				state[child] = onStack
				stack = append(stack, frame{id: child, children: s.Children(child)})
			case onStack:
				back = append(back, edgeRef{top.id, child})
			}
		}
	}

	for _, ids := range [][]string{s.Roots(), s.NodeIDs()} {
		for _, id := range ids {
			if state[id] == unvisited {
				visit(id)
			}
		}
	}

	for _, e := range back {
		s.RemoveEdge(e.from, e.to)
	}
	return len(back)
}
