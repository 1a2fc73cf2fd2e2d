package traverse

import (
	"github.com/matzehuels/dagmatch/pkg/dag"
	"github.com/matzehuels/dagmatch/pkg/graph"
)

// TopologicalSort returns the node IDs so that every edge u→v has u before v.
// Nodes that sit on or below a cycle are omitted.
func TopologicalSort(g graph.Graph) []string {
	s := dag.FromGraph(g)
	ids := s.NodeIDs()

	inDegree := make(map[string]int, len(ids))
	queue := make([]string, 0, len(ids))
	for _, id := range ids {
		inDegree[id] = s.InDegree(id)
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(ids))
	for head := 0; head < len(queue); head++ {
		id := queue[head]
		order = append(order, id)
		for _, child := range s.Children(id) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return order
}

// BFS returns the nodes reachable from start in breadth-first order. With no
// start IDs it starts from the roots. Unknown and repeated start IDs are
// skipped.
func BFS(g graph.Graph, start ...string) []string {
	s := dag.FromGraph(g)
	if len(start) == 0 {
		start = s.Roots()
	}

	visited := make(map[string]bool, s.NodeCount())
	var order []string
	var queue []string
	for _, id := range start {
		if s.HasNode(id) && !visited[id] {
			visited[id] = true
			queue = append(queue, id)
		}
	}

	for head := 0; head < len(queue); head++ {
		id := queue[head]
		order = append(order, id)
		for _, child := range s.Children(id) {
			if !visited[child] {
				visited[child] = true
				queue = append(queue, child)
			}
		}
	}
	return order
}

// DFSPostOrder returns the nodes reachable from start in depth-first
// post-order: a node appears only after all of its children. With no start
// IDs it starts from the roots. A node reachable from several start IDs is
// emitted once, when its first visit finishes.
func DFSPostOrder(g graph.Graph, start ...string) []string {
	s := dag.FromGraph(g)
	if len(start) == 0 {
		start = s.Roots()
	}

	visited := make(map[string]bool, s.NodeCount())
	var order []string

	var visit func(id string)
	visit = func(id string) {
		visited[id] = true
		for _, child := range s.Children(id) {
			if !visited[child] {
				visit(child)
			}
		}
		order = append(order, id)
	}

	for _, id := range start {
		if s.HasNode(id) && !visited[id] {
			visit(id)
		}
	}
	return order
}
