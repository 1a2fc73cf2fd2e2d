package dag

import (
	"github.com/matzehuels/dagmatch/pkg/graph"
)

// Store is a mutable directed graph indexed for adjacency queries in both
// directions.
//
// Invariant: a key exists in the node map iff it exists in both adjacency
// maps, and b is in outgoing[a] iff a is in incoming[b]. Every exported
// mutator preserves this before returning.
//
// The zero value is not usable; use [New] or [FromGraph].
type Store struct {
	nodes    map[string]graph.Node
	order    *idSet
	outgoing map[string]*idSet // nodeID -> children IDs
	incoming map[string]*idSet // nodeID -> parent IDs
	edges    int
}

// New creates an empty Store.
func New() *Store {
	s := &Store{}
	s.Clear()
	return s
}

// FromGraph creates a Store loaded with g. See [Store.Load].
func FromGraph(g graph.Graph) *Store {
	s := New()
	s.Load(g)
	return s
}

// Clear removes every node and edge.
func (s *Store) Clear() {
	s.nodes = make(map[string]graph.Node)
	s.order = newIDSet()
	s.outgoing = make(map[string]*idSet)
	s.incoming = make(map[string]*idSet)
	s.edges = 0
}

// Load replaces the store's contents with g: all nodes first, then all
// edges. Edges that reference unknown nodes are dropped (see [Store.AddEdge]).
// g itself is never modified.
func (s *Store) Load(g graph.Graph) {
	s.Clear()
	for _, n := range g.Nodes {
		s.AddNode(n)
	}
	for _, e := range g.Edges {
		s.AddEdge(e.From, e.To)
	}
}

// ToGraph exports the store as a Graph. Nodes appear in insertion order;
// edges are grouped by source node in that same order, each group in the
// order its edges were added.
func (s *Store) ToGraph() graph.Graph {
	out := graph.Graph{
		Nodes: make([]graph.Node, 0, len(s.nodes)),
		Edges: make([]graph.Edge, 0, s.edges),
	}
	for _, id := range s.order.ids {
		out.Nodes = append(out.Nodes, s.nodes[id])
		for _, child := range s.outgoing[id].ids {
			out.Edges = append(out.Edges, graph.Edge{From: id, To: child})
		}
	}
	return out
}

// AddNode inserts n, or replaces the payload of the node with the same ID.
// A replaced node keeps its position and its edges.
func (s *Store) AddNode(n graph.Node) {
	s.nodes[n.ID] = n
	if s.order.add(n.ID) {
		s.outgoing[n.ID] = newIDSet()
		s.incoming[n.ID] = newIDSet()
	}
}

// AddEdge inserts the edge from→to. It does nothing when either endpoint is
// not a registered node or when the edge already exists.
func (s *Store) AddEdge(from, to string) {
	out, okFrom := s.outgoing[from]
	in, okTo := s.incoming[to]
	if !okFrom || !okTo {
		return
	}
	if out.add(to) {
		in.add(from)
		s.edges++
	}
}

// RemoveEdge removes the edge from→to if it exists.
func (s *Store) RemoveEdge(from, to string) {
	out, ok := s.outgoing[from]
	if !ok || !out.remove(to) {
		return
	}
	s.incoming[to].remove(from)
	s.edges--
}

// RemoveNode deletes the node and every edge touching it.
// Unknown IDs are ignored.
func (s *Store) RemoveNode(id string) {
	if _, ok := s.nodes[id]; !ok {
		return
	}
	for _, child := range s.outgoing[id].ids {
		s.incoming[child].remove(id)
		s.edges--
	}
	// A self-loop was dropped from incoming[id] by the loop above.
	for _, parent := range s.incoming[id].ids {
		s.outgoing[parent].remove(id)
		s.edges--
	}
	delete(s.outgoing, id)
	delete(s.incoming, id)
	delete(s.nodes, id)
	s.order.remove(id)
}

// Node returns the node with the given ID and true, or the zero Node and
// false if it is not registered.
func (s *Store) Node(id string) (graph.Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// HasNode reports whether id is a registered node.
func (s *Store) HasNode(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// HasEdge reports whether the edge from→to exists.
func (s *Store) HasEdge(from, to string) bool {
	out, ok := s.outgoing[from]
	return ok && out.has(to)
}

// NodeIDs returns all node IDs in insertion order.
func (s *Store) NodeIDs() []string { return s.order.items() }

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int { return s.edges }

// Children returns the IDs of the node's successors in edge insertion
// order. Returns nil for unknown IDs. The slice is a copy.
func (s *Store) Children(id string) []string {
	if out, ok := s.outgoing[id]; ok {
		return out.items()
	}
	return nil
}

// Parents returns the IDs of the node's predecessors in edge insertion
// order. Returns nil for unknown IDs. The slice is a copy.
func (s *Store) Parents(id string) []string {
	if in, ok := s.incoming[id]; ok {
		return in.items()
	}
	return nil
}

// OutDegree returns the number of outgoing edges, 0 for unknown IDs.
func (s *Store) OutDegree(id string) int {
	if out, ok := s.outgoing[id]; ok {
		return out.len()
	}
	return 0
}

// InDegree returns the number of incoming edges, 0 for unknown IDs.
func (s *Store) InDegree(id string) int {
	if in, ok := s.incoming[id]; ok {
		return in.len()
	}
	return 0
}

// Roots returns the IDs of nodes with no incoming edges, in insertion order.
func (s *Store) Roots() []string {
	var roots []string
	for _, id := range s.order.ids {
		if s.incoming[id].len() == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Leaves returns the IDs of nodes with no outgoing edges, in insertion order.
func (s *Store) Leaves() []string {
	var leaves []string
	for _, id := range s.order.ids {
		if s.outgoing[id].len() == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// PosMap creates a position lookup map from a slice of node IDs.
// The returned map maps each ID to its index in the slice.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
