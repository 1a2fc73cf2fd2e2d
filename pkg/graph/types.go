package graph

import "slices"

// Graph is the canonical interchange value: an ordered list of nodes and an
// ordered list of directed edges.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a vertex with a unique identifier and an optional opaque payload.
type Node struct {
	ID   string `json:"id"`
	Data any    `json:"data,omitempty"`
}

// Edge is a directed connection between two node identifiers.
// Either endpoint may name a node that does not exist (a dangling reference).
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// String returns the edge as "from->to".
func (e Edge) String() string { return e.From + "->" + e.To }

// Clone returns a copy of g with fresh node and edge slices.
// Payloads are shared; they are never mutated by this module.
func (g Graph) Clone() Graph {
	return Graph{
		Nodes: slices.Clone(g.Nodes),
		Edges: slices.Clone(g.Edges),
	}
}

// NodeIDs returns the node identifiers in listed order.
func (g Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// IsEmpty reports whether the graph has no nodes and no edges.
func (g Graph) IsEmpty() bool { return len(g.Nodes) == 0 && len(g.Edges) == 0 }
