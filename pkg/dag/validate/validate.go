package validate

import (
	"github.com/matzehuels/dagmatch/pkg/dag"
	"github.com/matzehuels/dagmatch/pkg/graph"
)

// Endpoint names the missing side of a dangling edge.
type Endpoint string

const (
	EndpointFrom Endpoint = "from"
	EndpointTo   Endpoint = "to"
)

// DanglingReference is an edge endpoint that names no node.
type DanglingReference struct {
	Edge    graph.Edge `json:"edge"`
	Missing Endpoint   `json:"missing"`
}

// Result is the outcome of [Validate]. Nil lists mean none were found.
type Result struct {
	IsValid            bool                `json:"is_valid"`
	IsAcyclic          bool                `json:"is_acyclic"`
	Cycles             [][]string          `json:"cycles,omitempty"`
	OrphanNodes        []string            `json:"orphan_nodes,omitempty"`
	DanglingReferences []DanglingReference `json:"dangling_references,omitempty"`
}

// Validate runs dangling-reference, cycle and orphan detection on g.
func Validate(g graph.Graph) Result {
	dangling := FindDanglingReferences(g)
	cycles := FindCycles(g)
	orphans := FindOrphans(g)

	r := Result{
		IsAcyclic: len(cycles) == 0,
	}
	r.IsValid = r.IsAcyclic && len(dangling) == 0
	if len(cycles) > 0 {
		r.Cycles = cycles
	}
	if len(orphans) > 0 {
		r.OrphanNodes = orphans
	}
	if len(dangling) > 0 {
		r.DanglingReferences = dangling
	}
	return r
}

// FindDanglingReferences returns one entry per missing edge endpoint, in
// edge order, "from" before "to".
func FindDanglingReferences(g graph.Graph) []DanglingReference {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}

	var refs []DanglingReference
	for _, e := range g.Edges {
		if _, ok := ids[e.From]; !ok {
			refs = append(refs, DanglingReference{Edge: e, Missing: EndpointFrom})
		}
		if _, ok := ids[e.To]; !ok {
			refs = append(refs, DanglingReference{Edge: e, Missing: EndpointTo})
		}
	}
	return refs
}

// FindOrphans returns the IDs of nodes that are neither the source nor the
// target of any edge, dangling edges included, in listed order.
func FindOrphans(g graph.Graph) []string {
	touched := make(map[string]struct{}, len(g.Edges)*2)
	for _, e := range g.Edges {
		touched[e.From] = struct{}{}
		touched[e.To] = struct{}{}
	}

	var orphans []string
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		if _, ok := touched[n.ID]; !ok {
			orphans = append(orphans, n.ID)
		}
	}
	return orphans
}

// FindCycles returns at least one cycle when g is cyclic, and nil otherwise.
//
// Each cycle is a closed walk: the first node is repeated at the end, so a
// self-loop on a is reported as [a a]. Dangling edges are ignored.
func FindCycles(g graph.Graph) [][]string {
	s := dag.FromGraph(g)

	visited := make(map[string]bool, s.NodeCount())
	onStack := make(map[string]bool)
	pathIndex := make(map[string]int)
	var path []string
	var cycles [][]string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		onStack[id] = true
		pathIndex[id] = len(path)
		path = append(path, id)

		for _, child := range s.Children(id) {
			if !visited[child] {
				if dfs(child) {
					return true
				}
			} else if onStack[child] {
				cycle := append([]string(nil), path[pathIndex[child]:]...)
				cycles = append(cycles, append(cycle, child))
				return true
			}
		}

		path = path[:len(path)-1]
		delete(onStack, id)
		delete(pathIndex, id)
		return false
	}

	for _, n := range g.Nodes {
		if visited[n.ID] || !s.HasNode(n.ID) {
			continue
		}
		if dfs(n.ID) {
			// The tree stopped at its first cycle; start the next one clean.
			clear(onStack)
			clear(pathIndex)
			path = path[:0]
		}
	}
	return cycles
}
