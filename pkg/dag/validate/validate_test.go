package validate

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/dagmatch/pkg/dag/traverse"
	"github.com/matzehuels/dagmatch/pkg/graph"
)

func nodes(ids ...string) []graph.Node {
	out := make([]graph.Node, len(ids))
	for i, id := range ids {
		out[i] = graph.Node{ID: id}
	}
	return out
}

func edges(pairs ...string) []graph.Edge {
	out := make([]graph.Edge, 0, len(pairs))
	for _, p := range pairs {
		from, to, _ := strings.Cut(p, "->")
		out = append(out, graph.Edge{From: from, To: to})
	}
	return out
}

// isClosedWalk checks that c starts and ends on the same node and follows g's edges.
func isClosedWalk(g graph.Graph, c []string) bool {
	if len(c) < 2 || c[0] != c[len(c)-1] {
		return false
	}
	has := make(map[graph.Edge]bool)
	for _, e := range g.Edges {
		has[e] = true
	}
	for i := 0; i+1 < len(c); i++ {
		if !has[graph.Edge{From: c[i], To: c[i+1]}] {
			return false
		}
	}
	return true
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		g            graph.Graph
		wantValid    bool
		wantAcyclic  bool
		wantCycles   bool
		wantOrphans  []string
		wantDangling int
	}{
		{
			name:        "Empty",
			g:           graph.Graph{},
			wantValid:   true,
			wantAcyclic: true,
		},
		{
			name:        "Diamond",
			g:           graph.Graph{Nodes: nodes("a", "b", "c", "d"), Edges: edges("a->b", "a->c", "b->d", "c->d")},
			wantValid:   true,
			wantAcyclic: true,
		},
		{
			name:        "Triangle",
			g:           graph.Graph{Nodes: nodes("x", "y", "z"), Edges: edges("x->y", "y->z", "z->x")},
			wantValid:   false,
			wantAcyclic: false,
			wantCycles:  true,
		},
		{
			name:        "SelfLoop",
			g:           graph.Graph{Nodes: nodes("a"), Edges: edges("a->a")},
			wantAcyclic: false,
			wantCycles:  true,
		},
		{
			name:         "DanglingButAcyclic",
			g:            graph.Graph{Nodes: nodes("a"), Edges: edges("a->z")},
			wantValid:    false,
			wantAcyclic:  true,
			wantDangling: 1,
		},
		{
			name:        "OrphansStillValid",
			g:           graph.Graph{Nodes: nodes("a", "b", "lonely"), Edges: edges("a->b")},
			wantValid:   true,
			wantAcyclic: true,
			wantOrphans: []string{"lonely"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Validate(tt.g)

			if r.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v", r.IsValid, tt.wantValid)
			}
			if r.IsAcyclic != tt.wantAcyclic {
				t.Errorf("IsAcyclic = %v, want %v", r.IsAcyclic, tt.wantAcyclic)
			}
			if (len(r.Cycles) > 0) != tt.wantCycles {
				t.Errorf("Cycles = %v, wantCycles %v", r.Cycles, tt.wantCycles)
			}
			for _, c := range r.Cycles {
				if !isClosedWalk(tt.g, c) {
					t.Errorf("cycle %v is not a closed walk", c)
				}
			}
			if !slices.Equal(r.OrphanNodes, tt.wantOrphans) {
				t.Errorf("OrphanNodes = %v, want %v", r.OrphanNodes, tt.wantOrphans)
			}
			if len(r.DanglingReferences) != tt.wantDangling {
				t.Errorf("DanglingReferences = %v, want %d", r.DanglingReferences, tt.wantDangling)
			}
		})
	}
}

func TestValidateAbsentListsAreNil(t *testing.T) {
	r := Validate(graph.Graph{Nodes: nodes("a", "b"), Edges: edges("a->b")})
	if r.Cycles != nil || r.OrphanNodes != nil || r.DanglingReferences != nil {
		t.Errorf("expected nil lists, got %+v", r)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"is_valid":true,"is_acyclic":true}` {
		t.Errorf("json = %s", got)
	}
}

func TestFindDanglingReferences(t *testing.T) {
	g := graph.Graph{
		Nodes: nodes("a", "b"),
		Edges: edges("a->z", "a->b", "y->b", "p->q"),
	}
	got := FindDanglingReferences(g)
	want := []DanglingReference{
		{Edge: graph.Edge{From: "a", To: "z"}, Missing: EndpointTo},
		{Edge: graph.Edge{From: "y", To: "b"}, Missing: EndpointFrom},
		{Edge: graph.Edge{From: "p", To: "q"}, Missing: EndpointFrom},
		{Edge: graph.Edge{From: "p", To: "q"}, Missing: EndpointTo},
	}
	if !slices.Equal(got, want) {
		t.Errorf("FindDanglingReferences() = %v, want %v", got, want)
	}
}

func TestDanglingMissingTo(t *testing.T) {
	g := graph.Graph{Nodes: nodes("a"), Edges: edges("a->z")}
	r := Validate(g)

	if len(r.DanglingReferences) != 1 {
		t.Fatalf("DanglingReferences = %v, want exactly one", r.DanglingReferences)
	}
	if r.DanglingReferences[0].Missing != EndpointTo {
		t.Errorf("Missing = %q, want %q", r.DanglingReferences[0].Missing, EndpointTo)
	}
}

func TestFindOrphans(t *testing.T) {
	tests := []struct {
		name string
		g    graph.Graph
		want []string
	}{
		{"no edges", graph.Graph{Nodes: nodes("a", "b")}, []string{"a", "b"}},
		{"all connected", graph.Graph{Nodes: nodes("a", "b"), Edges: edges("a->b")}, nil},
		{"dangling edge touches node", graph.Graph{Nodes: nodes("a"), Edges: edges("a->ghost")}, nil},
		{"self loop is not orphan", graph.Graph{Nodes: nodes("a", "b"), Edges: edges("a->a")}, []string{"b"}},
		{"duplicate ids reported once", graph.Graph{Nodes: nodes("a", "a")}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindOrphans(tt.g); !slices.Equal(got, tt.want) {
				t.Errorf("FindOrphans() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindCyclesTriangle(t *testing.T) {
	g := graph.Graph{Nodes: nodes("x", "y", "z"), Edges: edges("x->y", "y->z", "z->x")}
	cycles := FindCycles(g)

	if len(cycles) != 1 {
		t.Fatalf("FindCycles() = %v, want one cycle", cycles)
	}
	if want := []string{"x", "y", "z", "x"}; !slices.Equal(cycles[0], want) {
		t.Errorf("cycle = %v, want %v", cycles[0], want)
	}
}

func TestFindCyclesSubPath(t *testing.T) {
	// a -> b -> c -> d -> b: the cycle starts at b, not at the DFS root.
	g := graph.Graph{Nodes: nodes("a", "b", "c", "d"), Edges: edges("a->b", "b->c", "c->d", "d->b")}
	cycles := FindCycles(g)

	if len(cycles) != 1 {
		t.Fatalf("FindCycles() = %v, want one cycle", cycles)
	}
	if want := []string{"b", "c", "d", "b"}; !slices.Equal(cycles[0], want) {
		t.Errorf("cycle = %v, want %v", cycles[0], want)
	}
}

func TestFindCyclesSeparateComponents(t *testing.T) {
	g := graph.Graph{
		Nodes: nodes("a", "b", "c", "d"),
		Edges: edges("a->b", "b->a", "c->d", "d->c"),
	}
	cycles := FindCycles(g)

	if len(cycles) != 2 {
		t.Fatalf("FindCycles() = %v, want two cycles", cycles)
	}
	if !slices.Equal(cycles[0], []string{"a", "b", "a"}) || !slices.Equal(cycles[1], []string{"c", "d", "c"}) {
		t.Errorf("cycles = %v", cycles)
	}
}

func TestFindCyclesStopsPerTree(t *testing.T) {
	// Two cycles reachable from the same root: only the first is reported.
	g := graph.Graph{
		Nodes: nodes("r", "a", "b"),
		Edges: edges("r->a", "a->r", "r->b", "b->r"),
	}
	if cycles := FindCycles(g); len(cycles) != 1 {
		t.Errorf("FindCycles() = %v, want exactly one", cycles)
	}
}

func TestFindCyclesNoSpuriousCycleAcrossTrees(t *testing.T) {
	// x <-> y is found from x; w is a later root pointing into the finished
	// component and must not produce a second, bogus cycle.
	g := graph.Graph{
		Nodes: nodes("x", "y", "w"),
		Edges: edges("x->y", "y->x", "w->x"),
	}
	cycles := FindCycles(g)

	if len(cycles) != 1 {
		t.Fatalf("FindCycles() = %v, want one cycle", cycles)
	}
	for _, c := range cycles {
		if !isClosedWalk(g, c) {
			t.Errorf("cycle %v is not a closed walk", c)
		}
	}
}

func TestFindCyclesIgnoresDanglingEdges(t *testing.T) {
	g := graph.Graph{Nodes: nodes("a", "b"), Edges: edges("a->b", "b->ghost", "ghost->a")}
	if cycles := FindCycles(g); cycles != nil {
		t.Errorf("FindCycles() = %v, want nil", cycles)
	}
}

func TestAcyclicAgreesWithTopologicalSort(t *testing.T) {
	graphs := []graph.Graph{
		{Nodes: nodes("a", "b", "c", "d"), Edges: edges("a->b", "a->c", "b->d", "c->d")},
		{Nodes: nodes("x", "y", "z"), Edges: edges("x->y", "y->z", "z->x")},
		{Nodes: nodes("a", "b", "c"), Edges: edges("a->b", "b->b")},
		{Nodes: nodes("a", "b", "c", "d"), Edges: edges("a->b", "c->d", "d->c")},
		{Nodes: nodes("a", "b", "c")},
	}

	for i, g := range graphs {
		acyclic := Validate(g).IsAcyclic
		complete := len(traverse.TopologicalSort(g)) == len(g.Nodes)
		if acyclic != complete {
			t.Errorf("graph %d: IsAcyclic=%v but topological order complete=%v", i, acyclic, complete)
		}
		if acyclic != (len(FindCycles(g)) == 0) {
			t.Errorf("graph %d: IsAcyclic disagrees with FindCycles", i)
		}
	}
}
