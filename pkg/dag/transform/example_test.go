package transform_test

import (
	"fmt"

	"github.com/matzehuels/dagmatch/pkg/dag"
	"github.com/matzehuels/dagmatch/pkg/dag/transform"
	"github.com/matzehuels/dagmatch/pkg/graph"
)

func ExampleBreakCycles() {
	s := dag.FromGraph(graph.Graph{
		Nodes: []graph.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Edges: []graph.Edge{
			{From: "A", To: "B"},
			{From: "B", To: "C"},
			{From: "C", To: "A"},
		},
	})

	fmt.Println("Edges before:", s.EdgeCount())
	removed := transform.BreakCycles(s)
	fmt.Println("Edges after:", s.EdgeCount())
	fmt.Println("Removed:", removed)
	// Output:
	// Edges before: 3
	// Edges after: 2
	// Removed: 1
}

func ExampleTransitiveReduction() {
	s := dag.FromGraph(graph.Graph{
		Nodes: []graph.Node{{ID: "app"}, {ID: "auth"}, {ID: "db"}},
		Edges: []graph.Edge{
			{From: "app", To: "auth"},
			{From: "auth", To: "db"},
			{From: "app", To: "db"}, // implied by app -> auth -> db
		},
	})

	removed := transform.TransitiveReduction(s)
	fmt.Println("Removed:", removed)
	fmt.Println("Edges:", s.ToGraph().Edges)
	// Output:
	// Removed: 1
	// Edges: [app->auth auth->db]
}
