package validate_test

import (
	"fmt"

	"github.com/matzehuels/dagmatch/pkg/dag/validate"
	"github.com/matzehuels/dagmatch/pkg/graph"
)

func ExampleValidate() {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "x"}, {ID: "y"}, {ID: "z"}, {ID: "idle"}},
		Edges: []graph.Edge{
			{From: "x", To: "y"},
			{From: "y", To: "z"},
			{From: "z", To: "x"},
			{From: "z", To: "missing"},
		},
	}

	r := validate.Validate(g)
	fmt.Println("valid:", r.IsValid)
	fmt.Println("acyclic:", r.IsAcyclic)
	fmt.Println("cycles:", r.Cycles)
	fmt.Println("orphans:", r.OrphanNodes)
	for _, d := range r.DanglingReferences {
		fmt.Printf("dangling: %s (missing %s)\n", d.Edge, d.Missing)
	}
	// Output:
	// valid: false
	// acyclic: false
	// cycles: [[x y z x]]
	// orphans: [idle]
	// dangling: z->missing (missing to)
}
