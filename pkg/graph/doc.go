// Package graph defines the node-link interchange format for directed graphs.
//
// A [Graph] is the plain value that crosses every boundary in dagmatch: the
// CLI and HTTP API decode it from JSON, the graph core reads it into its own
// adjacency index, and nothing downstream ever writes back into it.
//
// # Format
//
//	{
//	  "nodes": [{"id": "app"}, {"id": "lib", "data": {"kind": "service"}}],
//	  "edges": [{"from": "app", "to": "lib"}]
//	}
//
// Node order and edge order are preserved exactly as written. Order has no
// meaning for the graph itself, but the core uses it to break ties, so the
// same document always yields the same traversal, cycle and mapping.
//
// # Payloads
//
// The optional "data" field is opaque. The only operation ever applied to it
// is equality, via [DataEqual], which compares primitives by value and
// composite values by their canonical JSON encoding.
//
// # Reading and Writing
//
//	g, err := graph.ReadGraphFile("deps.json")  // File → Graph
//	err = graph.WriteGraph(g, os.Stdout)        // Graph → indented JSON
//	data, _ := graph.MarshalGraph(g)            // Graph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)     // []byte → Graph
//
// Decoding is purely syntactic. Duplicate ids, dangling edges and cycles are
// accepted here and reported later by the validator.
package graph
