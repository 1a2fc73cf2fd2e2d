// Package pkg holds the dagmatch libraries.
//
// # Overview
//
// dagmatch analyzes directed graphs given as node-link documents. The
// packages build on each other:
//
//  1. [graph] - Interchange types, JSON IO and payload equality
//  2. [dag] - Indexed adjacency store and the algorithms on it:
//     [dag/validate], [dag/traverse], [dag/match], [dag/transform]
//  3. [pipeline] - Runner that adds limits, caching, hooks and logging
//  4. [cache] - File, Redis and null result caches
//  5. [errors], [observability], [buildinfo] - Supporting pieces
//
// # Data Flow
//
//	node-link JSON
//	      ↓
//	[graph.ReadGraph]
//	      ↓
//	[pipeline.Runner] ── cache lookup ──→ [cache.Cache]
//	      ↓
//	validate | order | match | transform
//	      ↓
//	JSON result
//
// # Quick Start
//
//	g, _ := graph.ReadGraphFile("deps.json")
//	res := validate.Validate(g)
//	if !res.IsAcyclic {
//	    fmt.Println("cycles:", res.Cycles)
//	}
//
//	pattern, _ := graph.ReadGraphFile("diamond.json")
//	if m, ok := match.FindMapping(pattern, g); ok {
//	    for _, p := range m.Pairs() {
//	        fmt.Println(p.Pattern, "->", p.Target)
//	    }
//	}
//
// The graph core never returns errors: anomalies such as cycles or dangling
// edges are reported as data. Coded errors from [errors] appear only where
// documents are read, limits are enforced or caches fail.
package pkg
