// Package validate reports structural problems in a graph without rejecting
// it.
//
// [Validate] checks three things and returns them as a [Result]:
//
//   - Dangling references: edges whose "from" or "to" names no node. An edge
//     with both endpoints missing is reported twice, once per endpoint.
//   - Cycles: depth-first search from each node in listed order. Each DFS
//     tree stops at the first back edge it meets and records the closed walk
//     (start node repeated at the end). At least one cycle is reported for a
//     cyclic graph; not every cycle is enumerated.
//   - Orphans: nodes that appear in no edge at all.
//
// A graph is acyclic when no cycle is found and valid when it is acyclic
// and has no dangling references. Orphans never make a graph invalid.
//
// Nothing here returns an error: every anomaly is data.
package validate
