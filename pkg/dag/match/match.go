package match

import (
	"cmp"
	"slices"

	"github.com/matzehuels/dagmatch/pkg/dag"
	"github.com/matzehuels/dagmatch/pkg/graph"
)

// Mapping assigns each pattern node ID to a target node ID.
type Mapping map[string]string

// Pair is one pattern→target assignment.
type Pair struct {
	Pattern string `json:"pattern"`
	Target  string `json:"target"`
}

// Pairs returns the assignments sorted by pattern ID.
func (m Mapping) Pairs() []Pair {
	pairs := make([]Pair, 0, len(m))
	for p, t := range m {
		pairs = append(pairs, Pair{Pattern: p, Target: t})
	}
	slices.SortFunc(pairs, func(a, b Pair) int { return cmp.Compare(a.Pattern, b.Pattern) })
	return pairs
}

// FindMapping returns the first mapping of pattern into target found by the
// search, or nil and false if none exists. Neither graph is modified and the
// returned map is never shared.
func FindMapping(pattern, target graph.Graph, opts ...Option) (Mapping, bool) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.stats != nil {
		*o.stats = Stats{}
	}

	p := dag.FromGraph(pattern)
	t := dag.FromGraph(target)
	if p.NodeCount() == 0 {
		return Mapping{}, true
	}
	if p.NodeCount() > t.NodeCount() {
		return nil, false
	}

	m := newMatcher(p, t, o)
	if !m.search() {
		return nil, false
	}
	return m.asg.mapping(), true
}

type matcher struct {
	pattern, target *dag.Store
	order           []string
	candidates      []string
	equal           EqualFunc
	stats           *Stats
	adj             map[string]patternAdj
	asg             *assignment
}

// patternAdj is a pattern node's adjacency, copied out of the store once so
// feasibility checks do not allocate.
type patternAdj struct {
	children, parents []string
	selfLoop          bool
}

func patternAdjacency(s *dag.Store) map[string]patternAdj {
	adj := make(map[string]patternAdj, s.NodeCount())
	for _, id := range s.NodeIDs() {
		adj[id] = patternAdj{
			children: s.Children(id),
			parents:  s.Parents(id),
			selfLoop: s.HasEdge(id, id),
		}
	}
	return adj
}

func newMatcher(p, t *dag.Store, o options) *matcher {
	return &matcher{
		pattern:    p,
		target:     t,
		order:      p.NodeIDs(),
		candidates: t.NodeIDs(),
		equal:      o.equal,
		stats:      o.stats,
		adj:        patternAdjacency(p),
		asg:        newAssignment(p.NodeCount()),
	}
}

func (m *matcher) search() bool {
	depth := m.asg.depth()
	if depth == len(m.order) {
		return true
	}
	p := m.order[depth]

	for _, t := range m.candidates {
		if m.asg.inUse(t) || !m.feasible(p, t) {
			continue
		}
		m.asg.push(p, t)
		if m.stats != nil {
			m.stats.MaxDepth = max(m.stats.MaxDepth, m.asg.depth())
		}
		if m.search() {
			return true
		}
		m.asg.pop()
		if m.stats != nil {
			m.stats.Backtracks++
		}
	}
	return false
}

// feasible reports whether pattern node p may be committed to target node t
// given the pairs already on the stack.
func (m *matcher) feasible(p, t string) bool {
	if m.stats != nil {
		m.stats.Checks++
	}

	pn, _ := m.pattern.Node(p)
	tn, _ := m.target.Node(t)
	if !m.equal(pn.Data, tn.Data) {
		return false
	}
	if !m.degreeOK(p, t) {
		return false
	}
	adj := m.adj[p]
	if adj.selfLoop && !m.target.HasEdge(t, t) {
		return false
	}

	for _, child := range adj.children {
		if tc, ok := m.asg.lookup(child); ok && !m.target.HasEdge(t, tc) {
			return false
		}
	}
	for _, parent := range adj.parents {
		if tp, ok := m.asg.lookup(parent); ok && !m.target.HasEdge(tp, t) {
			return false
		}
	}
	return true
}

// degreeOK applies the root/leaf/interior degree rule. A node with no edges
// at all counts as a root.
func (m *matcher) degreeOK(p, t string) bool {
	pIn, pOut := m.pattern.InDegree(p), m.pattern.OutDegree(p)
	tIn, tOut := m.target.InDegree(t), m.target.OutDegree(t)

	switch {
	case pIn == 0:
		return tOut >= pOut
	case pOut == 0:
		return tIn >= pIn
	default:
		return tIn == pIn && tOut == pOut
	}
}

// Verify reports whether m maps every pattern node injectively onto target
// nodes with equal payloads and preserves every pattern edge. It does not
// apply the degree rule. A nil equal uses [graph.DataEqual].
func Verify(pattern, target graph.Graph, m Mapping, equal EqualFunc) bool {
	if equal == nil {
		equal = graph.DataEqual
	}
	p := dag.FromGraph(pattern)
	t := dag.FromGraph(target)
	if len(m) != p.NodeCount() {
		return false
	}

	used := make(map[string]bool, len(m))
	for _, pid := range p.NodeIDs() {
		tid, ok := m[pid]
		if !ok || used[tid] {
			return false
		}
		tn, ok := t.Node(tid)
		if !ok {
			return false
		}
		pn, _ := p.Node(pid)
		if !equal(pn.Data, tn.Data) {
			return false
		}
		used[tid] = true
	}

	for _, pid := range p.NodeIDs() {
		for _, child := range p.Children(pid) {
			if !t.HasEdge(m[pid], m[child]) {
				return false
			}
		}
	}
	return true
}
