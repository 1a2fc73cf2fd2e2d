package dag

import "slices"

// idSet is a set of node identifiers that iterates in insertion order.
type idSet struct {
	ids   []string
	index map[string]int
}

func newIDSet() *idSet {
	return &idSet{index: make(map[string]int)}
}

func (s *idSet) add(id string) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	return true
}

func (s *idSet) remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.ids = slices.Delete(s.ids, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.ids); j++ {
		s.index[s.ids[j]] = j
	}
	return true
}

func (s *idSet) has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *idSet) len() int { return len(s.ids) }

func (s *idSet) items() []string { return slices.Clone(s.ids) }
