package match

// assignment is the partial pattern→target mapping built by the search.
// Pairs are pushed when a pattern node is committed and popped on backtrack,
// so the state at any depth is exactly the pairs on the stack.
type assignment struct {
	stack    [][2]string
	toTarget map[string]string
	used     map[string]bool
}

func newAssignment(size int) *assignment {
	return &assignment{
		stack:    make([][2]string, 0, size),
		toTarget: make(map[string]string, size),
		used:     make(map[string]bool, size),
	}
}

func (a *assignment) push(pattern, target string) {
	a.stack = append(a.stack, [2]string{pattern, target})
	a.toTarget[pattern] = target
	a.used[target] = true
}

// pop undoes the most recent push. It panics on an empty stack.
func (a *assignment) pop() {
	top := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	delete(a.toTarget, top[0])
	delete(a.used, top[1])
}

func (a *assignment) lookup(pattern string) (string, bool) {
	t, ok := a.toTarget[pattern]
	return t, ok
}

func (a *assignment) inUse(target string) bool { return a.used[target] }

func (a *assignment) depth() int { return len(a.stack) }

// mapping returns a fresh copy of the current pairs.
func (a *assignment) mapping() Mapping {
	m := make(Mapping, len(a.stack))
	for _, pair := range a.stack {
		m[pair[0]] = pair[1]
	}
	return m
}
