package modelfile

import (
	"fmt"
	"sort"
	"strings"
)

// Visitation states of a definition during the depth-first walk.
const (
	white = iota // not visited yet
	gray         // on the recursion stack
	black        // fully explored
)

// defSorter encapsulates state for ordering definitions by dependency.
type defSorter struct {
	defs  map[string]ExprSpec
	state map[string]int // white/gray/black
	stack []string       // current recursion path, for cycle reports
	order []string       // post-order: dependencies first
}

// definitionOrder returns the definition names ordered so that every
// definition comes after the definitions it references.
// Returns ErrUnknownReference for a ref to a missing definition and
// ErrCycleDetected (with the offending path) for cyclic references.
//
// Complexity:
//
//   - Time:   O(D log D + R) for D definitions and R references
//   - Memory: O(D)
func definitionOrder(defs map[string]ExprSpec) ([]string, error) {
	// 1) Deterministic roots.
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	// 2) Walk every unvisited definition.
	s := &defSorter{
		defs:  defs,
		state: make(map[string]int, len(defs)),
		order: make([]string, 0, len(defs)),
	}
	for _, name := range names {
		if s.state[name] == white {
			if err := s.visit(name); err != nil {
				return nil, err
			}
		}
	}

	return s.order, nil
}

// visit explores name's references depth-first, detecting back-edges.
func (s *defSorter) visit(name string) error {
	// 1) Back-edge: name is already on the stack.
	if s.state[name] == gray {
		start := 0
		for i, n := range s.stack {
			if n == name {
				start = i
				break
			}
		}
		path := append(append([]string(nil), s.stack[start:]...), name)
		return fmt.Errorf("%w: %s", ErrCycleDetected, strings.Join(path, " -> "))
	}
	// 2) Already explored.
	if s.state[name] == black {
		return nil
	}
	// 3) Mark in progress and recurse into references.
	s.state[name] = gray
	s.stack = append(s.stack, name)

	spec := s.defs[name]
	for _, ref := range spec.refs(nil) {
		if _, ok := s.defs[ref]; !ok {
			return fmt.Errorf("definitions.%s: %w: %q", name, ErrUnknownReference, ref)
		}
		if err := s.visit(ref); err != nil {
			return err
		}
	}

	// 4) Done: record after all dependencies.
	s.stack = s.stack[:len(s.stack)-1]
	s.state[name] = black
	s.order = append(s.order, name)

	return nil
}
