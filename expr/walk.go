package expr

import "sort"

// Variables returns the distinct variables referenced by n, sorted by ID.
// Shared subexpressions are visited once.
// Complexity: O(V log V + N) for N distinct nodes and V distinct variables.
func Variables(n Node) []*Variable {
	seen := make(map[*Variable]struct{})
	visited := make(map[*Function]struct{})
	collectVariables(n, seen, visited)

	out := make([]*Variable, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	SortVariables(out)

	return out
}

func collectVariables(n Node, seen map[*Variable]struct{}, visited map[*Function]struct{}) {
	switch x := n.(type) {
	case *Variable:
		seen[x] = struct{}{}
	case *Function:
		if _, ok := visited[x]; ok {
			return
		}
		visited[x] = struct{}{}
		for _, a := range x.args {
			collectVariables(a, seen, visited)
		}
	}
}

// SortVariables orders vars in place by ID (creation order).
func SortVariables(vars []*Variable) {
	sort.Slice(vars, func(i, j int) bool { return vars[i].id < vars[j].id })
}

// Size counts the distinct nodes reachable from n (shared nodes count once).
func Size(n Node) int {
	visited := make(map[Node]struct{})
	var walk func(Node)
	walk = func(m Node) {
		if _, ok := visited[m]; ok {
			return
		}
		visited[m] = struct{}{}
		if f, ok := m.(*Function); ok {
			for _, a := range f.args {
				walk(a)
			}
		}
	}
	walk(n)

	return len(visited)
}
