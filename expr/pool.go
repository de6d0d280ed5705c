package expr

import "sync"

// Pool deduplicates structurally equal subexpressions (hash-consing).
// Interning is an optimization only: an interned tree is Equal to its input.
// A Pool is safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[uint64][]Node
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{buckets: make(map[uint64][]Node)}
}

// Intern returns the canonical node structurally equal to n, registering n
// (with canonical children) if no equal node was seen before. Variables are
// identities and are returned unchanged.
func (p *Pool) Intern(n Node) Node {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.intern(n)
}

// Len reports how many canonical nodes the pool holds.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := 0
	for _, b := range p.buckets {
		total += len(b)
	}

	return total
}

func (p *Pool) intern(n Node) Node {
	// 1) Variables are already unique.
	if _, ok := n.(*Variable); ok {
		return n
	}
	// 2) Canonicalize children first so the stored node shares canonical operands.
	if f, ok := n.(*Function); ok {
		var args []Node
		for i, a := range f.args {
			c := p.intern(a)
			if c != a && args == nil {
				args = append([]Node(nil), f.args...)
			}
			if args != nil {
				args[i] = c
			}
		}
		if args != nil {
			n = newFunction(f.kind, args)
		}
	}
	// 3) Look up an equal node in the hash bucket.
	h := n.Hash()
	for _, cand := range p.buckets[h] {
		if Equal(cand, n) {
			return cand
		}
	}
	p.buckets[h] = append(p.buckets[h], n)

	return n
}
