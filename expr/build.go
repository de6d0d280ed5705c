package expr

import "fmt"

// panicNilOperand is raised by the typed constructors; a nil operand is a programmer error.
const panicNilOperand = "expr: nil operand"

func mustNonNil(nodes ...Node) {
	for _, n := range nodes {
		if n == nil {
			panic(panicNilOperand)
		}
	}
}

// Add returns the sum of terms. Operands are kept as given: nested sums are
// not flattened. Zero terms yield Constant(0); a single term is returned as is.
func Add(terms ...Node) Node {
	mustNonNil(terms...)
	switch len(terms) {
	case 0:
		return NewConstant(0)
	case 1:
		return terms[0]
	}

	return newFunction(KindAdd, append([]Node(nil), terms...))
}

// Mul returns the product of factors. Zero factors yield Constant(1);
// a single factor is returned as is.
func Mul(factors ...Node) Node {
	mustNonNil(factors...)
	switch len(factors) {
	case 0:
		return NewConstant(1)
	case 1:
		return factors[0]
	}

	return newFunction(KindMultiply, append([]Node(nil), factors...))
}

// Div returns num/den. A literal zero denominator is representable.
func Div(num, den Node) Node {
	mustNonNil(num, den)

	return newFunction(KindDivide, []Node{num, den})
}

// Sin returns sin(a).
func Sin(a Node) Node {
	mustNonNil(a)

	return newFunction(KindSine, []Node{a})
}

// Cos returns cos(a).
func Cos(a Node) Node {
	mustNonNil(a)

	return newFunction(KindCosine, []Node{a})
}

// Neg returns -1*a.
func Neg(a Node) Node {
	return Mul(NewConstant(-1), a)
}

// Sub returns a + (-1*b).
func Sub(a, b Node) Node {
	return Add(a, Neg(b))
}

// Scale returns c*a.
func Scale(c float64, a Node) Node {
	return Mul(NewConstant(c), a)
}

// Apply builds a function node of the given kind after validating operands.
// Unlike the typed constructors it reports misuse as an error, which makes it
// the entry point for data-driven builders such as the model file loader.
func Apply(kind Kind, args ...Node) (Node, error) {
	// 1) Only operator kinds can be applied.
	op, ok := Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFunction, kind)
	}
	// 2) Arity check against the catalog.
	if !op.Accepts(len(args)) {
		return nil, fmt.Errorf("%w: %s takes %s, got %d", ErrArity, op.Name, arityText(op.Arity), len(args))
	}
	// 3) Reject nil operands instead of panicking later.
	for i, a := range args {
		if a == nil {
			return nil, fmt.Errorf("%w: %s operand %d", ErrNilNode, op.Name, i)
		}
	}

	return newFunction(kind, append([]Node(nil), args...)), nil
}

func arityText(arity int) string {
	if arity == Variadic {
		return "one or more operands"
	}
	if arity == 1 {
		return "1 operand"
	}

	return fmt.Sprintf("%d operands", arity)
}

// IsConstantWithValue reports whether n is syntactically Constant(v).
// Non-constant subtrees are never evaluated.
func IsConstantWithValue(n Node, v float64) bool {
	c, ok := n.(*Constant)

	return ok && c.value == v
}
