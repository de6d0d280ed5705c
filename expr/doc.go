// Package expr defines the immutable expression graph used by lvlopt models.
//
// What:
//
//   - Node: a scalar expression, one of *Constant, *Variable or *Function.
//   - Function nodes apply an operator from a closed catalog
//     (add, mul, div, sin, cos) to an ordered list of child nodes.
//   - Constructors (Add, Mul, Div, Sin, Cos, Neg, Sub, Apply) are the only way
//     to build nodes. They compose existing nodes, so the graph is acyclic by
//     construction and children are shared rather than copied.
//
// Why:
//
//   - Structural equality (Equal) and a matching hash (Node.Hash) let callers
//     deduplicate identical subexpressions (see Pool) and memoize work keyed
//     by structure instead of pointer identity.
//   - A closed set of kinds lets the differentiation and standardization
//     packages use exhaustive switches instead of open-ended dispatch.
//
// Variables:
//
//	A *Variable is a decision-variable identity. Two variables are equal iff
//	they are the same pointer. Each variable receives a process-wide serial ID
//	at creation; ID order is the canonical ordering used everywhere a
//	deterministic variable order is required.
//
// Errors:
//
//   - ErrArity            operator applied to the wrong number of operands
//   - ErrNilNode          nil operand passed to Apply
//   - ErrNotFunction      Apply called with a leaf kind
//   - ErrUnknownOperator  operator name not present in the catalog
//   - ErrUnboundVariable  Evaluate reached a variable the Point does not bind
//
// Concurrency:
//
//	Nodes are never mutated after construction and may be shared freely
//	between goroutines. Pool is the only stateful type and guards itself.
package expr
