package expr

import "errors"

var (
	// ErrArity is returned when an operator receives an operand count it does not accept.
	ErrArity = errors.New("expr: wrong number of operands")

	// ErrNilNode is returned when a nil Node is passed where an operand is required.
	ErrNilNode = errors.New("expr: nil node")

	// ErrNotFunction is returned by Apply for the leaf kinds (constant, variable).
	ErrNotFunction = errors.New("expr: kind is not a function")

	// ErrUnknownOperator is returned by LookupName for names outside the catalog.
	ErrUnknownOperator = errors.New("expr: unknown operator")

	// ErrUnboundVariable is returned by Evaluate when the point has no value for a variable.
	ErrUnboundVariable = errors.New("expr: unbound variable")
)
