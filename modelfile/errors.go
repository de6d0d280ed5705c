package modelfile

import "errors"

var (
	// ErrCycleDetected indicates definitions that reference themselves,
	// directly or through other definitions.
	ErrCycleDetected = errors.New("modelfile: cycle detected in definitions")

	// ErrUnknownReference indicates a ref to an undefined definition.
	ErrUnknownReference = errors.New("modelfile: unknown definition")

	// ErrUnknownVariable indicates a var that is not declared under variables.
	ErrUnknownVariable = errors.New("modelfile: undeclared variable")

	// ErrDuplicateVariable indicates two variables with the same name.
	ErrDuplicateVariable = errors.New("modelfile: duplicate variable")

	// ErrInvalidExpression indicates a malformed expression entry.
	ErrInvalidExpression = errors.New("modelfile: invalid expression")

	// ErrInvalidVariable indicates a malformed variable declaration.
	ErrInvalidVariable = errors.New("modelfile: invalid variable")

	// ErrEmptyDocument indicates input without a YAML document.
	ErrEmptyDocument = errors.New("modelfile: empty document")
)
