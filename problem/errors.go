package problem

import "errors"

var (
	// ErrUnknownVariable is returned when a model references a variable that
	// is absent from the VarIndex.
	ErrUnknownVariable = errors.New("problem: variable not in index")

	// ErrDuplicateVariable is returned by NewVarIndex when a variable repeats.
	ErrDuplicateVariable = errors.New("problem: duplicate variable in index")

	// ErrNilExpression is returned for a nil variable or constraint expression.
	ErrNilExpression = errors.New("problem: nil expression")

	// ErrInvalidBound is returned when a lower bound exceeds its upper bound
	// or a bound is NaN.
	ErrInvalidBound = errors.New("problem: invalid variable bound")

	// ErrDimensionMismatch is returned when a point or multiplier vector has
	// the wrong length.
	ErrDimensionMismatch = errors.New("problem: dimension mismatch")

	// ErrNotEvaluated is returned by CombineH before the first Evaluate.
	ErrNotEvaluated = errors.New("problem: not evaluated")

	// ErrNotAffine is returned by Linear when the objective or a constraint
	// is not affine.
	ErrNotAffine = errors.New("problem: model is not affine")

	// ErrUnknownSense is returned by ParseSense for unrecognized names.
	ErrUnknownSense = errors.New("problem: unknown constraint sense")
)
