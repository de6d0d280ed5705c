// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All methods return these sentinels (optionally wrapped with a method tag)
// and tests match them via errors.Is. Panics are reserved for invalid
// option values, which are programmer errors.

package matrix

import "errors"

// Every message is prefixed with "matrix: " so it is easy to grep in logs.
// Context is added with fmt.Errorf("Tag: %w", ErrX) at the detection site.

var (
	// ErrBadShape is returned when a requested shape is invalid (rows<0 or cols<0
	// for Coo, rows<=0 or cols<=0 for Dense).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. AddScaled on different shapes or MulVec with a wrong-length vector.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value where the numeric policy requires
	// finite values.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil matrix or vector argument was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)
