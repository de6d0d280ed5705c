// Package matrix provides the numeric containers produced by problem
// evaluation.
//
// The matrix package provides:
//
//   - Coo, a coordinate (triplet) store for sparse Jacobians and Hessians.
//     Entries may repeat; Compact merges duplicates by summation into a
//     deterministic row-major order.
//   - Dense, a row-major float64 matrix with bounds-checked At/Set, used to
//     materialize small sparse results for inspection and tests.
//   - Validators shared by both (shape, vector length).
//
// Numeric policy is configured with functional options (WithValidateNaNInf,
// WithEpsilon, WithDropZeros). Public methods never panic on user input;
// they return the sentinel errors in errors.go, matched with errors.Is.
package matrix
