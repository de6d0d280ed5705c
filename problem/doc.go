// Package problem assembles standardized expressions into a numeric
// optimization problem.
//
// A Model pairs one objective with an ordered list of constraints and
// optional variable bounds. Assemble standardizes every component (see
// package standard), resolves each appearing variable against a
// caller-supplied VarIndex and compiles the result into a Problem:
//
//	minimize   φ(x)
//	subject to f_i(x) {=,≤,≥} 0   for every constraint i
//	           l ≤ x ≤ u
//
// Evaluate(x) then fills the dense objective gradient GPhi, the upper-triangle
// objective Hessian HPhi, constraint values F, the Jacobian J and the
// per-constraint Hessians H. CombineH(ν) forms HPhi + Σ ν_i·H_i with
// duplicate coordinates merged.
//
// A variable that appears in the model but not in the index fails assembly
// with ErrUnknownVariable; no partial Problem is ever returned.
//
// Complexity:
//
//   - Assemble: dominated by standardization, O(S) differentiation passes per
//     component for support size S; components run in parallel (WithWorkers).
//   - Evaluate: O(total size of compiled gradient and Hessian expressions).
package problem
