// Package standard classifies expressions and lowers them into the
// value/gradient/Hessian components a numerical solver consumes.
//
// What:
//
//   - PropertiesOf(e): affine classification with coefficient map and
//     constant term, computed bottom-up by per-operator rules.
//   - ComponentsOf(e): value expression, symbolic gradient and the upper
//     triangle of the symbolic Hessian, structural zeros omitted.
//
// Affine fast path:
//
//	When e is affine the gradient is read straight off the coefficient map
//	as constants and the Hessian is empty; the diff package is not invoked.
//
// Hessian layout:
//
//	Variables are enumerated in ID order (expr.SortVariables). For the
//	variable at position i the first derivative is differentiated again
//	only with respect to positions ≥ i, so (a, b) and (b, a) never both
//	appear. Entries that fold to the literal 0 are dropped.
//
// Both functions are pure: no caching inside nodes, no shared state, and
// repeated calls on the same expression return equal results. They are
// safe to call concurrently on shared expressions.
package standard
