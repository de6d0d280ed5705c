// Package diff implements symbolic first-order differentiation of expr.Node
// trees with respect to a requested set of variables.
//
// What:
//
//   - Derivatives(e, vars) returns ∂e/∂v for every requested v as new nodes.
//   - Gradient(e, vars) returns the same derivatives aligned with vars.
//   - Derivative(e, v) is the single-variable shorthand.
//
// Rules (closed switch over expr.Kind):
//
//   - constant        → 0
//   - variable v      → 1 for v, 0 otherwise
//   - add(a, b, ...)  → a' + b' + ...
//   - mul(f1, ..., fn) → Σ_k fk' · Π_{j≠k} fj
//   - div(n, d)       → (n'·d − n·d') / (d·d), or n'/d when d' = 0
//   - sin(a)          → cos(a) · a'
//   - cos(a)          → −1 · sin(a) · a'
//
// Folding:
//
//	Results are built through small folding helpers: literal zeros vanish
//	from sums and annihilate products, literal ones drop out of products,
//	literal constants are merged and nested derivative sums/products are
//	flattened. Folding is syntactic only; it keeps derivative trees small and
//	makes expr.IsConstantWithValue(d, 0) a reliable structural-zero test.
//
// Complexity:
//
//	One call differentiates every distinct subexpression once (memoized by
//	structural hash and expr.Equal) and produces all requested partials in
//	the same pass: O(N·V) node constructions for N distinct nodes and V
//	variables. The memo lives for a single call; there is no shared state.
package diff
