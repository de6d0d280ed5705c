// Package modelfile loads optimization models from YAML.
//
// A model file declares variables, optional named definitions, an optional
// objective and a list of constraints:
//
//	variables:
//	  - {name: x, lower: 0}
//	  - {name: n, type: integer, lower: 0, upper: 10}
//	definitions:
//	  s: {op: sin, args: [x]}
//	objective: {op: add, args: [{op: mul, args: [7, {ref: s}]}, n]}
//	constraints:
//	  - {name: cap, sense: le, lhs: {op: add, args: [x, n]}, rhs: 4}
//
// An expression is a number (constant), a bare name (variable), or a mapping
// with exactly one of const, var, ref or op (+ args). Operators are the
// catalog names add, mul, div, sin, cos plus the shorthands sub (a - b) and
// neg (-a).
//
// Definitions may reference each other through ref. They are built in
// topological order, so every reference to a definition shares one node, and
// a cyclic reference is rejected with ErrCycleDetected before any expression
// is built. Every error names the path of the offending entry, e.g.
// "constraints[2].lhs.args[0]".
package modelfile
