// Package lvlopt is a symbolic modeling core for nonlinear and
// mixed-integer optimization: build expressions, differentiate them,
// standardize them and assemble a numeric problem a solver can drive.
//
// 🚀 What is lvlopt?
//
//	A small library that brings together:
//		• Expressions: constants, variables, sums, products, quotients, sin, cos
//		• Differentiation: symbolic first and second derivatives with folding
//		• Standardization: affine detection plus gradient and upper-triangle Hessian
//		• Assembly: variable index, bounds, Jacobian, Hessians in COO form
//		• Model files: YAML models with shared named definitions
//
// Under the hood, everything is organized under these subpackages:
//
//	expr/       — expression nodes, builders, evaluation, formatting, interning
//	diff/       — symbolic differentiation
//	standard/   — affine properties and derivative components of one expression
//	matrix/     — coordinate (COO) and dense matrices
//	problem/    — variable index, model, Assemble, Evaluate, CombineH, Linear
//	modelfile/  — YAML model loading
//	cmd/lvlopt  — command-line inspector and evaluator
//
// Quick example:
//
//	x := expr.NewVariable("x")
//	y := expr.NewVariable("y")
//	idx, _ := problem.NewVarIndex([]*expr.Variable{x, y})
//	m := problem.Model{
//		Objective:   expr.Add(expr.Mul(x, y), expr.Sin(x)),
//		Constraints: []problem.Constraint{problem.Le("cap", expr.Add(x, y), expr.NewConstant(4))},
//	}
//	p, _ := problem.Assemble(ctx, m, idx)
//	_ = p.Evaluate([]float64{1, 2})
//	_ = p.CombineH([]float64{0.5})
package lvlopt
