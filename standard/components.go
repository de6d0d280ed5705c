package standard

import (
	"github.com/katalvlaran/lvlopt/diff"
	"github.com/katalvlaran/lvlopt/expr"
)

// GradientEntry is one first partial derivative ∂e/∂Var.
type GradientEntry struct {
	Var  *expr.Variable
	Expr expr.Node
}

// HessianEntry is one upper-triangle second partial ∂²e/∂Row∂Col,
// with Row enumerated no later than Col.
type HessianEntry struct {
	Row  *expr.Variable
	Col  *expr.Variable
	Expr expr.Node
}

// Components is the standardized form of an expression.
type Components struct {
	Value      expr.Node
	Gradient   []GradientEntry
	Hessian    []HessianEntry
	Properties Properties
}

// ComponentsOf standardizes e:
//
//  1. compute PropertiesOf(e);
//  2. affine: gradient = (v, Constant(a_v)) for every nonzero coefficient,
//     Hessian empty;
//  3. otherwise: differentiate once over the whole support for the gradient,
//     then differentiate each first derivative over the support positions
//     ≥ its own to fill the upper triangle, dropping literal zeros;
//  4. return the value expression unchanged together with the results.
//
// Complexity: affine O(N·S); otherwise dominated by S+1 differentiation
// passes over trees that grow with the derivative order.
func ComponentsOf(e expr.Node) Components {
	// 1) Classify.
	props := PropertiesOf(e)
	support := props.Support()
	out := Components{Value: e, Properties: props}

	// 2) Affine fast path: constant gradient, zero curvature.
	if props.Affine {
		out.Gradient = make([]GradientEntry, 0, len(support))
		for _, v := range support {
			a := props.Coefficients[v]
			if a == 0 {
				continue
			}
			out.Gradient = append(out.Gradient, GradientEntry{Var: v, Expr: expr.NewConstant(a)})
		}
		return out
	}

	// 3) General path: first derivatives in one pass.
	first := diff.Gradient(e, support)
	out.Gradient = make([]GradientEntry, 0, len(support))
	for i, v := range support {
		if expr.IsConstantWithValue(first[i], 0) {
			continue // zero row: no gradient entry and no Hessian entries
		}
		out.Gradient = append(out.Gradient, GradientEntry{Var: v, Expr: first[i]})

		// 3a) Upper-triangle row i: ∂/∂support[j] for j ≥ i.
		tail := support[i:]
		second := diff.Gradient(first[i], tail)
		for j, w := range tail {
			if expr.IsConstantWithValue(second[j], 0) {
				continue
			}
			out.Hessian = append(out.Hessian, HessianEntry{Row: v, Col: w, Expr: second[j]})
		}
	}

	return out
}
