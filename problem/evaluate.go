package problem

import (
	"fmt"

	"github.com/katalvlaran/lvlopt/expr"
	"github.com/katalvlaran/lvlopt/matrix"
)

// Evaluate computes every numeric output of the problem at x.
//
// Implementation:
//  1. check len(x) == NumVars();
//  2. objective: Phi, dense GPhi (0 where a variable has no entry), HPhi;
//  3. constraints: F[i], row i of J, H[i].
//
// HComb is cleared; call CombineH again for the new point.
// Division by zero follows IEEE-754 and is not an error.
// Complexity: O(total size of the compiled expressions).
func (p *Problem) Evaluate(x []float64) error {
	// 1) Shape.
	if len(x) != p.index.Len() {
		return fmt.Errorf("%w: point has %d entries, want %d", ErrDimensionMismatch, len(x), p.index.Len())
	}
	pt := p.index.Point(x)

	// 2) Objective.
	v, err := evalNode(p.objective.Name, p.objective.Standard.Value, pt)
	if err != nil {
		return err
	}
	p.Phi = v
	for i := range p.GPhi {
		p.GPhi[i] = 0
	}
	for _, t := range p.objective.grad {
		if p.GPhi[t.col], err = evalNode(p.objective.Name, t.expr, pt); err != nil {
			return err
		}
	}
	if err = fillHessian(p.HPhi, p.objective, pt); err != nil {
		return err
	}

	// 3) Constraints.
	p.J.Reset()
	for i, c := range p.constraints {
		if p.F[i], err = evalNode(c.Name, c.Standard.Value, pt); err != nil {
			return err
		}
		for _, t := range c.grad {
			g, err := evalNode(c.Name, t.expr, pt)
			if err != nil {
				return err
			}
			if err = p.J.Append(i, t.col, g); err != nil {
				return fmt.Errorf("%s: %w", c.Name, err)
			}
		}
		if err = fillHessian(p.H[i], c, pt); err != nil {
			return err
		}
	}

	p.HComb = nil
	p.evaluated = true

	return nil
}

// CombineH computes HComb = HPhi + Σ nu[i]·H[i] at the last evaluated point.
// Entries landing on the same (row, col) are merged by summation, so HComb
// never holds duplicate coordinates. With WithDropTolerance, merged entries
// that cancel out are removed.
// Returns ErrNotEvaluated before the first Evaluate and ErrDimensionMismatch
// when len(nu) != NumConstraints().
// Complexity: O(K log K) for K stored Hessian entries.
func (p *Problem) CombineH(nu []float64) error {
	if !p.evaluated {
		return ErrNotEvaluated
	}
	if len(nu) != len(p.constraints) {
		return fmt.Errorf("%w: %d multipliers, want %d", ErrDimensionMismatch, len(nu), len(p.constraints))
	}

	hc := p.HPhi.Clone()
	for i, h := range p.H {
		if err := hc.AddScaled(h, nu[i]); err != nil {
			return fmt.Errorf("%s: %w", p.constraints[i].Name, err)
		}
	}
	hc.Compact()
	p.HComb = hc

	return nil
}

func fillHessian(h *matrix.Coo, c compiled, pt expr.Point) error {
	h.Reset()
	for _, t := range c.hess {
		v, err := evalNode(c.Name, t.expr, pt)
		if err != nil {
			return err
		}
		if err = h.Append(t.row, t.col, v); err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}
	}

	return nil
}

func evalNode(name string, n expr.Node, pt expr.Point) (float64, error) {
	v, err := expr.Evaluate(n, pt)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}

	return v, nil
}
