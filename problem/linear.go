package problem

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlopt/matrix"
)

// LinearForm is the (mixed-integer) linear program of an affine Problem:
//
//	minimize   Cᵀx + Offset
//	subject to RowLower ≤ A·x ≤ RowUpper
//	           L ≤ x ≤ U,  x_j integer where Integer[j]
//
// An equality row has RowLower == RowUpper; one-sided rows use ±Inf.
type LinearForm struct {
	C        []float64
	Offset   float64
	A        *matrix.Coo // m×n, compacted, zero coefficients omitted
	RowLower []float64
	RowUpper []float64
	L        []float64
	U        []float64
	Integer  []bool
}

// Value returns Cᵀx + Offset.
// Returns ErrDimensionMismatch when len(x) != len(C).
func (lf *LinearForm) Value(x []float64) (float64, error) {
	if len(x) != len(lf.C) {
		return 0, fmt.Errorf("%w: point has %d entries, want %d", ErrDimensionMismatch, len(x), len(lf.C))
	}
	v := lf.Offset
	for j, c := range lf.C {
		v += c * x[j]
	}

	return v, nil
}

// Activity returns the row activities A·x, to be compared with
// RowLower and RowUpper.
func (lf *LinearForm) Activity(x []float64) ([]float64, error) {
	y, err := lf.A.MulVec(x)
	if err != nil {
		return nil, fmt.Errorf("problem: activity: %w", err)
	}

	return y, nil
}

// Linear extracts the linear program of p from its affine properties.
// Constraint i, a·x + b {=,≤,≥} 0, becomes the row range of a·x against -b.
// Returns ErrNotAffine naming the first non-affine component.
// Complexity: O(nnz(A) log nnz(A) + n + m).
func (p *Problem) Linear() (*LinearForm, error) {
	n, m := p.index.Len(), len(p.constraints)

	// 1) Objective.
	obj := p.objective.Standard.Properties
	if !obj.Affine {
		return nil, fmt.Errorf("%w: %s", ErrNotAffine, p.objective.Name)
	}
	lf := &LinearForm{
		C:        make([]float64, n),
		Offset:   obj.Constant,
		RowLower: make([]float64, m),
		RowUpper: make([]float64, m),
		L:        append([]float64(nil), p.L...),
		U:        append([]float64(nil), p.U...),
		Integer:  append([]bool(nil), p.Integer...),
	}
	for v, a := range obj.Coefficients {
		j, err := p.index.Index(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.objective.Name, err)
		}
		lf.C[j] = a
	}

	// 2) Rows. Coefficients must be finite.
	a, err := matrix.NewCoo(m, n)
	if err != nil {
		return nil, err
	}
	for i, c := range p.constraints {
		props := c.Standard.Properties
		if !props.Affine {
			return nil, fmt.Errorf("%w: %s", ErrNotAffine, c.Name)
		}
		for _, v := range props.Support() {
			coef := props.Coefficients[v]
			if coef == 0 {
				continue
			}
			j, err := p.index.Index(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.Name, err)
			}
			if err = a.Append(i, j, coef); err != nil {
				return nil, fmt.Errorf("%s: %w", c.Name, err)
			}
		}
		rhs := -props.Constant
		if rhs == 0 {
			rhs = 0 // no -0 in the row bounds
		}
		switch c.Sense {
		case Equal:
			lf.RowLower[i], lf.RowUpper[i] = rhs, rhs
		case LessEqual:
			lf.RowLower[i], lf.RowUpper[i] = math.Inf(-1), rhs
		case GreaterEqual:
			lf.RowLower[i], lf.RowUpper[i] = rhs, math.Inf(1)
		default:
			return nil, fmt.Errorf("%s: %w: %s", c.Name, ErrUnknownSense, c.Sense)
		}
	}
	a.Compact()
	lf.A = a

	return lf, nil
}
