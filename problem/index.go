package problem

import (
	"fmt"

	"github.com/katalvlaran/lvlopt/expr"
)

// VarIndex is a fixed, caller-supplied total ordering of variables.
// Position i of the ordering is column i of every vector and matrix a
// Problem produces. A VarIndex is immutable and safe for concurrent use.
type VarIndex struct {
	vars []*expr.Variable
	pos  map[*expr.Variable]int
}

// NewVarIndex builds an index from vars in the given order.
// Returns ErrNilExpression for a nil entry and ErrDuplicateVariable when a
// variable appears twice.
// Complexity: O(n).
func NewVarIndex(vars []*expr.Variable) (*VarIndex, error) {
	idx := &VarIndex{
		vars: make([]*expr.Variable, len(vars)),
		pos:  make(map[*expr.Variable]int, len(vars)),
	}
	for i, v := range vars {
		if v == nil {
			return nil, fmt.Errorf("problem: index position %d: %w", i, ErrNilExpression)
		}
		if j, dup := idx.pos[v]; dup {
			return nil, fmt.Errorf("%w: %s at positions %d and %d", ErrDuplicateVariable, v.Name(), j, i)
		}
		idx.pos[v] = i
		idx.vars[i] = v
	}

	return idx, nil
}

// Index returns the position of v, or ErrUnknownVariable.
func (x *VarIndex) Index(v *expr.Variable) (int, error) {
	i, ok := x.pos[v]
	if !ok {
		name := "<nil>"
		if v != nil {
			name = v.Name()
		}
		return 0, fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}

	return i, nil
}

// Vars returns a copy of the ordering.
func (x *VarIndex) Vars() []*expr.Variable {
	out := make([]*expr.Variable, len(x.vars))
	copy(out, x.vars)

	return out
}

// Len returns the number of indexed variables.
func (x *VarIndex) Len() int { return len(x.vars) }

// Point adapts a dense vector, aligned with the index, to expr.Point.
// The vector is read, never copied; callers must keep its length equal to Len.
func (x *VarIndex) Point(vals []float64) expr.Point {
	return vectorPoint{index: x, vals: vals}
}

type vectorPoint struct {
	index *VarIndex
	vals  []float64
}

func (p vectorPoint) Value(v *expr.Variable) (float64, bool) {
	i, ok := p.index.pos[v]
	if !ok || i >= len(p.vals) {
		return 0, false
	}

	return p.vals[i], true
}
