package problem

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlopt/expr"
)

// Sense is the comparison of a constraint expression against zero.
type Sense uint8

const (
	Equal        Sense = iota // f(x) = 0
	LessEqual                 // f(x) ≤ 0
	GreaterEqual              // f(x) ≥ 0
)

var senseNames = [...]string{Equal: "eq", LessEqual: "le", GreaterEqual: "ge"}

// String returns the short name used in model files ("eq", "le", "ge").
func (s Sense) String() string {
	if s.valid() {
		return senseNames[s]
	}

	return fmt.Sprintf("Sense(%d)", s)
}

func (s Sense) valid() bool { return int(s) < len(senseNames) }

// ParseSense is the inverse of String.
func ParseSense(name string) (Sense, error) {
	for s, n := range senseNames {
		if n == name {
			return Sense(s), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownSense, name)
}

// Constraint is a named expression compared against zero.
type Constraint struct {
	Name  string
	Expr  expr.Node
	Sense Sense
}

// Eq builds lhs - rhs = 0.
func Eq(name string, lhs, rhs expr.Node) Constraint {
	return Constraint{Name: name, Expr: difference(lhs, rhs), Sense: Equal}
}

// Le builds lhs - rhs ≤ 0.
func Le(name string, lhs, rhs expr.Node) Constraint {
	return Constraint{Name: name, Expr: difference(lhs, rhs), Sense: LessEqual}
}

// Ge builds lhs - rhs ≥ 0.
func Ge(name string, lhs, rhs expr.Node) Constraint {
	return Constraint{Name: name, Expr: difference(lhs, rhs), Sense: GreaterEqual}
}

// difference keeps lhs unchanged when rhs is the literal zero.
func difference(lhs, rhs expr.Node) expr.Node {
	if expr.IsConstantWithValue(rhs, 0) {
		return lhs
	}

	return expr.Sub(lhs, rhs)
}

// Bound is a closed interval for one variable. Infinite ends are allowed.
type Bound struct {
	Lower float64
	Upper float64
}

// Free is the unbounded interval (-Inf, +Inf).
func Free() Bound { return Bound{Lower: math.Inf(-1), Upper: math.Inf(1)} }

func (b Bound) validate() error {
	if math.IsNaN(b.Lower) || math.IsNaN(b.Upper) || b.Lower > b.Upper {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidBound, b.Lower, b.Upper)
	}

	return nil
}

// Model is the symbolic input of Assemble.
// A nil Objective is the constant 0 (a feasibility problem). Variables
// missing from Bounds are free.
type Model struct {
	Objective   expr.Node
	Constraints []Constraint
	Bounds      map[*expr.Variable]Bound
}

// Variables returns every variable appearing in the objective, the
// constraints or the bounds, sorted by creation order. It is a convenient
// default ordering for NewVarIndex.
func (m Model) Variables() []*expr.Variable {
	seen := make(map[*expr.Variable]struct{})
	var out []*expr.Variable
	add := func(vs []*expr.Variable) {
		for _, v := range vs {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	if m.Objective != nil {
		add(expr.Variables(m.Objective))
	}
	for _, c := range m.Constraints {
		if c.Expr != nil {
			add(expr.Variables(c.Expr))
		}
	}
	for v := range m.Bounds {
		if v != nil {
			add([]*expr.Variable{v})
		}
	}
	expr.SortVariables(out)

	return out
}
