package expr

import (
	"fmt"
	"math"
)

// Variadic marks an operator that accepts one or more operands.
const Variadic = -1

// Operator describes one entry of the function catalog.
type Operator struct {
	Kind  Kind
	Name  string
	Arity int                          // exact operand count, or Variadic
	Eval  func(args []float64) float64 // numeric rule
}

// Accepts reports whether n operands are valid for the operator.
func (op Operator) Accepts(n int) bool {
	if op.Arity == Variadic {
		return n >= 1
	}

	return n == op.Arity
}

// catalog is indexed by Kind; leaf kinds hold zero Operators.
var catalog = [...]Operator{
	KindAdd: {
		Kind: KindAdd, Name: "add", Arity: Variadic,
		Eval: func(args []float64) float64 {
			s := 0.0
			for _, a := range args {
				s += a
			}
			return s
		},
	},
	KindMultiply: {
		Kind: KindMultiply, Name: "mul", Arity: Variadic,
		Eval: func(args []float64) float64 {
			p := 1.0
			for _, a := range args {
				p *= a
			}
			return p
		},
	},
	KindDivide: {
		Kind: KindDivide, Name: "div", Arity: 2,
		Eval: func(args []float64) float64 { return args[0] / args[1] },
	},
	KindSine: {
		Kind: KindSine, Name: "sin", Arity: 1,
		Eval: func(args []float64) float64 { return math.Sin(args[0]) },
	},
	KindCosine: {
		Kind: KindCosine, Name: "cos", Arity: 1,
		Eval: func(args []float64) float64 { return math.Cos(args[0]) },
	},
}

// Lookup returns the catalog entry for a function kind.
func Lookup(k Kind) (Operator, bool) {
	if !k.IsFunction() {
		return Operator{}, false
	}

	return catalog[k], true
}

// LookupName resolves an operator by its catalog name ("add", "mul", ...).
func LookupName(name string) (Operator, error) {
	for k := KindAdd; k <= KindCosine; k++ {
		if catalog[k].Name == name {
			return catalog[k], nil
		}
	}

	return Operator{}, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
}

// Operators lists the catalog in kind order.
func Operators() []Operator {
	out := make([]Operator, 0, KindCosine-KindAdd+1)
	for k := KindAdd; k <= KindCosine; k++ {
		out = append(out, catalog[k])
	}

	return out
}
