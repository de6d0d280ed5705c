package standard

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlopt/expr"
)

// Properties is the affine classification of an expression.
//
// For affine expressions e = Constant + Σ Coefficients[v]·v exactly.
// For non-affine expressions Coefficients still lists every variable the
// expression depends on (its support) with value 0, and Constant is 0.
type Properties struct {
	Affine       bool
	Coefficients map[*expr.Variable]float64
	Constant     float64
}

// Support returns the keys of Coefficients in ID order.
func (p Properties) Support() []*expr.Variable {
	vars := make([]*expr.Variable, 0, len(p.Coefficients))
	for v := range p.Coefficients {
		vars = append(vars, v)
	}
	expr.SortVariables(vars)

	return vars
}

// IsConstant reports an affine expression without variables.
func (p Properties) IsConstant() bool {
	return p.Affine && len(p.Coefficients) == 0
}

// PropertiesOf computes the affine properties of e.
// Shared subexpressions are classified once per call.
// Complexity: O(N·S) for N distinct nodes and support size S.
func PropertiesOf(e expr.Node) Properties {
	c := classifier{memo: make(map[*expr.Function]Properties)}

	return c.classify(e)
}

// classifier memoizes per-call results; rules never mutate their inputs,
// so memoized Properties can be shared between parents.
type classifier struct {
	memo map[*expr.Function]Properties
}

func (c *classifier) classify(e expr.Node) Properties {
	switch x := e.(type) {
	case *expr.Constant:
		return Properties{Affine: true, Coefficients: map[*expr.Variable]float64{}, Constant: x.Value()}
	case *expr.Variable:
		return Properties{Affine: true, Coefficients: map[*expr.Variable]float64{x: 1}}
	case *expr.Function:
		if p, ok := c.memo[x]; ok {
			return p
		}
		args := x.Children()
		props := make([]Properties, len(args))
		for i, a := range args {
			props[i] = c.classify(a)
		}
		p := combine(x.Kind(), props)
		c.memo[x] = p
		return p
	}

	panic(fmt.Sprintf("standard: unsupported node %T", e))
}

// combine applies the per-operator affinity rule.
func combine(kind expr.Kind, props []Properties) Properties {
	switch kind {
	case expr.KindAdd:
		return addRule(props)
	case expr.KindMultiply:
		return mulRule(props)
	case expr.KindDivide:
		return divRule(props[0], props[1])
	case expr.KindSine:
		return unaryRule(props[0], math.Sin)
	case expr.KindCosine:
		return unaryRule(props[0], math.Cos)
	}

	panic(fmt.Sprintf("standard: no rule for kind %s", kind))
}

// addRule: affine iff every term is affine; coefficients and constants sum.
func addRule(props []Properties) Properties {
	out := Properties{Affine: true, Coefficients: map[*expr.Variable]float64{}}
	for _, p := range props {
		if !p.Affine {
			return nonAffine(props...)
		}
		for v, a := range p.Coefficients {
			out.Coefficients[v] += a
		}
		out.Constant += p.Constant
	}

	return out
}

// mulRule: affine iff every factor is affine and at most one depends on
// variables; the result scales that factor by the product of the others.
func mulRule(props []Properties) Properties {
	scale := 1.0
	var linear *Properties
	for i := range props {
		p := &props[i]
		switch {
		case !p.Affine:
			return nonAffine(props...)
		case p.IsConstant():
			scale *= p.Constant
		case linear != nil:
			return nonAffine(props...)
		default:
			linear = p
		}
	}
	if linear == nil {
		return Properties{Affine: true, Coefficients: map[*expr.Variable]float64{}, Constant: scale}
	}

	return scaled(*linear, scale)
}

// divRule: affine iff the numerator is affine and the denominator is a
// nonzero constant. A literal zero denominator is left to the general path.
func divRule(num, den Properties) Properties {
	if num.Affine && den.IsConstant() && den.Constant != 0 {
		return scaled(num, 1/den.Constant)
	}

	return nonAffine(num, den)
}

// unaryRule: sin/cos of a constant folds to a constant; anything else is non-affine.
func unaryRule(arg Properties, f func(float64) float64) Properties {
	if arg.IsConstant() {
		return Properties{Affine: true, Coefficients: map[*expr.Variable]float64{}, Constant: f(arg.Constant)}
	}

	return nonAffine(arg)
}

func scaled(p Properties, s float64) Properties {
	out := Properties{Affine: true, Coefficients: make(map[*expr.Variable]float64, len(p.Coefficients))}
	for v, a := range p.Coefficients {
		out.Coefficients[v] = a * s
	}
	out.Constant = p.Constant * s

	return out
}

// nonAffine keeps the union of supports with zero coefficients.
func nonAffine(props ...Properties) Properties {
	out := Properties{Coefficients: map[*expr.Variable]float64{}}
	for _, p := range props {
		for v := range p.Coefficients {
			out.Coefficients[v] = 0
		}
	}

	return out
}
