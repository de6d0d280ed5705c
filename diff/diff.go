package diff

import (
	"fmt"

	"github.com/katalvlaran/lvlopt/expr"
)

// Derivatives returns ∂e/∂v for every v in vars. Each value is a new node
// (or a shared literal); e is never modified. Duplicate entries in vars map
// to the same derivative.
func Derivatives(e expr.Node, vars []*expr.Variable) map[*expr.Variable]expr.Node {
	d := newDeriver(vars)
	g := d.grad(e)

	out := make(map[*expr.Variable]expr.Node, len(d.vars))
	for i, v := range d.vars {
		out[v] = g[i]
	}

	return out
}

// Gradient returns ∂e/∂vars[i] at position i.
func Gradient(e expr.Node, vars []*expr.Variable) []expr.Node {
	d := newDeriver(vars)
	g := d.grad(e)

	out := make([]expr.Node, len(vars))
	for i, v := range vars {
		out[i] = g[d.index[v]]
	}

	return out
}

// Derivative returns ∂e/∂v.
func Derivative(e expr.Node, v *expr.Variable) expr.Node {
	return Gradient(e, []*expr.Variable{v})[0]
}

// deriver holds the per-call state: the requested variables and the memo of
// already differentiated subexpressions.
type deriver struct {
	vars  []*expr.Variable       // unique requested variables
	index map[*expr.Variable]int // variable → position in vars
	memo  map[uint64][]memoEntry // structural hash → differentiated nodes
}

type memoEntry struct {
	node expr.Node
	grad []expr.Node
}

func newDeriver(vars []*expr.Variable) *deriver {
	d := &deriver{
		vars:  make([]*expr.Variable, 0, len(vars)),
		index: make(map[*expr.Variable]int, len(vars)),
		memo:  make(map[uint64][]memoEntry),
	}
	for _, v := range vars {
		if _, dup := d.index[v]; dup {
			continue
		}
		d.index[v] = len(d.vars)
		d.vars = append(d.vars, v)
	}

	return d
}

// zeros returns a fresh all-zero gradient.
func (d *deriver) zeros() []expr.Node {
	g := make([]expr.Node, len(d.vars))
	for i := range g {
		g[i] = zero
	}

	return g
}

// grad returns the partials of n aligned with d.vars.
func (d *deriver) grad(n expr.Node) []expr.Node {
	switch x := n.(type) {
	case *expr.Constant:
		return d.zeros()
	case *expr.Variable:
		g := d.zeros()
		if i, ok := d.index[x]; ok {
			g[i] = one
		}
		return g
	case *expr.Function:
		// 1) Reuse the result for a structurally equal subexpression.
		h := x.Hash()
		for _, m := range d.memo[h] {
			if expr.Equal(m.node, x) {
				return m.grad
			}
		}
		// 2) Differentiate the operands, then apply the operator rule.
		args := x.Children()
		argGrads := make([][]expr.Node, len(args))
		for k, a := range args {
			argGrads[k] = d.grad(a)
		}
		g := d.apply(x.Kind(), args, argGrads)
		d.memo[h] = append(d.memo[h], memoEntry{node: x, grad: g})
		return g
	}

	panic(fmt.Sprintf("diff: unsupported node %T", n))
}

// apply combines operand derivatives according to the rule for kind.
func (d *deriver) apply(kind expr.Kind, args []expr.Node, ag [][]expr.Node) []expr.Node {
	g := make([]expr.Node, len(d.vars))

	switch kind {
	case expr.KindAdd:
		for i := range g {
			terms := make([]expr.Node, len(args))
			for k := range args {
				terms[k] = ag[k][i]
			}
			g[i] = sum(terms...)
		}

	case expr.KindMultiply:
		for i := range g {
			var terms []expr.Node
			for k := range args {
				dk := ag[k][i]
				if isZero(dk) {
					continue
				}
				factors := make([]expr.Node, 0, len(args))
				factors = append(factors, dk)
				for j, a := range args {
					if j != k {
						factors = append(factors, a)
					}
				}
				terms = append(terms, product(factors...))
			}
			g[i] = sum(terms...)
		}

	case expr.KindDivide:
		num, den := args[0], args[1]
		var denSq expr.Node // shared by every partial that needs it
		for i := range g {
			dn, dd := ag[0][i], ag[1][i]
			switch {
			case isZero(dd):
				g[i] = quotient(dn, den)
			default:
				top := sum(product(dn, den), product(expr.NewConstant(-1), num, dd))
				if isZero(top) {
					g[i] = zero
					continue
				}
				if denSq == nil {
					denSq = expr.Mul(den, den)
				}
				g[i] = expr.Div(top, denSq)
			}
		}

	case expr.KindSine:
		var cos expr.Node
		for i := range g {
			if isZero(ag[0][i]) {
				g[i] = zero
				continue
			}
			if cos == nil {
				cos = expr.Cos(args[0])
			}
			g[i] = product(cos, ag[0][i])
		}

	case expr.KindCosine:
		var sin expr.Node
		for i := range g {
			if isZero(ag[0][i]) {
				g[i] = zero
				continue
			}
			if sin == nil {
				sin = expr.Sin(args[0])
			}
			g[i] = product(expr.NewConstant(-1), sin, ag[0][i])
		}

	default:
		panic(fmt.Sprintf("diff: no rule for kind %s", kind))
	}

	return g
}

// quotient builds n/d, folding a zero numerator.
func quotient(n, d expr.Node) expr.Node {
	if isZero(n) {
		return zero
	}

	return expr.Div(n, d)
}
