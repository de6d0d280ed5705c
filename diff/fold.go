package diff

import "github.com/katalvlaran/lvlopt/expr"

var (
	zero = expr.NewConstant(0)
	one  = expr.NewConstant(1)
)

// isZero reports a literal Constant(0).
func isZero(n expr.Node) bool { return expr.IsConstantWithValue(n, 0) }

// sum adds terms, dropping literal zeros, merging literal constants and
// flattening nested sums. The merged constant is placed last.
func sum(terms ...expr.Node) expr.Node {
	c := 0.0
	rest := make([]expr.Node, 0, len(terms))
	var collect func([]expr.Node)
	collect = func(ts []expr.Node) {
		for _, t := range ts {
			switch x := t.(type) {
			case *expr.Constant:
				c += x.Value()
			case *expr.Function:
				if x.Kind() == expr.KindAdd {
					collect(x.Children())
					continue
				}
				rest = append(rest, t)
			default:
				rest = append(rest, t)
			}
		}
	}
	collect(terms)

	if c != 0 {
		rest = append(rest, expr.NewConstant(c))
	}
	switch len(rest) {
	case 0:
		return zero
	case 1:
		return rest[0]
	}

	return expr.Add(rest...)
}

// product multiplies factors. Any literal zero folds the result to zero,
// literal constants merge into one leading coefficient (dropped when 1) and
// nested products are flattened.
func product(factors ...expr.Node) expr.Node {
	c := 1.0
	rest := make([]expr.Node, 0, len(factors))
	var collect func([]expr.Node)
	collect = func(fs []expr.Node) {
		for _, f := range fs {
			switch x := f.(type) {
			case *expr.Constant:
				c *= x.Value()
			case *expr.Function:
				if x.Kind() == expr.KindMultiply {
					collect(x.Children())
					continue
				}
				rest = append(rest, f)
			default:
				rest = append(rest, f)
			}
		}
	}
	collect(factors)

	if c == 0 {
		return zero
	}
	if len(rest) == 0 {
		if c == 1 {
			return one
		}
		return expr.NewConstant(c)
	}
	if c != 1 {
		rest = append([]expr.Node{expr.NewConstant(c)}, rest...)
	}
	if len(rest) == 1 {
		return rest[0]
	}

	return expr.Mul(rest...)
}
