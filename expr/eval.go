package expr

import "fmt"

// Point binds variables to numeric values.
type Point interface {
	Value(v *Variable) (float64, bool)
}

// Assignment is a map-backed Point.
type Assignment map[*Variable]float64

// Value implements Point.
func (a Assignment) Value(v *Variable) (float64, bool) {
	x, ok := a[v]

	return x, ok
}

// Evaluate computes the numeric value of n at p.
// Shared subexpressions are evaluated once per call. Division by zero follows
// IEEE-754 (±Inf or NaN) and is not reported as an error.
// Returns ErrUnboundVariable if p has no value for a variable in n.
func Evaluate(n Node, p Point) (float64, error) {
	ev := evaluator{point: p, memo: make(map[*Function]float64)}

	return ev.eval(n)
}

type evaluator struct {
	point Point
	memo  map[*Function]float64
}

func (ev *evaluator) eval(n Node) (float64, error) {
	switch x := n.(type) {
	case *Constant:
		return x.value, nil
	case *Variable:
		v, ok := ev.point.Value(x)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnboundVariable, x.name)
		}
		return v, nil
	case *Function:
		if v, ok := ev.memo[x]; ok {
			return v, nil
		}
		args := make([]float64, len(x.args))
		for i, a := range x.args {
			v, err := ev.eval(a)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		v := catalog[x.kind].Eval(args)
		ev.memo[x] = v
		return v, nil
	}

	return 0, fmt.Errorf("%w: %T", ErrNilNode, n)
}
