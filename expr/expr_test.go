package expr_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlopt/expr"
)

// TestConstructors_Kinds verifies every constructor produces the expected kind and operands.
func TestConstructors_Kinds(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")

	cases := []struct {
		name string
		node expr.Node
		kind expr.Kind
		args int
	}{
		{"constant", expr.NewConstant(3), expr.KindConstant, 0},
		{"variable", x, expr.KindVariable, 0},
		{"add", expr.Add(x, y), expr.KindAdd, 2},
		{"mul", expr.Mul(x, y, x), expr.KindMultiply, 3},
		{"div", expr.Div(x, y), expr.KindDivide, 2},
		{"sin", expr.Sin(x), expr.KindSine, 1},
		{"cos", expr.Cos(y), expr.KindCosine, 1},
		{"neg", expr.Neg(x), expr.KindMultiply, 2},
		{"sub", expr.Sub(x, y), expr.KindAdd, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.node.Kind())
			assert.Len(t, tc.node.Children(), tc.args)
		})
	}
}

// TestConstructors_Degenerate covers empty and single-operand sums and products.
func TestConstructors_Degenerate(t *testing.T) {
	x := expr.NewVariable("x")

	assert.True(t, expr.IsConstantWithValue(expr.Add(), 0))
	assert.True(t, expr.IsConstantWithValue(expr.Mul(), 1))
	assert.Same(t, x, expr.Add(x))
	assert.Same(t, x, expr.Mul(x))
}

// TestConstructors_DoNotMutateInputs ensures operand slices are copied.
func TestConstructors_DoNotMutateInputs(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	terms := []expr.Node{x, y}
	sum := expr.Add(terms...)

	terms[0] = expr.NewConstant(9)
	assert.Equal(t, "x + y", sum.String())

	kids := sum.Children()
	kids[1] = expr.NewConstant(1)
	assert.Equal(t, "x + y", sum.String())
}

// TestConstructors_NilPanics documents that typed constructors reject nil operands.
func TestConstructors_NilPanics(t *testing.T) {
	assert.Panics(t, func() { expr.Add(nil) })
	assert.Panics(t, func() { expr.Sin(nil) })
	assert.Panics(t, func() { expr.Div(expr.NewConstant(1), nil) })
}

// TestApply_Validation checks arity, nil and leaf-kind errors.
func TestApply_Validation(t *testing.T) {
	x := expr.NewVariable("x")

	n, err := expr.Apply(expr.KindDivide, x, expr.NewConstant(2))
	require.NoError(t, err)
	assert.Equal(t, "x/2", n.String())

	_, err = expr.Apply(expr.KindDivide, x)
	assert.ErrorIs(t, err, expr.ErrArity)

	_, err = expr.Apply(expr.KindSine, x, x)
	assert.ErrorIs(t, err, expr.ErrArity)

	_, err = expr.Apply(expr.KindAdd)
	assert.ErrorIs(t, err, expr.ErrArity)

	_, err = expr.Apply(expr.KindMultiply, x, nil)
	assert.ErrorIs(t, err, expr.ErrNilNode)

	_, err = expr.Apply(expr.KindVariable, x)
	assert.ErrorIs(t, err, expr.ErrNotFunction)
}

// TestLookupName resolves catalog names and rejects unknown ones.
func TestLookupName(t *testing.T) {
	for _, op := range expr.Operators() {
		got, err := expr.LookupName(op.Name)
		require.NoError(t, err)
		assert.Equal(t, op.Kind, got.Kind)
		assert.Equal(t, op.Name, op.Kind.String())
	}

	_, err := expr.LookupName("tan")
	assert.True(t, errors.Is(err, expr.ErrUnknownOperator))
}

// TestEqual_Structural verifies value/identity/structure rules and hash agreement.
func TestEqual_Structural(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	xTwin := expr.NewVariable("x") // same label, different identity

	a := expr.Add(expr.Mul(expr.NewConstant(7), x), expr.Cos(y))
	b := expr.Add(expr.Mul(expr.NewConstant(7), x), expr.Cos(y))

	assert.True(t, expr.Equal(a, b))
	assert.Equal(t, a.Hash(), b.Hash())

	assert.True(t, expr.Equal(expr.NewConstant(0), expr.NewConstant(math.Copysign(0, -1))))
	assert.Equal(t, expr.NewConstant(0).Hash(), expr.NewConstant(math.Copysign(0, -1)).Hash())

	assert.False(t, expr.Equal(x, xTwin))
	assert.False(t, expr.Equal(expr.Sin(x), expr.Cos(x)))
	assert.False(t, expr.Equal(expr.Add(x, y), expr.Add(y, x)))
	assert.False(t, expr.Equal(expr.Add(x, y), expr.Add(x, y, y)))
	assert.False(t, expr.Equal(a, nil))
}

// TestIsConstantWithValue is purely syntactic.
func TestIsConstantWithValue(t *testing.T) {
	x := expr.NewVariable("x")

	assert.True(t, expr.IsConstantWithValue(expr.NewConstant(0), 0))
	assert.False(t, expr.IsConstantWithValue(expr.NewConstant(1), 0))
	// 0*x is semantically zero but not a literal constant.
	assert.False(t, expr.IsConstantWithValue(expr.Mul(expr.NewConstant(0), x), 0))
	assert.False(t, expr.IsConstantWithValue(x, 0))
}

// TestEvaluate computes values, shares work and reports unbound variables.
func TestEvaluate(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	// 7*cos(x) + 10*y*x + 5
	e := expr.Add(
		expr.Mul(expr.NewConstant(7), expr.Cos(x)),
		expr.Mul(expr.NewConstant(10), y, x),
		expr.NewConstant(5),
	)

	v, err := expr.Evaluate(e, expr.Assignment{x: 0, y: 0})
	require.NoError(t, err)
	assert.InDelta(t, 12.0, v, 1e-12)

	v, err = expr.Evaluate(e, expr.Assignment{x: 1, y: 2})
	require.NoError(t, err)
	assert.InDelta(t, 7*math.Cos(1)+20+5, v, 1e-12)

	_, err = expr.Evaluate(e, expr.Assignment{x: 1})
	assert.ErrorIs(t, err, expr.ErrUnboundVariable)

	// Literal zero denominators are representable and follow IEEE semantics.
	inf, err := expr.Evaluate(expr.Div(expr.NewConstant(1), expr.NewConstant(0)), expr.Assignment{})
	require.NoError(t, err)
	assert.True(t, math.IsInf(inf, 1))
}

// TestVariables returns each variable once in creation order.
func TestVariables(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	z := expr.NewVariable("z", expr.WithInteger())

	e := expr.Add(expr.Mul(z, y), expr.Sin(x), y)
	assert.Equal(t, []*expr.Variable{x, y, z}, expr.Variables(e))
	assert.Empty(t, expr.Variables(expr.NewConstant(2)))
	assert.Equal(t, expr.Integer, z.Type())
	assert.Equal(t, expr.Continuous, x.Type())
	assert.Less(t, x.ID(), y.ID())
}

// TestString_Parenthesization checks infix rendering.
func TestString_Parenthesization(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	one := expr.NewConstant(1)

	cases := []struct {
		node expr.Node
		want string
	}{
		{expr.Mul(x, expr.Add(y, one)), "x*(y + 1)"},
		{expr.Div(x, expr.Mul(expr.NewConstant(2), y)), "x/(2*y)"},
		{expr.Div(expr.Add(x, y), y), "(x + y)/y"},
		{expr.Mul(expr.NewConstant(-7), expr.Cos(x)), "-7*cos(x)"},
		{expr.Add(expr.Mul(expr.NewConstant(0.5), x), expr.Sin(y)), "0.5*x + sin(y)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.node.String())
	}
}

// TestSize counts shared nodes once.
func TestSize(t *testing.T) {
	x := expr.NewVariable("x")
	s := expr.Sin(x)
	e := expr.Add(s, s)

	assert.Equal(t, 3, expr.Size(e)) // add, sin, x
}

// TestPool_Intern shares equal subtrees and is safe for concurrent use.
func TestPool_Intern(t *testing.T) {
	x := expr.NewVariable("x")
	p := expr.NewPool()

	a := p.Intern(expr.Mul(expr.NewConstant(2), expr.Sin(x)))
	b := p.Intern(expr.Mul(expr.NewConstant(2), expr.Sin(x)))
	assert.Same(t, a, b)

	c := p.Intern(expr.Add(expr.Sin(x), expr.NewConstant(2)))
	// sin(x) inside c is the canonical node registered through a.
	assert.Same(t, a.Children()[1], c.Children()[0])
	assert.Same(t, x, p.Intern(x))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := p.Intern(expr.Mul(expr.NewConstant(2), expr.Sin(x)))
			assert.Same(t, a, got)
		}()
	}
	wg.Wait()
	assert.Equal(t, 4, p.Len()) // 2, sin(x), 2*sin(x), sin(x) + 2
}
