package standard_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlopt/diff"
	"github.com/katalvlaran/lvlopt/expr"
	"github.com/katalvlaran/lvlopt/standard"
)

func c(v float64) expr.Node { return expr.NewConstant(v) }

func eval(t *testing.T, e expr.Node, p expr.Assignment) float64 {
	t.Helper()
	v, err := expr.Evaluate(e, p)
	require.NoError(t, err)

	return v
}

// TestPropertiesOf_Affine covers the affine rules and checks the affine
// reconstruction against direct evaluation.
func TestPropertiesOf_Affine(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")

	cases := []struct {
		name   string
		e      expr.Node
		coeffs map[*expr.Variable]float64
		b      float64
	}{
		{"constant", c(4), map[*expr.Variable]float64{}, 4},
		{"variable", x, map[*expr.Variable]float64{x: 1}, 0},
		{"linear", expr.Add(expr.Mul(c(7), x), expr.Mul(c(10), y), c(5)), map[*expr.Variable]float64{x: 7, y: 10}, 5},
		{"scaled sum", expr.Mul(c(2), expr.Add(x, c(1)), c(3)), map[*expr.Variable]float64{x: 6}, 6},
		{"repeated variable", expr.Add(x, x, expr.Neg(y)), map[*expr.Variable]float64{x: 2, y: -1}, 0},
		{"constant divisor", expr.Div(expr.Add(x, c(2)), c(4)), map[*expr.Variable]float64{x: 0.25}, 0.5},
		{"trig of constant", expr.Add(expr.Sin(c(0)), expr.Cos(c(0)), x), map[*expr.Variable]float64{x: 1}, 1},
		{"constant product", expr.Mul(c(2), c(5)), map[*expr.Variable]float64{}, 10},
	}
	points := []expr.Assignment{{x: 0, y: 0}, {x: 1.5, y: -2}, {x: -3, y: 0.25}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := standard.PropertiesOf(tc.e)
			require.True(t, p.Affine)
			assert.InDeltaMapValues(t, tc.coeffs, p.Coefficients, 1e-12)
			assert.InDelta(t, tc.b, p.Constant, 1e-12)

			for _, pt := range points {
				want := eval(t, tc.e, pt)
				got := p.Constant
				for v, a := range p.Coefficients {
					got += a * pt[v]
				}
				assert.InDelta(t, want, got, 1e-9)
			}
		})
	}
}

// TestPropertiesOf_NonAffine keeps the support with zero coefficients.
func TestPropertiesOf_NonAffine(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")

	cases := map[string]expr.Node{
		"product of variables": expr.Mul(x, y),
		"square":               expr.Mul(x, x),
		"variable divisor":     expr.Div(c(1), y),
		"zero divisor":         expr.Div(x, c(0)),
		"sine":                 expr.Sin(x),
		"cosine in sum":        expr.Add(expr.Cos(x), y),
	}
	for name, e := range cases {
		t.Run(name, func(t *testing.T) {
			p := standard.PropertiesOf(e)
			assert.False(t, p.Affine)
			assert.Zero(t, p.Constant)
			assert.ElementsMatch(t, expr.Variables(e), p.Support())
			for _, a := range p.Coefficients {
				assert.Zero(t, a)
			}
		})
	}
}

// TestPropertiesOf_Idempotent checks repeated calls agree.
func TestPropertiesOf_Idempotent(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	shared := expr.Add(expr.Mul(c(3), x), y)
	e := expr.Add(shared, expr.Mul(c(2), shared), c(1))

	p1 := standard.PropertiesOf(e)
	p2 := standard.PropertiesOf(e)
	assert.Equal(t, p1, p2)
	assert.Equal(t, map[*expr.Variable]float64{x: 9, y: 3}, p1.Coefficients)
	assert.Equal(t, 1.0, p1.Constant)
	assert.Equal(t, []*expr.Variable{x, y}, p1.Support())
}

// TestComponentsOf_AffineScenario: 7x + 10y + 5.
func TestComponentsOf_AffineScenario(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	e := expr.Add(expr.Mul(c(7), x), expr.Mul(c(10), y), c(5))

	comp := standard.ComponentsOf(e)
	assert.True(t, comp.Properties.Affine)
	assert.Same(t, e, comp.Value)
	assert.Equal(t, map[*expr.Variable]float64{x: 7, y: 10}, comp.Properties.Coefficients)
	assert.Equal(t, 5.0, comp.Properties.Constant)

	require.Len(t, comp.Gradient, 2)
	assert.Same(t, x, comp.Gradient[0].Var)
	assert.True(t, expr.IsConstantWithValue(comp.Gradient[0].Expr, 7))
	assert.Same(t, y, comp.Gradient[1].Var)
	assert.True(t, expr.IsConstantWithValue(comp.Gradient[1].Expr, 10))
	assert.Empty(t, comp.Hessian)
}

// TestComponentsOf_AffineDropsZeroCoefficients: x - x + 2y has no x entry.
func TestComponentsOf_AffineDropsZeroCoefficients(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	e := expr.Add(x, expr.Neg(x), expr.Mul(c(2), y))

	comp := standard.ComponentsOf(e)
	require.True(t, comp.Properties.Affine)
	require.Len(t, comp.Gradient, 1)
	assert.Same(t, y, comp.Gradient[0].Var)
}

// TestComponentsOf_NonAffineScenario: 7cos(x) + 10yx + 5.
func TestComponentsOf_NonAffineScenario(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	e := expr.Add(expr.Mul(c(7), expr.Cos(x)), expr.Mul(c(10), y, x), c(5))

	comp := standard.ComponentsOf(e)
	require.False(t, comp.Properties.Affine)
	assert.Same(t, e, comp.Value)

	// Gradient: ∂/∂x = 10y - 7sin(x), ∂/∂y = 10x.
	require.Len(t, comp.Gradient, 2)
	origin := expr.Assignment{x: 0, y: 0}
	pt := expr.Assignment{x: 0.8, y: -1.3}
	for _, g := range comp.Gradient {
		switch g.Var {
		case x:
			assert.InDelta(t, 0.0, eval(t, g.Expr, origin), 1e-12)
			assert.InDelta(t, 10*pt[y]-7*math.Sin(pt[x]), eval(t, g.Expr, pt), 1e-12)
		case y:
			assert.Equal(t, "10*x", g.Expr.String())
			assert.InDelta(t, 0.0, eval(t, g.Expr, origin), 1e-12)
		default:
			t.Fatalf("unexpected gradient variable %s", g.Var.Name())
		}
	}

	// Hessian: (x,x) = -7cos(x), (x,y) = 10, no (y,x), no (y,y).
	require.Len(t, comp.Hessian, 2)
	for _, h := range comp.Hessian {
		switch {
		case h.Row == x && h.Col == x:
			assert.Equal(t, "-7*cos(x)", h.Expr.String())
			assert.InDelta(t, -7.0, eval(t, h.Expr, origin), 1e-12)
		case h.Row == x && h.Col == y:
			assert.True(t, expr.IsConstantWithValue(h.Expr, 10))
		default:
			t.Fatalf("unexpected Hessian entry (%s,%s)", h.Row.Name(), h.Col.Name())
		}
	}
}

// TestComponentsOf_HessianInvariants checks upper-triangle and zero pruning
// on a denser expression and compares entries with differentiating twice.
func TestComponentsOf_HessianInvariants(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	z := expr.NewVariable("z")
	e := expr.Add(
		expr.Mul(expr.Sin(x), expr.Cos(y)),
		expr.Div(z, expr.Add(c(2), expr.Mul(x, x))),
		expr.Mul(c(4), y),
	)

	comp := standard.ComponentsOf(e)
	require.False(t, comp.Properties.Affine)

	order := map[*expr.Variable]int{x: 0, y: 1, z: 2}
	seen := map[[2]*expr.Variable]bool{}
	pt := expr.Assignment{x: 0.4, y: -0.9, z: 1.6}
	for _, h := range comp.Hessian {
		assert.LessOrEqual(t, order[h.Row], order[h.Col])
		assert.False(t, seen[[2]*expr.Variable{h.Col, h.Row}] && h.Row != h.Col, "mirrored entry present")
		seen[[2]*expr.Variable{h.Row, h.Col}] = true
		assert.False(t, expr.IsConstantWithValue(h.Expr, 0))

		want := diff.Derivative(diff.Derivative(e, h.Row), h.Col)
		assert.InDelta(t, eval(t, want, pt), eval(t, h.Expr, pt), 1e-9)
	}
	// ∂²e/∂z² is structurally zero and must be absent; (y,z) too.
	assert.False(t, seen[[2]*expr.Variable{z, z}])
	assert.False(t, seen[[2]*expr.Variable{y, z}])
	assert.True(t, seen[[2]*expr.Variable{x, z}])
	assert.True(t, seen[[2]*expr.Variable{x, y}])
}

// TestComponentsOf_ConstantExpression yields no gradient or Hessian.
func TestComponentsOf_ConstantExpression(t *testing.T) {
	comp := standard.ComponentsOf(expr.Mul(c(3), expr.Sin(c(1))))

	assert.True(t, comp.Properties.IsConstant())
	assert.InDelta(t, 3*math.Sin(1), comp.Properties.Constant, 1e-12)
	assert.Empty(t, comp.Gradient)
	assert.Empty(t, comp.Hessian)
}
