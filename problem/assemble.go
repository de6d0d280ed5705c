package problem

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvlopt/expr"
	"github.com/katalvlaran/lvlopt/matrix"
	"github.com/katalvlaran/lvlopt/standard"
)

// Component is one standardized part of a Problem, objective or constraint.
type Component struct {
	Name     string
	Sense    Sense // constraints only
	Standard standard.Components
}

// gradTerm is a gradient entry resolved to its column.
type gradTerm struct {
	col  int
	expr expr.Node
}

// hessTerm is a Hessian entry resolved to index positions with row ≤ col.
type hessTerm struct {
	row, col int
	expr     expr.Node
}

// compiled is a Component with every variable resolved against the index.
type compiled struct {
	Component
	grad []gradTerm
	hess []hessTerm
}

// Problem is an assembled model ready for repeated evaluation.
//
// L, U and Integer are fixed at assembly. The remaining exported fields are
// outputs of the last Evaluate (and CombineH for HComb); they are reused
// between calls, so callers that keep results across evaluations copy them.
// A Problem is not safe for concurrent Evaluate calls.
type Problem struct {
	index       *VarIndex
	objective   compiled
	constraints []compiled

	L       []float64 // variable lower bounds, -Inf when free
	U       []float64 // variable upper bounds, +Inf when free
	Integer []bool    // integrality flags from expr.VarType

	Phi   float64       // objective value
	GPhi  []float64     // dense objective gradient, length n
	HPhi  *matrix.Coo   // objective Hessian, n×n upper triangle
	F     []float64     // constraint values, length m
	J     *matrix.Coo   // constraint Jacobian, m×n
	H     []*matrix.Coo // per-constraint Hessians, n×n upper triangle
	HComb *matrix.Coo   // HPhi + Σ ν_i·H_i from the last CombineH, merged

	evaluated bool
}

// Assemble standardizes m against index and compiles a Problem.
//
// Implementation:
//  1. validate the index, the constraints (expression, sense) and the bounds;
//  2. standardize the objective and every constraint concurrently
//     (bounded by WithWorkers), resolving each appearing variable;
//  3. allocate the evaluation containers.
//
// Any variable of m missing from index fails with ErrUnknownVariable
// wrapped with the component name; on error no Problem is returned.
// When several components fail, the error of the first in model order
// (objective, then constraints) is returned.
// Cancelling ctx aborts pending standardization tasks.
func Assemble(ctx context.Context, m Model, index *VarIndex, opts ...Option) (*Problem, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()

	// 1) Validate inputs.
	if index == nil {
		return nil, fmt.Errorf("problem: nil index: %w", ErrNilExpression)
	}
	for i, c := range m.Constraints {
		if c.Expr == nil {
			return nil, fmt.Errorf("%s: %w", constraintLabel(i, c.Name), ErrNilExpression)
		}
		if !c.Sense.valid() {
			return nil, fmt.Errorf("%s: %w: %s", constraintLabel(i, c.Name), ErrUnknownSense, c.Sense)
		}
	}
	p := &Problem{
		index:       index,
		constraints: make([]compiled, len(m.Constraints)),
	}
	if err := p.resolveBounds(m.Bounds); err != nil {
		return nil, err
	}

	// 2) Standardize every component; slot 0 is the objective.
	objective := m.Objective
	if objective == nil {
		objective = expr.NewConstant(0)
	}
	// Each task reports into its own slot and never cancels its siblings,
	// so the returned error is the first failing slot, independent of
	// scheduling.
	errs := make([]error, len(m.Constraints)+1)
	var g errgroup.Group
	g.SetLimit(o.workers)
	g.Go(func() error {
		p.objective, errs[0] = compile(ctx, "objective", objective, index, o.logger)
		return nil
	})
	for i, c := range m.Constraints {
		i, c := i, c
		g.Go(func() error {
			cc, err := compile(ctx, constraintLabel(i, c.Name), c.Expr, index, o.logger)
			if err != nil {
				errs[i+1] = err
				return nil
			}
			cc.Sense = c.Sense
			p.constraints[i] = cc
			return nil
		})
	}
	_ = g.Wait() // tasks report through errs
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	// 3) Containers.
	if err := p.allocate(o); err != nil {
		return nil, err
	}
	o.logger.Debug("problem assembled",
		slog.Int("vars", index.Len()),
		slog.Int("constraints", len(p.constraints)),
		slog.Bool("affine", p.IsAffine()),
		slog.Duration("elapsed", time.Since(start)),
	)

	return p, nil
}

// compile standardizes e and resolves its support against index.
func compile(ctx context.Context, name string, e expr.Node, index *VarIndex, log *slog.Logger) (compiled, error) {
	if err := ctx.Err(); err != nil {
		return compiled{}, err
	}
	comp := standard.ComponentsOf(e)

	// Resolve the whole support first: a variable with a zero coefficient
	// still has to be known to the index.
	for _, v := range comp.Properties.Support() {
		if _, err := index.Index(v); err != nil {
			return compiled{}, fmt.Errorf("%s: %w", name, err)
		}
	}

	out := compiled{
		Component: Component{Name: name, Standard: comp},
		grad:      make([]gradTerm, len(comp.Gradient)),
		hess:      make([]hessTerm, len(comp.Hessian)),
	}
	for k, ge := range comp.Gradient {
		col, _ := index.Index(ge.Var) // resolved above
		out.grad[k] = gradTerm{col: col, expr: ge.Expr}
	}
	for k, he := range comp.Hessian {
		r, _ := index.Index(he.Row)
		c, _ := index.Index(he.Col)
		if r > c {
			r, c = c, r // keep the upper triangle in index order
		}
		out.hess[k] = hessTerm{row: r, col: c, expr: he.Expr}
	}

	log.Debug("component standardized",
		slog.String("component", name),
		slog.Bool("affine", comp.Properties.Affine),
		slog.Int("gradient", len(out.grad)),
		slog.Int("hessian", len(out.hess)),
	)

	return out, nil
}

// resolveBounds fills L, U and Integer from the index and the bound map.
func (p *Problem) resolveBounds(bounds map[*expr.Variable]Bound) error {
	n := p.index.Len()
	p.L = make([]float64, n)
	p.U = make([]float64, n)
	p.Integer = make([]bool, n)
	for i, v := range p.index.vars {
		p.L[i] = math.Inf(-1)
		p.U[i] = math.Inf(1)
		p.Integer[i] = v.Type() == expr.Integer
	}
	keys := make([]*expr.Variable, 0, len(bounds))
	for v := range bounds {
		if v == nil {
			return fmt.Errorf("bounds: %w", ErrNilExpression)
		}
		keys = append(keys, v)
	}
	expr.SortVariables(keys) // deterministic error reporting
	for _, v := range keys {
		b := bounds[v]
		i, err := p.index.Index(v)
		if err != nil {
			return fmt.Errorf("bounds: %w", err)
		}
		if err := b.validate(); err != nil {
			return fmt.Errorf("bounds of %s: %w", v.Name(), err)
		}
		p.L[i], p.U[i] = b.Lower, b.Upper
	}

	return nil
}

// allocate creates the evaluation containers. Evaluation may produce ±Inf or
// NaN (IEEE semantics), so the sparse stores do not validate values.
// HComb is cloned from HPhi, so HPhi carries the drop policy of CombineH.
func (p *Problem) allocate(o options) error {
	n, m := p.index.Len(), len(p.constraints)
	hopts := []matrix.Option{matrix.WithNoValidateNaNInf()}
	if o.dropZeros {
		hopts = append(hopts, matrix.WithDropZeros(), matrix.WithEpsilon(o.dropTol))
	}
	var err error
	if p.HPhi, err = matrix.NewCoo(n, n, hopts...); err != nil {
		return err
	}
	if p.J, err = matrix.NewCoo(m, n, matrix.WithNoValidateNaNInf()); err != nil {
		return err
	}
	p.H = make([]*matrix.Coo, m)
	for i := range p.H {
		if p.H[i], err = matrix.NewCoo(n, n, matrix.WithNoValidateNaNInf()); err != nil {
			return err
		}
	}
	p.GPhi = make([]float64, n)
	p.F = make([]float64, m)

	return nil
}

func constraintLabel(i int, name string) string {
	if name == "" {
		return fmt.Sprintf("constraint #%d", i)
	}

	return fmt.Sprintf("constraint %q", name)
}

// Index returns the variable ordering of the problem.
func (p *Problem) Index() *VarIndex { return p.index }

// NumVars returns n, the number of indexed variables.
func (p *Problem) NumVars() int { return p.index.Len() }

// NumConstraints returns m.
func (p *Problem) NumConstraints() int { return len(p.constraints) }

// Objective returns the standardized objective.
func (p *Problem) Objective() Component { return p.objective.Component }

// Constraints returns the standardized constraints in model order.
func (p *Problem) Constraints() []Component {
	out := make([]Component, len(p.constraints))
	for i, c := range p.constraints {
		out[i] = c.Component
	}

	return out
}

// IsAffine reports whether the objective and every constraint are affine.
func (p *Problem) IsAffine() bool {
	if !p.objective.Standard.Properties.Affine {
		return false
	}
	for _, c := range p.constraints {
		if !c.Standard.Properties.Affine {
			return false
		}
	}

	return true
}
