package modelfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlopt/expr"
	"github.com/katalvlaran/lvlopt/problem"
)

// Model is a loaded model file: the declared variables in file order, an
// index over them, the symbolic problem and the built definitions.
type Model struct {
	Vars        []*expr.Variable
	Index       *problem.VarIndex
	Problem     problem.Model
	Definitions map[string]expr.Node

	byName map[string]*expr.Variable
}

// Var returns the variable declared as name.
func (m *Model) Var(name string) (*expr.Variable, bool) {
	v, ok := m.byName[name]

	return v, ok
}

// Load reads and builds the model file at path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modelfile: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse builds a model from YAML bytes.
func Parse(data []byte) (*Model, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads the first YAML document from r and builds it.
// Unknown fields are rejected.
func Decode(r io.Reader) (*Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("modelfile: decode: %w", err)
	}

	return Build(&f)
}

// Build turns a decoded File into a Model.
//
// Implementation:
//  1. declare variables in file order (names unique, bounds consistent);
//  2. order definitions by dependency and build each once;
//  3. build the objective and constraints;
//  4. index the declared variables.
//
// Every built tree is interned in one expr.Pool, so equal subexpressions
// anywhere in the file share a single node.
func Build(f *File) (*Model, error) {
	b := &builder{
		vars: make(map[string]*expr.Variable, len(f.Variables)),
		defs: make(map[string]expr.Node, len(f.Definitions)),
		pool: expr.NewPool(),
	}
	m := &Model{
		Problem: problem.Model{Bounds: make(map[*expr.Variable]problem.Bound, len(f.Variables))},
	}

	// 1) Variables.
	for i, vs := range f.Variables {
		v, bound, err := declare(vs)
		if err != nil {
			return nil, fmt.Errorf("variables[%d]: %w", i, err)
		}
		if _, dup := b.vars[vs.Name]; dup {
			return nil, fmt.Errorf("variables[%d]: %w: %q", i, ErrDuplicateVariable, vs.Name)
		}
		b.vars[vs.Name] = v
		m.Vars = append(m.Vars, v)
		m.Problem.Bounds[v] = bound
	}

	// 2) Definitions in dependency order.
	order, err := definitionOrder(f.Definitions)
	if err != nil {
		return nil, err
	}
	for _, name := range order {
		n, err := b.root("definitions."+name, f.Definitions[name])
		if err != nil {
			return nil, err
		}
		b.defs[name] = n
	}

	// 3) Objective and constraints.
	if f.Objective != nil {
		if m.Problem.Objective, err = b.root("objective", *f.Objective); err != nil {
			return nil, err
		}
	}
	for i, cs := range f.Constraints {
		c, err := b.constraint(fmt.Sprintf("constraints[%d]", i), cs)
		if err != nil {
			return nil, err
		}
		m.Problem.Constraints = append(m.Problem.Constraints, c)
	}

	// 4) Index in declaration order.
	if m.Index, err = problem.NewVarIndex(m.Vars); err != nil {
		return nil, err
	}
	m.Definitions = b.defs
	m.byName = b.vars

	return m, nil
}

func declare(vs VarSpec) (*expr.Variable, problem.Bound, error) {
	if vs.Name == "" {
		return nil, problem.Bound{}, fmt.Errorf("%w: empty name", ErrInvalidVariable)
	}
	var opts []expr.VarOption
	switch vs.Type {
	case "", expr.Continuous.String():
	case expr.Integer.String():
		opts = append(opts, expr.WithInteger())
	default:
		return nil, problem.Bound{}, fmt.Errorf("%w: %s: unknown type %q", ErrInvalidVariable, vs.Name, vs.Type)
	}

	bound := problem.Free()
	if vs.Lower != nil {
		bound.Lower = *vs.Lower
	}
	if vs.Upper != nil {
		bound.Upper = *vs.Upper
	}
	if math.IsNaN(bound.Lower) || math.IsNaN(bound.Upper) || bound.Lower > bound.Upper {
		return nil, problem.Bound{}, fmt.Errorf("%w: %s: bounds [%g, %g]", ErrInvalidVariable, vs.Name, bound.Lower, bound.Upper)
	}

	return expr.NewVariable(vs.Name, opts...), bound, nil
}

// builder resolves names while turning ExprSpecs into nodes.
type builder struct {
	vars map[string]*expr.Variable
	defs map[string]expr.Node // built definitions, canonical nodes
	pool *expr.Pool
}

// root builds and interns one top-level expression.
func (b *builder) root(path string, e ExprSpec) (expr.Node, error) {
	n, err := b.build(path, e)
	if err != nil {
		return nil, err
	}

	return b.pool.Intern(n), nil
}

func (b *builder) constraint(path string, cs ConstraintSpec) (problem.Constraint, error) {
	sense, err := problem.ParseSense(cs.Sense)
	if err != nil {
		return problem.Constraint{}, fmt.Errorf("%s.sense: %w", path, err)
	}
	lhs, err := b.root(path+".lhs", cs.LHS)
	if err != nil {
		return problem.Constraint{}, err
	}
	var rhs expr.Node = expr.NewConstant(0)
	if cs.RHS != nil {
		if rhs, err = b.root(path+".rhs", *cs.RHS); err != nil {
			return problem.Constraint{}, err
		}
	}

	name := cs.Name
	if name == "" {
		name = path
	}
	switch sense {
	case problem.LessEqual:
		return problem.Le(name, lhs, rhs), nil
	case problem.GreaterEqual:
		return problem.Ge(name, lhs, rhs), nil
	default:
		return problem.Eq(name, lhs, rhs), nil
	}
}

func (b *builder) build(path string, e ExprSpec) (expr.Node, error) {
	// 1) Exactly one form.
	forms := 0
	for _, set := range []bool{e.Const != nil, e.Var != "", e.Ref != "", e.Op != ""} {
		if set {
			forms++
		}
	}
	if forms != 1 {
		return nil, fmt.Errorf("%s (line %d): %w: want exactly one of const, var, ref, op", path, e.line, ErrInvalidExpression)
	}
	if e.Op == "" && len(e.Args) > 0 {
		return nil, fmt.Errorf("%s (line %d): %w: args without op", path, e.line, ErrInvalidExpression)
	}

	// 2) Leaves and references.
	switch {
	case e.Const != nil:
		return expr.NewConstant(*e.Const), nil
	case e.Var != "":
		v, ok := b.vars[e.Var]
		if !ok {
			return nil, fmt.Errorf("%s (line %d): %w: %q", path, e.line, ErrUnknownVariable, e.Var)
		}
		return v, nil
	case e.Ref != "":
		n, ok := b.defs[e.Ref]
		if !ok {
			return nil, fmt.Errorf("%s (line %d): %w: %q", path, e.line, ErrUnknownReference, e.Ref)
		}
		return n, nil
	}

	// 3) Operators.
	args := make([]expr.Node, len(e.Args))
	for i, a := range e.Args {
		n, err := b.build(fmt.Sprintf("%s.args[%d]", path, i), a)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	n, err := apply(e.Op, args)
	if err != nil {
		return nil, fmt.Errorf("%s (line %d): %w", path, e.line, err)
	}

	return n, nil
}

// apply maps an operator name to a node: the catalog names plus sub and neg.
func apply(op string, args []expr.Node) (expr.Node, error) {
	switch op {
	case "sub":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: sub takes 2 operands, got %d", expr.ErrArity, len(args))
		}
		return expr.Sub(args[0], args[1]), nil
	case "neg":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: neg takes 1 operand, got %d", expr.ErrArity, len(args))
		}
		return expr.Neg(args[0]), nil
	}

	o, err := expr.LookupName(op)
	if err != nil {
		return nil, err
	}

	return expr.Apply(o.Kind, args...)
}
