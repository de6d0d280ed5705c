package modelfile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the decoded YAML document before expressions are built.
type File struct {
	Variables   []VarSpec           `yaml:"variables"`
	Definitions map[string]ExprSpec `yaml:"definitions"`
	Objective   *ExprSpec           `yaml:"objective"`
	Constraints []ConstraintSpec    `yaml:"constraints"`
}

// VarSpec declares one decision variable. Missing bounds are infinite.
type VarSpec struct {
	Name  string   `yaml:"name"`
	Type  string   `yaml:"type"` // "continuous" (default) or "integer"
	Lower *float64 `yaml:"lower"`
	Upper *float64 `yaml:"upper"`
}

// ConstraintSpec declares lhs {=,≤,≥} rhs. A missing rhs is 0.
type ConstraintSpec struct {
	Name  string    `yaml:"name"`
	Sense string    `yaml:"sense"` // eq, le, ge
	LHS   ExprSpec  `yaml:"lhs"`
	RHS   *ExprSpec `yaml:"rhs"`
}

// ExprSpec is one expression entry. Exactly one of Const, Var, Ref and Op
// must be set; Args belongs to Op.
type ExprSpec struct {
	Const *float64
	Var   string
	Ref   string
	Op    string
	Args  []ExprSpec

	line int
}

// UnmarshalYAML accepts a number (constant), a bare string (variable name)
// or a mapping with the keys const, var, ref, op and args. Unknown keys are
// rejected.
func (e *ExprSpec) UnmarshalYAML(value *yaml.Node) error {
	e.line = value.Line

	switch value.Kind {
	case yaml.ScalarNode:
		switch value.ShortTag() {
		case "!!int", "!!float":
			var v float64
			if err := value.Decode(&v); err != nil {
				return err
			}
			e.Const = &v
		case "!!str":
			e.Var = value.Value
		default:
			return fmt.Errorf("%w: line %d: scalar %q is neither a number nor a name",
				ErrInvalidExpression, value.Line, value.Value)
		}
		return nil

	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i], value.Content[i+1]
			var err error
			switch key.Value {
			case "const":
				var v float64
				err = val.Decode(&v)
				e.Const = &v
			case "var":
				err = val.Decode(&e.Var)
			case "ref":
				err = val.Decode(&e.Ref)
			case "op":
				err = val.Decode(&e.Op)
			case "args":
				err = val.Decode(&e.Args)
			default:
				return fmt.Errorf("%w: line %d: unknown field %q", ErrInvalidExpression, key.Line, key.Value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("%w: line %d: expected a number, a name or a mapping", ErrInvalidExpression, value.Line)
}

// refs appends every definition name referenced by e, depth-first.
func (e *ExprSpec) refs(out []string) []string {
	if e.Ref != "" {
		out = append(out, e.Ref)
	}
	for i := range e.Args {
		out = e.Args[i].refs(out)
	}

	return out
}
