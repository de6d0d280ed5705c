package expr

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// Kind enumerates the closed set of node kinds.
type Kind uint8

const (
	KindConstant Kind = iota // fixed scalar
	KindVariable             // decision variable
	KindAdd                  // variadic sum
	KindMultiply             // variadic product
	KindDivide               // numerator / denominator
	KindSine                 // sin(arg)
	KindCosine               // cos(arg)
)

// String returns the catalog name of the kind ("const" and "var" for leaves).
func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "const"
	case KindVariable:
		return "var"
	}
	if op, ok := Lookup(k); ok {
		return op.Name
	}

	return "unknown"
}

// IsFunction reports whether k is an operator kind.
func (k Kind) IsFunction() bool {
	return k >= KindAdd && k <= KindCosine
}

// Node is an immutable scalar expression.
// The interface is closed: only *Constant, *Variable and *Function implement it.
type Node interface {
	// Kind reports the node kind.
	Kind() Kind

	// Children returns a copy of the ordered operand list (nil for leaves).
	Children() []Node

	// Hash returns the structural hash. Equal nodes have equal hashes.
	Hash() uint64

	// String renders the expression in infix form.
	String() string

	node()
}

// ---------- Constant ----------

// Constant is a fixed scalar value.
type Constant struct {
	value float64
}

// NewConstant returns the constant node v.
func NewConstant(v float64) *Constant {
	return &Constant{value: v}
}

// Value returns the scalar held by c.
func (c *Constant) Value() float64 { return c.value }

func (c *Constant) Kind() Kind       { return KindConstant }
func (c *Constant) Children() []Node { return nil }
func (c *Constant) node()            {}

// Hash hashes the value bits; -0 and +0 hash alike since they compare equal.
func (c *Constant) Hash() uint64 {
	v := c.value
	if v == 0 {
		v = 0
	}
	var buf [9]byte
	buf[0] = byte(KindConstant)
	binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(v))

	return xxhash.Sum64(buf[:])
}

// ---------- Variable ----------

// VarType classifies a decision variable.
type VarType uint8

const (
	Continuous VarType = iota // real-valued
	Integer                   // integer-restricted
)

// String returns "continuous" or "integer".
func (t VarType) String() string {
	if t == Integer {
		return "integer"
	}

	return "continuous"
}

// varSerial hands out variable IDs in creation order.
var varSerial atomic.Uint64

// Variable is a decision-variable identity. Equality is pointer identity.
type Variable struct {
	id   uint64
	name string
	typ  VarType
}

// VarOption configures a Variable at creation.
type VarOption func(*Variable)

// WithInteger marks the variable as integer-restricted.
func WithInteger() VarOption {
	return func(v *Variable) { v.typ = Integer }
}

// NewVariable creates a fresh variable identity named name.
// Names are labels only; two variables with the same name are still distinct.
func NewVariable(name string, opts ...VarOption) *Variable {
	v := &Variable{id: varSerial.Add(1), name: name, typ: Continuous}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// ID returns the creation serial; it defines the canonical variable order.
func (v *Variable) ID() uint64 { return v.id }

// Name returns the label given at creation.
func (v *Variable) Name() string { return v.name }

// Type returns the variable type.
func (v *Variable) Type() VarType { return v.typ }

func (v *Variable) Kind() Kind       { return KindVariable }
func (v *Variable) Children() []Node { return nil }
func (v *Variable) String() string   { return v.name }
func (v *Variable) node()            {}

// Hash hashes the identity serial.
func (v *Variable) Hash() uint64 {
	var buf [9]byte
	buf[0] = byte(KindVariable)
	binary.LittleEndian.PutUint64(buf[1:], v.id)

	return xxhash.Sum64(buf[:])
}

// ---------- Function ----------

// Function applies a catalog operator to ordered operands.
type Function struct {
	kind Kind
	args []Node
	hash uint64 // computed once; args never change
}

// newFunction builds the node and caches its structural hash.
// Callers guarantee kind is a function kind and args are non-nil.
func newFunction(kind Kind, args []Node) *Function {
	d := xxhash.New()
	var buf [8]byte
	buf[0] = byte(kind)
	_, _ = d.Write(buf[:1])
	for _, a := range args {
		binary.LittleEndian.PutUint64(buf[:], a.Hash())
		_, _ = d.Write(buf[:])
	}

	return &Function{kind: kind, args: args, hash: d.Sum64()}
}

func (f *Function) Kind() Kind   { return f.kind }
func (f *Function) Hash() uint64 { return f.hash }
func (f *Function) node()        {}

// Children returns a copy of the operand list.
func (f *Function) Children() []Node {
	out := make([]Node, len(f.args))
	copy(out, f.args)

	return out
}

// Arg returns operand i without copying the operand list.
func (f *Function) Arg(i int) Node { return f.args[i] }

// NumArgs returns the operand count.
func (f *Function) NumArgs() int { return len(f.args) }
