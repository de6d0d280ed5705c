package expr

import (
	"strconv"
	"strings"
)

// String formats the value with the shortest exact representation.
func (c *Constant) String() string {
	return strconv.FormatFloat(c.value, 'g', -1, 64)
}

// String renders f in infix form, parenthesizing operands that bind looser
// than the operator ("x*(y + 1)", "x/(2*y)").
func (f *Function) String() string {
	var sb strings.Builder
	f.write(&sb)

	return sb.String()
}

func (f *Function) write(sb *strings.Builder) {
	switch f.kind {
	case KindAdd:
		for i, a := range f.args {
			if i > 0 {
				sb.WriteString(" + ")
			}
			writeOperand(sb, a, precSum)
		}
	case KindMultiply:
		for i, a := range f.args {
			if i > 0 {
				sb.WriteByte('*')
			}
			writeOperand(sb, a, precProduct)
		}
	case KindDivide:
		writeOperand(sb, f.args[0], precProduct)
		sb.WriteByte('/')
		writeOperand(sb, f.args[1], precDivisor)
	default:
		sb.WriteString(catalog[f.kind].Name)
		sb.WriteByte('(')
		for i, a := range f.args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte(')')
	}
}

// Binding strength of operand positions: sums bind loosest, products next,
// and a divisor needs parentheses around anything that is not an atom.
const (
	precSum     = 1
	precProduct = 2
	precDivisor = 3
	precAtom    = 4
)

// writeOperand wraps a in parentheses when it binds looser than need.
func writeOperand(sb *strings.Builder, a Node, need int) {
	if precedence(a) < need {
		sb.WriteByte('(')
		sb.WriteString(a.String())
		sb.WriteByte(')')
		return
	}
	sb.WriteString(a.String())
}

func precedence(n Node) int {
	switch n.Kind() {
	case KindAdd:
		return precSum
	case KindMultiply, KindDivide:
		return precProduct
	}

	return precAtom
}
