package radicals

import (
	"strconv"
	"strings"
)

// Node is a node in the abstract syntax tree of an expression. Kind decides
// which of the other fields are meaningful.
type Node struct {
	Kind NodeKind

	// Num is the value of a NodeNum.
	Num float64
	// Name is the variable name of a NodeVar or the function name of a
	// NodeCall.
	Name string

	// Left is the left operand of a binary operator.
	Left *Node
	// Right is the right operand of a binary operator, the operand of
	// NodeNeg, or the argument of NodeCall.
	Right *Node
}

// NodeKind is the type of an AST node.
type NodeKind int8

const (
	NodeNone NodeKind = iota

	NodeNum // literal Num
	NodeVar // lookup(Name)

	NodeCall // Name(Right)

	NodeNeg // -Right
	NodeAdd // Left + Right
	NodeSub // Left - Right
	NodeMul // Left * Right
	NodeDiv // Left / Right
	NodePow // Left ^ Right
)

func (k NodeKind) String() string {
	switch k {
	case NodeNone:
		return "None"
	case NodeNum:
		return "Num"
	case NodeVar:
		return "Var"
	case NodeCall:
		return "Call"
	case NodeNeg:
		return "Neg"
	case NodeAdd:
		return "Add"
	case NodeSub:
		return "Sub"
	case NodeMul:
		return "Mul"
	case NodeDiv:
		return "Div"
	case NodePow:
		return "Pow"
	default:
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes the node with every subexpression bracketed, alternating round
// and square brackets by depth.
func (n *Node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.Kind {
	case NodeNum:
		b.WriteString(formatNum(n.Num))
	case NodeVar:
		b.WriteString(n.Name)
	case NodeCall:
		b.WriteString(n.Name)
		n.Right.fmt(b, !square)
	case NodeNeg:
		b.WriteByte('-')
		n.Right.fmt(b, !square)
	case NodeAdd, NodeSub, NodeMul, NodeDiv, NodePow:
		n.Left.fmt(b, !square)
		b.WriteString(binsyms[n.Kind])
		n.Right.fmt(b, !square)
	default:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.Left != nil {
			n.Left.fmt(b, !square)
		}
		b.WriteByte('#')
		if n.Right != nil {
			n.Right.fmt(b, !square)
		}
		b.WriteByte('$')
	}
}

var binsyms = map[NodeKind]string{
	NodeAdd: " + ",
	NodeSub: " - ",
	NodeMul: " * ",
	NodeDiv: " / ",
	NodePow: " ^ ",
}

// vars appends the names of variables n refers to, in tree order, possibly
// with duplicates.
func (n *Node) vars(names []string) []string {
	if n == nil {
		return names
	}
	if n.Kind == NodeVar {
		return append(names, n.Name)
	}
	names = n.Left.vars(names)
	return n.Right.vars(names)
}
