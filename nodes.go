package syntacalc

import "strings"

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// text is the literal text of a nodeNum.
	text string

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // push num

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node
//go:generate go mod tidy

// approved reports whether k is a literal or one of the whitelisted operators.
func (k nodeKind) approved() bool {
	switch k {
	case nodeNum, nodeNeg, nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		return true
	default:
		return false
	}
}

// whitelist checks that every node in the tree rooted at n is approved and
// has the children its kind requires.
func (n *node) whitelist() error {
	if n == nil {
		return &UnsupportedError{Node: "<nil>"}
	}
	if !n.kind.approved() {
		return &UnsupportedError{Node: n.kind.String()}
	}
	switch n.kind {
	case nodeNum:
		if n.left != nil || n.right != nil {
			return &UnsupportedError{Node: "Num with operands"}
		}
	case nodeNeg:
		if n.right != nil {
			return &UnsupportedError{Node: "Neg with two operands"}
		}
		return n.left.whitelist()
	default:
		if err := n.left.whitelist(); err != nil {
			return err
		}
		return n.right.whitelist()
	}
	return nil
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes n fully parenthesized. The result parses back to the same tree.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNum:
		b.WriteString(n.text)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b)
	case nodeAdd:
		n.left.fmt(b)
		b.WriteString(" + ")
		n.right.fmt(b)
	case nodeSub:
		n.left.fmt(b)
		b.WriteString(" - ")
		n.right.fmt(b)
	case nodeMul:
		n.left.fmt(b)
		b.WriteString(" * ")
		n.right.fmt(b)
	case nodeDiv:
		n.left.fmt(b)
		b.WriteString(" / ")
		n.right.fmt(b)
	case nodePow:
		n.left.fmt(b)
		b.WriteString(" ^ ")
		n.right.fmt(b)
	default:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		b.WriteString(n.kind.String())
		b.WriteByte('$')
	}
}
