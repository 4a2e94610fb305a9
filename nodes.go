package moneycalc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// text is the numeral for nodeNum and the operator otherwise.
	text string
	// val is the parsed value of a nodeNum.
	val decimal.Decimal
	// pos is the column of the token that created the node.
	pos int

	left  *node
	right *node
}

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node
//go:generate go mod tidy

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum     // push val
	nodePercent // evaluate left, scale by 1/100 of the base if any

	nodeNeg // evaluate left, then negate
	nodeNop // evaluate left
	nodeAdd // evaluate left, add right with left as base
	nodeSub // evaluate left, sub right with left as base
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by integer right
)

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, !square)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, !square)
		}
		b.WriteByte('$')
	case nodeNum:
		b.WriteString(n.text)
	case nodePercent:
		b.WriteString(n.left.text)
		b.WriteByte('%')
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeNop:
		b.WriteByte('+')
		n.left.fmt(b, !square)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		n.left.fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(n.text)
		b.WriteByte(' ')
		n.right.fmt(b, !square)
	default:
		panic("moneycalc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
