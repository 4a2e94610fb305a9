package moneycalc

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Expr = Term { ('+' | '-') Term }
// Term = Power { ('*' | '/') Power }
// Power = Factor [ '**' Power ]
// Factor = ('+' | '-') Factor | '(' Expr ')' | num [ '%' ]

// Expr is a parsed expression that can be evaluated by a Calculator. An Expr
// is immutable and safe to evaluate concurrently.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

type parser struct {
	toks []lexToken
	i    int
	// eof is the column one past the end of the input.
	eof int
}

// Parse parses an expression so it can be evaluated with a calculator.
func Parse(src string) (*Expr, error) {
	p := parser{
		toks: tokenize(src),
		eof:  utf8.RuneCountInString(src) + 1,
	}
	if len(p.toks) == 0 {
		return nil, &SyntaxError{Col: p.eof, Kind: EmptyInput}
	}
	n, err := p.parseexpr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, p.unexpected(tok)
	}
	return &Expr{n: n}, nil
}

// peek returns the current token without consuming it. The second result is
// false at the end of input.
func (p *parser) peek() (lexToken, bool) {
	if p.i >= len(p.toks) {
		return lexToken{pos: p.eof}, false
	}
	return p.toks[p.i], true
}

// accept consumes the current token if it has the given kind and, for
// operators, one of the given texts.
func (p *parser) accept(kind tokenKind, texts ...string) (lexToken, bool) {
	tok, ok := p.peek()
	if !ok || tok.kind != kind {
		return tok, false
	}
	if len(texts) > 0 && !oneof(tok.text, texts) {
		return tok, false
	}
	p.i++
	return tok, true
}

func oneof(s string, v []string) bool {
	for _, x := range v {
		if s == x {
			return true
		}
	}
	return false
}

// unexpected creates an error for tok appearing where it can't.
func (p *parser) unexpected(tok lexToken) error {
	return &SyntaxError{Col: tok.pos, Kind: UnexpectedToken, Token: tok.text}
}

// parseexpr parses a sum or difference of terms. All binary levels are
// left-associative except exponentiation.
func (p *parser) parseexpr() (*node, error) {
	n, err := p.parseterm()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.accept(tokenOp, "+", "-")
		if !ok {
			return n, nil
		}
		rhs, err := p.parseterm()
		if err != nil {
			return nil, err
		}
		n = &node{kind: binop(tok.text), text: tok.text, pos: tok.pos, left: n, right: rhs}
	}
}

// parseterm parses a product or quotient of powers.
func (p *parser) parseterm() (*node, error) {
	n, err := p.parsepow()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.accept(tokenOp, "*", "/")
		if !ok {
			return n, nil
		}
		rhs, err := p.parsepow()
		if err != nil {
			return nil, err
		}
		n = &node{kind: binop(tok.text), text: tok.text, pos: tok.pos, left: n, right: rhs}
	}
}

// parsepow parses a right-associative exponentiation.
func (p *parser) parsepow() (*node, error) {
	n, err := p.parsefactor()
	if err != nil {
		return nil, err
	}
	tok, ok := p.accept(tokenOp, "**")
	if !ok {
		return n, nil
	}
	rhs, err := p.parsepow()
	if err != nil {
		return nil, err
	}
	return &node{kind: nodePow, text: tok.text, pos: tok.pos, left: n, right: rhs}, nil
}

// parsefactor parses a unary operation, a parenthesized expression, or a
// number with an optional percent sign.
func (p *parser) parsefactor() (*node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.unexpected(tok)
	}
	switch tok.kind {
	case tokenOp:
		op := unop(tok.text)
		if op == nodeNone {
			return nil, p.unexpected(tok)
		}
		p.i++
		// -2**2 is (-2)**2: the operand is a factor, not a power.
		rhs, err := p.parsefactor()
		if err != nil {
			return nil, err
		}
		return &node{kind: op, text: tok.text, pos: tok.pos, left: rhs}, nil
	case tokenOpen:
		p.i++
		n, err := p.parseexpr()
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(tokenClose); !ok {
			end, _ := p.peek()
			return nil, &SyntaxError{Col: end.pos, Kind: MissingCloseParen, Token: end.text}
		}
		return n, nil
	case tokenNum:
		p.i++
		v, err := decimal.NewFromString(numtext(tok.text))
		if err != nil {
			return nil, &InvalidNumberError{Col: tok.pos, Text: tok.text, Err: err}
		}
		n := &node{kind: nodeNum, text: tok.text, val: v, pos: tok.pos}
		if pct, ok := p.accept(tokenPercent); ok {
			// The percent sign binds to its number before any operator.
			n = &node{kind: nodePercent, text: pct.text, pos: pct.pos, left: n}
		}
		return n, nil
	default:
		return nil, p.unexpected(tok)
	}
}

// numtext gives a numeral a digit on both sides of its decimal point, so "5."
// and ".5" parse the same as "5" and "0.5".
func numtext(s string) string {
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	return s
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.n.String()
}

// binop gets the node kind for a binary operator. If there is no such binary
// operator, the result is nodeNone.
func binop(text string) nodeKind {
	switch text {
	case "+":
		return nodeAdd
	case "-":
		return nodeSub
	case "*":
		return nodeMul
	case "/":
		return nodeDiv
	case "**":
		return nodePow
	default:
		return nodeNone
	}
}

// unop gets the node kind for a unary operator. If there is no such unary
// operator, the result is nodeNone.
func unop(text string) nodeKind {
	switch text {
	case "+":
		return nodeNop
	case "-":
		return nodeNeg
	default:
		return nodeNone
	}
}
