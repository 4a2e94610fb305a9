package moneycalc

import (
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token
//go:generate go mod tidy

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenNum is a decimal literal.
	tokenNum
	// tokenOp is one of + - * / **.
	tokenOp
	// tokenPercent is the percent sign following a number.
	tokenPercent
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
)

// Operators contains the single-rune operators. The power operator is spelled
// "**"; "^" is accepted as an alternate spelling of it and ":" as an alternate
// spelling of "/".
const Operators = "+-*/"

// srcRune is a rune of normalized input along with the column it came from.
type srcRune struct {
	r   rune
	pos int
}

type lexer struct {
	src []srcRune
	i   int
}

// lex prepares src for scanning. Whitespace is removed entirely, so digits
// separated only by spaces form a single number. Alternate operator spellings
// are rewritten to their canonical forms, keeping the original columns.
func lex(src string) *lexer {
	l := lexer{src: make([]srcRune, 0, len(src))}
	col := 0
	for _, r := range src {
		col++
		switch {
		case unicode.IsSpace(r):
			// dropped
		case r == '^':
			l.src = append(l.src, srcRune{'*', col}, srcRune{'*', col})
		case r == ':':
			l.src = append(l.src, srcRune{'/', col})
		default:
			l.src = append(l.src, srcRune{r, col})
		}
	}
	return &l
}

// tokenize scans all of src. It never fails: runes that can't begin any token
// are discarded, although they still separate the tokens around them.
func tokenize(src string) []lexToken {
	l := lex(src)
	var toks []lexToken
	for {
		tok, ok := l.next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// at returns the rune at index i of the normalized input, or -1 past the end.
func (l *lexer) at(i int) rune {
	if i >= len(l.src) {
		return -1
	}
	return l.src[i].r
}

// next scans the next token. The second result is false once the input is
// exhausted.
func (l *lexer) next() (lexToken, bool) {
	for l.i < len(l.src) {
		c := l.src[l.i]
		tok := lexToken{pos: c.pos}
		switch {
		case unicode.IsDigit(c.r), c.r == '.' && unicode.IsDigit(l.at(l.i+1)):
			tok.text = l.scanNum()
			tok.kind = tokenNum
			return tok, true
		case c.r == '*':
			if l.at(l.i+1) == '*' {
				l.i += 2
				tok.text = "**"
				tok.kind = tokenOp
				return tok, true
			}
			l.i++
			tok.text = "*"
			tok.kind = tokenOp
			return tok, true
		case strings.ContainsRune(Operators, c.r):
			l.i++
			tok.text = string(c.r)
			tok.kind = tokenOp
			return tok, true
		case c.r == '%':
			l.i++
			tok.text = "%"
			tok.kind = tokenPercent
			return tok, true
		case c.r == '(':
			l.i++
			tok.text = "("
			tok.kind = tokenOpen
			return tok, true
		case c.r == ')':
			l.i++
			tok.text = ")"
			tok.kind = tokenClose
			return tok, true
		default:
			l.i++
		}
	}
	return lexToken{}, false
}

// scanNum scans digits[.digits] or .digits. The caller has checked that the
// current rune starts a number.
func (l *lexer) scanNum() string {
	var b strings.Builder
	digits := func() {
		for unicode.IsDigit(l.at(l.i)) {
			b.WriteRune(l.src[l.i].r)
			l.i++
		}
	}
	digits()
	if l.at(l.i) == '.' {
		b.WriteByte('.')
		l.i++
		digits()
	}
	return b.String()
}
