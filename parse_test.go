package moneycalc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alecthomas/repr"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. Positions are not compared. If any node is nodeNone,
// it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if n.text != m.text || !n.val.Equal(m.val) {
			return n, m
		}
	case nodePercent, nodeNeg, nodeNop:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		if n.text != m.text {
			return n, m
		}
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

// depth returns the height of the tree rooted at n.
func (n *node) depth() int {
	if n == nil {
		return 0
	}
	l, r := n.left.depth(), n.right.depth()
	if r > l {
		l = r
	}
	return l + 1
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(1)", "1"},
		{"multi", "((((1))))", "1"},

		{"plus", "+1", "(+(1))"},
		{"neg", "-1", "(-(1))"},
		{"negneg", "--1", "-(-1)"},
		{"add", "1+2", "(1)+(2)"},
		{"sub", "1-2", "(1)-(2)"},
		{"mul", "1*2", "(1)*(2)"},
		{"div", "1/2", "(1)/(2)"},
		{"pow", "1**2", "(1)**(2)"},
		{"caret", "1^2", "1**2"},
		{"colon", "100:4", "100/4"},
		{"spaces", "1 000 + 5", "1000+5"},
		{"dropped", "100 руб + 5 коп", "100+5"},

		{"add4", "1+2+3+4", "((1+2)+3)+4"},
		{"sub4", "1-2-3-4", "((1-2)-3)-4"},
		{"mul4", "1*2*3*4", "((1*2)*3)*4"},
		{"div4", "1/2/3/4", "((1/2)/3)/4"},
		{"pow4", "1**2**3**4", "1**(2**(3**4))"},

		{"negpow", "-2**2", "(-2)**2"},
		{"powneg", "2**-1", "2**(-1)"},
		{"desc", "1**2*3+4", "((1**2)*3)+4"},
		{"asc", "1+2*3**4", "1+(2*(3**4))"},
		{"mixed", "1+2*3-4/5", "(1+(2*3))-(4/5)"},

		{"percent", "100+50%", "100+(50%)"},
		{"percent-mul", "100+10%*2", "100+((10%)*2)"},
		{"percent-neg", "-10%", "-(10%)"},
		{"percent-pow", "10%**2", "(10%)**2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := Parse(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a.n, d, c.b, b.n, e)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	e, err := Parse("100 - 50%")
	if err != nil {
		t.Fatal(err)
	}
	n := e.n
	if n.kind != nodeSub || n.text != "-" || n.pos != 5 {
		t.Fatalf("wrong root: %s", repr.String(n))
	}
	if n.left.kind != nodeNum || n.left.text != "100" || n.left.pos != 1 {
		t.Errorf("wrong lhs: %s", repr.String(n.left))
	}
	r := n.right
	if r.kind != nodePercent || r.pos != 9 {
		t.Fatalf("wrong rhs: %s", repr.String(r))
	}
	if r.left.kind != nodeNum || r.left.text != "50" || r.left.pos != 7 || r.right != nil {
		t.Errorf("wrong percent operand: %s", repr.String(r))
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{"1", "(1)"},
		{"-1", "(-[1])"},
		{"1+2*3", "([1] + [(2) * (3)])"},
		{"100-50%", "([100] - [50%])"},
		{"2^3", "([2] ** [3])"},
	}
	for _, c := range cases {
		e, err := Parse(c.src)
		if err != nil {
			t.Errorf("failed to parse %q: %v", c.src, err)
			continue
		}
		if got := e.String(); got != c.want {
			t.Errorf("%q formats as %q, want %q", c.src, got, c.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		kind  SyntaxErrorKind
		token string
		col   int
	}{
		{"unclosed", "(1+2", MissingCloseParen, "", 5},
		{"unclosed-nested", "((1)", MissingCloseParen, "", 5},
		{"unclosed-open", "(1(", MissingCloseParen, "(", 3},
		{"empty-parens", "()", UnexpectedToken, ")", 2},
		{"trailing-op", "1+", UnexpectedToken, "", 3},
		{"trailing-op-space", "1 +", UnexpectedToken, "", 4},
		{"split-number", "1a2", UnexpectedToken, "2", 3},
		{"adjacent-parens", "(1)(2)", UnexpectedToken, "(", 4},
		{"double-percent", "50%%", UnexpectedToken, "%", 4},
		{"paren-percent", "(50)%", UnexpectedToken, "%", 5},
		{"bare-percent", "%", UnexpectedToken, "%", 1},
		{"leading-mul", "*2", UnexpectedToken, "*", 1},
		{"triple-star", "2***3", UnexpectedToken, "*", 4},
		{"close", "1)", UnexpectedToken, ")", 2},
		{"letters", "abc", EmptyInput, "", 4},
		{"nothing", "", EmptyInput, "", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Parse(c.src)
			if err == nil {
				t.Fatalf("%q parsed as %v", c.src, e)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("%#v is not *SyntaxError", err)
			}
			if se.Kind != c.kind || se.Token != c.token || se.Col != c.col {
				t.Errorf("wrong error for %q: want %v %q at %d, got %s", c.src, c.kind, c.token, c.col, repr.String(se))
			}
			if se.Pos() != se.Col {
				t.Errorf("Pos %d differs from Col %d", se.Pos(), se.Col)
			}
		})
	}
}

func TestParseInvalidNumber(t *testing.T) {
	_, err := Parse("1 + ١٢")
	var ne *InvalidNumberError
	if !errors.As(err, &ne) {
		t.Fatalf("%#v is not *InvalidNumberError", err)
	}
	if ne.Text != "١٢" || ne.Col != 5 {
		t.Errorf("wrong error: %s", repr.String(ne))
	}
	if errors.Unwrap(err) == nil {
		t.Error("InvalidNumberError doesn't unwrap to the decimal error")
	}
}

func TestParseDepth(t *testing.T) {
	// One node per token at most.
	src := "((((((((((1+2)*3)-4)/5)**2)+6%)-7)*8)+9)-10)"
	e, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if d, n := e.n.depth(), len(tokenize(src)); d > n {
		t.Errorf("tree depth %d exceeds token count %d", d, n)
	}
}
