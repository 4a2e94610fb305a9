package moneycalc

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"
)

var (
	one     = decimal.New(1, 0)
	hundred = decimal.New(100, 0)
)

// guardDigits is the number of extra significant digits carried through the
// steps of an exponentiation.
const guardDigits = 10

// Eval evaluates the expression with c's precision. Every operation is
// rounded half-up to the precision as soon as it is computed, so rounding
// compounds from left to right the way it does on a calculator with a fixed
// display. Numerals themselves are used exactly as written until the final
// rounding of the result.
func (e *Expr) Eval(c *Calculator) (decimal.Decimal, error) {
	r, err := c.eval(e.n, nil)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return c.quantize(r, nil)
}

// eval computes the value of a node. base is the value which a percentage
// refers to, or nil if percentages stand alone.
func (c *Calculator) eval(n *node, base *decimal.Decimal) (decimal.Decimal, error) {
	var r decimal.Decimal
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodePercent:
		v, err := c.eval(n.left, nil)
		if err != nil {
			return decimal.Decimal{}, err
		}
		r = c.quo(v, hundred)
		if base != nil {
			r = c.fit(base.Mul(r))
		}
	case nodeNeg:
		v, err := c.eval(n.left, nil)
		if err != nil {
			return decimal.Decimal{}, err
		}
		r = c.fit(v.Neg())
	case nodeNop:
		v, err := c.eval(n.left, nil)
		if err != nil {
			return decimal.Decimal{}, err
		}
		r = v
	case nodeAdd, nodeSub:
		l, err := c.eval(n.left, base)
		if err != nil {
			return decimal.Decimal{}, err
		}
		// A percentage on the right is a percentage of the left.
		rv, err := c.eval(n.right, &l)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if n.kind == nodeAdd {
			r = c.fit(l.Add(rv))
		} else {
			r = c.fit(l.Sub(rv))
		}
	case nodeMul, nodeDiv, nodePow:
		l, err := c.eval(n.left, nil)
		if err != nil {
			return decimal.Decimal{}, err
		}
		rv, err := c.eval(n.right, nil)
		if err != nil {
			return decimal.Decimal{}, err
		}
		switch n.kind {
		case nodeMul:
			r = c.fit(l.Mul(rv))
		case nodeDiv:
			if rv.IsZero() {
				return decimal.Decimal{}, &DivisionByZeroError{Col: n.pos}
			}
			r = c.quo(l, rv)
		case nodePow:
			r, err = c.pow(n, l, rv)
			if err != nil {
				return decimal.Decimal{}, err
			}
		}
	default:
		panic("moneycalc: invalid AST node " + n.kind.String())
	}
	return c.quantize(r, n)
}

// quantize rounds x half-up to the calculator's precision. n is the node
// which produced x, or nil for the final result.
func (c *Calculator) quantize(x decimal.Decimal, n *node) (decimal.Decimal, error) {
	r := x.Round(int32(c.prec))
	if uint(r.NumDigits()) > c.Digits() {
		err := &UnsupportedOperationError{Reason: ReasonOverflow}
		if n != nil {
			err.Col, err.Op = n.pos, n.text
		}
		return decimal.Decimal{}, err
	}
	return r, nil
}

// fit rounds x half-even to the working number of significant digits.
func (c *Calculator) fit(x decimal.Decimal) decimal.Decimal {
	return fitdigits(x, c.Digits())
}

func fitdigits(x decimal.Decimal, digits uint) decimal.Decimal {
	nd := x.NumDigits()
	if nd <= int(digits) {
		return x
	}
	places := -x.Exponent() - int32(nd-int(digits))
	return x.RoundBank(places)
}

// quo divides x by the nonzero y, correctly rounded half-even to the working
// number of significant digits.
func (c *Calculator) quo(x, y decimal.Decimal) decimal.Decimal {
	// The quotient is at least 10**(lead-1), so truncating it at scale places
	// keeps at least two digits beyond the working precision.
	lead := (x.NumDigits() + int(x.Exponent())) - (y.NumDigits() + int(y.Exponent()))
	scale := int(c.Digits()) + 2 - lead
	if scale < 0 {
		scale = 0
	}
	q, rem := x.QuoRem(y, int32(scale))
	if !rem.IsZero() {
		// The true quotient lies strictly beyond q. A nonzero digit past the
		// truncation point keeps an inexact result from reading as a tie.
		q = q.Add(decimal.New(int64(x.Sign()*y.Sign()), -int32(scale)-1))
	}
	return c.fit(q)
}

// pow raises x to the integer power y.
func (c *Calculator) pow(n *node, x, y decimal.Decimal) (decimal.Decimal, error) {
	if !y.IsInteger() {
		return decimal.Decimal{}, &UnsupportedOperationError{Col: n.pos, Op: n.text, Reason: ReasonFractionalExponent}
	}
	switch {
	case x.IsZero():
		switch y.Sign() {
		case 0:
			return decimal.Decimal{}, &UnsupportedOperationError{Col: n.pos, Op: n.text, Reason: ReasonIndeterminate}
		case -1:
			return decimal.Decimal{}, &DivisionByZeroError{Col: n.pos}
		}
		return decimal.Zero, nil
	case y.IsZero():
		return one, nil
	}
	k := y.Abs().BigInt()
	if x.Abs().Equal(one) {
		// The magnitude estimate below would turn rounding noise in ln 1 into
		// an enormous error for large exponents.
		if x.IsNegative() && k.Bit(0) == 1 {
			return one.Neg(), nil
		}
		return one, nil
	}
	mag := magnitude(x, k)
	if y.IsNegative() {
		mag = -mag
	}
	digits := c.Digits()
	if mag > float64(digits)+1 {
		return decimal.Decimal{}, &UnsupportedOperationError{Col: n.pos, Op: n.text, Reason: ReasonPowerTooLarge}
	}
	if mag < -float64(digits+c.prec)-2 {
		// Rounds to zero at any precision we can represent.
		return decimal.Zero, nil
	}
	r := one
	for i := k.BitLen() - 1; i >= 0; i-- {
		r = fitdigits(r.Mul(r), digits+guardDigits)
		if k.Bit(i) == 1 {
			r = fitdigits(r.Mul(x), digits+guardDigits)
		}
	}
	if y.IsNegative() {
		return c.quo(one, r), nil
	}
	return c.fit(r), nil
}

// magnitude estimates log10 |x**k| for nonzero x.
func magnitude(x decimal.Decimal, k *big.Int) float64 {
	const prec = 64
	lx, ok := new(big.Float).SetPrec(prec).SetString(x.Abs().String())
	if !ok {
		panic("moneycalc: decimal does not convert to big.Float: " + x.String())
	}
	bigfloat.Log(lx, lx)
	ln10 := new(big.Float).SetPrec(prec).SetInt64(10)
	bigfloat.Log(ln10, ln10)
	lx.Quo(lx, ln10)
	lx.Mul(lx, new(big.Float).SetPrec(prec).SetInt(k))
	f, _ := lx.Float64()
	return f
}
