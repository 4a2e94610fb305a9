package moneycalc

import (
	"runtime"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPrec is the precision of a calculator created without a Prec option.
const DefaultPrec = 2

// MaxPrec is the largest supported precision. Larger precisions are reduced
// to it.
const MaxPrec = 100

// minDigits is the least number of significant digits carried by arithmetic.
// maxDigits is the most.
const (
	minDigits = 28
	maxDigits = 1000
)

// Calculator evaluates expressions to a fixed number of fractional digits.
// A Calculator is immutable, so it is safe to use concurrently.
type Calculator struct {
	prec   uint
	digits uint
	lang   Language
}

// Option is an option used when creating a calculator.
type Option interface {
	calcOption()
}

type (
	precopt   uint
	digitsopt uint
	langopt   Language
)

func (precopt) calcOption()   {}
func (digitsopt) calcOption() {}
func (langopt) calcOption()   {}

// Prec sets the number of fractional digits to which results and every
// intermediate operation are rounded. Money amounts use 0 to 8; anything
// above MaxPrec is treated as MaxPrec.
func Prec(prec uint) Option {
	return precopt(prec)
}

// WorkingDigits sets the number of significant digits carried by arithmetic.
// Zero selects the default, which is the larger of 28 and the precision
// plus 10. At most 1000 digits are used.
func WorkingDigits(n uint) Option {
	return digitsopt(n)
}

// Lang sets the language of failure messages.
func Lang(lang Language) Option {
	return langopt(lang)
}

// NewCalculator creates a new calculator. If no precision is given, the
// default is DefaultPrec. Messages are in Russian unless another language is
// given.
func NewCalculator(opts ...Option) *Calculator {
	c := Calculator{prec: DefaultPrec, lang: Russian}
	return c.Clone(opts...)
}

// Clone creates a copy of a calculator and applies options to it.
func (c *Calculator) Clone(opts ...Option) *Calculator {
	n := *c
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case precopt:
			n.prec = uint(opt)
			if n.prec > MaxPrec {
				n.prec = MaxPrec
			}
		case digitsopt:
			n.digits = uint(opt)
			if n.digits > maxDigits {
				n.digits = maxDigits
			}
		case langopt:
			n.lang = Language(opt)
		default:
			panic("moneycalc: unknown option type")
		}
	}
	return &n
}

// Prec returns the number of fractional digits in the calculator's results.
func (c *Calculator) Prec() uint {
	return c.prec
}

// Digits returns the number of significant digits carried by arithmetic.
func (c *Calculator) Digits() uint {
	if c.digits != 0 {
		return c.digits
	}
	if c.prec+10 > minDigits {
		return c.prec + 10
	}
	return minDigits
}

// Lang returns the language of the calculator's failure messages.
func (c *Calculator) Lang() Language {
	return c.lang
}

// Evaluate parses and evaluates an expression. The result is rounded to the
// calculator's precision. Errors are one of *EmptyExpressionError,
// *SyntaxError, *InvalidNumberError, *DivisionByZeroError, or
// *UnsupportedOperationError.
func (c *Calculator) Evaluate(src string) (decimal.Decimal, error) {
	if strings.TrimSpace(src) == "" {
		return decimal.Decimal{}, &EmptyExpressionError{}
	}
	e, err := Parse(src)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return c.evaluate(e)
}

// evaluate evaluates e, reporting panics from the decimal package as
// unsupported operations. Any other panic is a bug and continues.
func (c *Calculator) evaluate(e *Expr) (r decimal.Decimal, err error) {
	defer func() {
		if p := recover(); p != nil {
			if !fromDecimal(p) {
				panic(p)
			}
			r, err = decimal.Decimal{}, &UnsupportedOperationError{Reason: ReasonInvalid}
		}
	}()
	return e.Eval(c)
}

// fromDecimal reports whether a recovered panic value came from the decimal
// package rather than from this one or the runtime.
func fromDecimal(p interface{}) bool {
	switch p := p.(type) {
	case runtime.Error:
		return false
	case string:
		return !strings.HasPrefix(p, "moneycalc:")
	case error:
		return !strings.HasPrefix(p.Error(), "moneycalc:")
	default:
		return false
	}
}

// Calculate evaluates an expression and formats the result with exactly the
// calculator's precision in fractional digits. If evaluation fails, the
// result is instead a message in the calculator's language which starts with
// a failure marker; see IsFailure.
func (c *Calculator) Calculate(src string) string {
	r, err := c.Evaluate(src)
	if err != nil {
		return c.Message(err)
	}
	return Format(r, c.prec)
}

// Calculate is a shortcut to evaluate and format an expression with the given
// precision and Russian failure messages.
func Calculate(src string, prec uint) string {
	return NewCalculator(Prec(prec)).Calculate(src)
}
