package moneycalc

import "strconv"

// SyntaxErrorKind classifies a SyntaxError.
type SyntaxErrorKind int8

const (
	// UnexpectedToken is a token that can't appear where it was found,
	// including the end of input in the middle of an expression.
	UnexpectedToken SyntaxErrorKind = iota + 1
	// MissingCloseParen is an open parenthesis with no matching close.
	MissingCloseParen
	// EmptyInput is input which contains no tokens at all.
	EmptyInput
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case MissingCloseParen:
		return "missing closing parenthesis"
	case EmptyInput:
		return "empty input"
	default:
		return "SyntaxErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// SyntaxError is an error indicating a malformed expression. It implements
// InputError.
type SyntaxError struct {
	// Col is the position of the offending token, or one past the end of the
	// input if the input ended too soon.
	Col int
	// Kind is the type of syntax error.
	Kind SyntaxErrorKind
	// Token is the offending token. It is empty if the input ended.
	Token string
}

func (err *SyntaxError) Error() string {
	switch err.Kind {
	case MissingCloseParen:
		return errpos(err.Col, "missing closing parenthesis")
	case EmptyInput:
		return errpos(err.Col, "no expression")
	}
	if err.Token == "" {
		return errpos(err.Col, "unexpected end of input")
	}
	return errpos(err.Col, "unexpected token "+strconv.Quote(err.Token))
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// InvalidNumberError is an error indicating a numeral that is not a valid
// exact decimal. It implements InputError.
type InvalidNumberError struct {
	// Col is the position of the numeral.
	Col int
	// Text is the numeral.
	Text string
	// Err is the error from the decimal parser.
	Err error
}

func (err *InvalidNumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *InvalidNumberError) Pos() int {
	return err.Col
}

func (err *InvalidNumberError) Unwrap() error {
	return err.Err
}

// DivisionByZeroError is an error indicating a division, or an exponentiation
// with a negative exponent, whose divisor is zero. It implements InputError.
type DivisionByZeroError struct {
	// Col is the position of the operator.
	Col int
}

func (err *DivisionByZeroError) Error() string {
	return errpos(err.Col, "division by zero")
}

func (err *DivisionByZeroError) Pos() int {
	return err.Col
}

// Reason explains an UnsupportedOperationError.
type Reason int8

const (
	// ReasonInvalid is an operation with no defined result.
	ReasonInvalid Reason = iota
	// ReasonFractionalExponent is an exponent with a fractional part.
	ReasonFractionalExponent
	// ReasonIndeterminate is zero raised to the zeroth power.
	ReasonIndeterminate
	// ReasonPowerTooLarge is an exponentiation whose result could not be
	// represented in the working precision.
	ReasonPowerTooLarge
	// ReasonOverflow is a result which needs more significant digits than the
	// working precision once rounded.
	ReasonOverflow
)

func (r Reason) String() string {
	switch r {
	case ReasonInvalid:
		return "invalid operation"
	case ReasonFractionalExponent:
		return "fractional exponents are not supported"
	case ReasonIndeterminate:
		return "zero to the power of zero is undefined"
	case ReasonPowerTooLarge:
		return "power is too large"
	case ReasonOverflow:
		return "result exceeds working precision"
	default:
		return "Reason(" + strconv.Itoa(int(r)) + ")"
	}
}

// UnsupportedOperationError is an error indicating an operation that exact
// money arithmetic cannot perform. It implements InputError.
type UnsupportedOperationError struct {
	// Col is the position of the operator, or 0 if the operation was not
	// attached to one, e.g. the final rounding of the result.
	Col int
	// Op is the operator.
	Op string
	// Reason is why the operation is unsupported.
	Reason Reason
}

func (err *UnsupportedOperationError) Error() string {
	if err.Op == "" {
		return errpos(err.Col, err.Reason.String())
	}
	return errpos(err.Col, "cannot evaluate "+strconv.Quote(err.Op)+": "+err.Reason.String())
}

func (err *UnsupportedOperationError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating that an expression was empty
// or contained only whitespace.
type EmptyExpressionError struct{}

func (err *EmptyExpressionError) Error() string {
	return "empty expression"
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input except EmptyExpressionError implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*InvalidNumberError)(nil)
	_ InputError = (*DivisionByZeroError)(nil)
	_ InputError = (*UnsupportedOperationError)(nil)
)
