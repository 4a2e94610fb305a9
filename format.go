package moneycalc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format rounds d half-up to prec fractional digits and renders it in plain
// notation with exactly prec fractional digits, or none if prec is zero.
// Zero is never rendered with a minus sign. Precisions above MaxPrec are
// treated as MaxPrec.
func Format(d decimal.Decimal, prec uint) string {
	if prec > MaxPrec {
		prec = MaxPrec
	}
	// String renders plain notation without insignificant trailing zeros.
	s := d.Round(int32(prec)).String()
	if k := strings.IndexByte(s, '.'); k >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	if prec == 0 {
		return s
	}
	frac := 0
	if k := strings.IndexByte(s, '.'); k >= 0 {
		frac = len(s) - k - 1
	} else {
		s += "."
	}
	return s + strings.Repeat("0", int(prec)-frac)
}

// FormatSigned is like Format but prefixes non-negative results with a plus
// sign, the way an operation's amount is echoed back to the user.
func FormatSigned(d decimal.Decimal, prec uint) string {
	s := Format(d, prec)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s
}

// ParseAmount parses a string produced by Format back into a decimal. It is a
// convenience for callers storing results; it rejects failure messages.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
