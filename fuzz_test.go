package moneycalc_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/moneycalc"
)

func FuzzParse(f *testing.F) {
	f.Add("100+50%")
	f.Add("(1+2")
	f.Add("2^-3**2")
	f.Fuzz(func(t *testing.T, s string) {
		moneycalc.Parse(s)
	})
}

func FuzzCalculate(f *testing.F) {
	f.Add("100 + 50 + 2%", uint8(2))
	f.Add("100:4", uint8(0))
	f.Add("2**0.5", uint8(8))
	f.Fuzz(func(t *testing.T, s string, p uint8) {
		prec := uint(p % 9)
		r := moneycalc.Calculate(s, prec)
		if moneycalc.IsFailure(r) {
			return
		}
		k := strings.IndexByte(r, '.')
		switch {
		case prec == 0 && k >= 0:
			t.Errorf("%q at precision 0 gave %q", s, r)
		case prec > 0 && (k < 0 || len(r)-k-1 != int(prec)):
			t.Errorf("%q at precision %d gave %q", s, prec, r)
		}
	})
}
