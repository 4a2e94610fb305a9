package moneycalc_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/moneycalc"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		v    string
		prec uint
		want string
	}{
		{"0", 0, "0"},
		{"0", 2, "0.00"},
		{"150", 2, "150.00"},
		{"150.5", 2, "150.50"},
		{"150.500000", 2, "150.50"},
		{"150.505", 2, "150.51"},
		{"150.504", 2, "150.50"},
		{"-150.505", 2, "-150.51"},
		{"1.999", 2, "2.00"},
		{"1.5", 0, "2"},
		{"-1.5", 0, "-2"},
		{"1.4", 0, "1"},
		{"-0.004", 2, "0.00"},
		{"-0.4", 0, "0"},
		{"100", 0, "100"},
		{"1e3", 1, "1000.0"},
		{"1.23e-5", 8, "0.00001230"},
		{"12345678901234567890.12", 2, "12345678901234567890.12"},
		{"0.1", 8, "0.10000000"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.v)
		require.NoError(t, err)
		assert.Equal(t, c.want, moneycalc.Format(d, c.prec), "formatting %s at %d", c.v, c.prec)
	}
}

func TestFormatIdempotent(t *testing.T) {
	vals := []string{"0", "1", "-1", "0.005", "123.456789", "-99.995", "1000000.1", "3.14159265358979"}
	for _, v := range vals {
		d, err := decimal.NewFromString(v)
		require.NoError(t, err)
		for prec := uint(0); prec <= 8; prec++ {
			s := moneycalc.Format(d, prec)
			r, err := moneycalc.ParseAmount(s)
			require.NoError(t, err, "parsing %q", s)
			assert.Equal(t, s, moneycalc.Format(r, prec), "reformatting %q", s)
			// A canonical string is also a valid expression for itself.
			assert.Equal(t, s, moneycalc.Calculate(s, prec))
		}
	}
}

func TestFormatSigned(t *testing.T) {
	cases := []struct {
		v    string
		prec uint
		want string
	}{
		{"150", 2, "+150.00"},
		{"0", 2, "+0.00"},
		{"-0.001", 2, "+0.00"},
		{"-20", 2, "-20.00"},
		{"7.5", 0, "+8"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.v)
		require.NoError(t, err)
		assert.Equal(t, c.want, moneycalc.FormatSigned(d, c.prec))
	}
}

func TestParseAmountRejectsFailures(t *testing.T) {
	_, err := moneycalc.ParseAmount(moneycalc.Calculate("5/0", 2))
	assert.Error(t, err)
}
