package moneycalc

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateInvariantPanics(t *testing.T) {
	c := NewCalculator()
	assert.PanicsWithValue(t, "moneycalc: invalid AST node None", func() {
		c.evaluate(&Expr{n: &node{kind: nodeNone}})
	})
	// A binary node with no operands dereferences nil.
	assert.Panics(t, func() {
		c.evaluate(&Expr{n: &node{kind: nodeAdd, text: "+"}})
	})
}

func runtimeError() (err runtime.Error) {
	defer func() {
		err = recover().(runtime.Error)
	}()
	var a []int
	i := 1
	_ = a[i]
	return nil
}

func TestFromDecimal(t *testing.T) {
	cases := []struct {
		name string
		p    interface{}
		want bool
	}{
		{"string", "decimal division by 0", true},
		{"error", errors.New("decimal: overflow"), true},
		{"own-string", "moneycalc: invalid AST node None", false},
		{"own-error", errors.New("moneycalc: broken"), false},
		{"runtime", runtimeError(), false},
		{"other", 7, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, fromDecimal(c.p))
		})
	}
}
