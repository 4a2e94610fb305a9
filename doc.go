// Package moneycalc implements an exact decimal calculator for money
// expressions.
//
// Expressions are written the way people type amounts into a chat: "100+50%",
// "(100+50)*2", "100:4". Operators are + - * / and ** (also spelled ^), with
// ":" as another spelling of division. Whitespace is ignored everywhere, even
// between digits, and characters that are not part of any token are dropped.
//
// A percentage on the right side of an addition or subtraction is a
// percentage of the left side, so "100 + 50%" is 150 and "100 + 50 + 2%" is
// 153. Anywhere else, n% is simply n/100.
//
// Each operation is rounded half-up to the calculator's precision as soon as
// it is computed, rather than once at the end. "1/3*3" at precision 2 is
// 0.99.
package moneycalc
