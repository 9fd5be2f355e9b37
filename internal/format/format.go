// Package format renders calculation results for display.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Sci formats num in scientific notation with prec mantissa decimals, an
// explicit exponent sign and the exponent zero-padded to expPad digits,
// right-aligned in width. Sci(2933428.37, 10, 4, 3) == "2.9334e+006".
// NaN and infinities are returned unchanged apart from alignment.
func Sci(num float64, width, prec, expPad int) string {
	s := strconv.FormatFloat(num, 'e', prec, 64)
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return fmt.Sprintf("%*s", width, s)
	}
	mant, exp := s[:i], s[i+1:]
	sign := byte('+')
	if exp[0] == '-' || exp[0] == '+' {
		sign = exp[0]
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	if len(exp) < expPad {
		exp = strings.Repeat("0", expPad-len(exp)) + exp
	}
	return fmt.Sprintf("%*s", width, mant+"e"+string(sign)+exp)
}

// Fixed formats num with prec decimals.
func Fixed(num float64, prec int) string {
	return strconv.FormatFloat(num, 'f', prec, 64)
}
