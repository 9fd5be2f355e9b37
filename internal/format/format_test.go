package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSci(t *testing.T) {
	cases := []struct {
		num                 float64
		width, prec, expPad int
		want                string
	}{
		{2933428.365900389, 10, 4, 3, "2.9334e+006"},
		{0.000123456, 12, 3, 3, "  1.235e-004"},
		{1, 0, 2, 2, "1.00e+00"},
		{-4.2e15, 0, 1, 1, "-4.2e+15"},
		{0, 8, 1, 2, " 0.0e+00"},
		{1.5e-300, 0, 1, 2, "1.5e-300"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Sci(c.num, c.width, c.prec, c.expPad), "%v", c.num)
	}
}

func TestSciNonFinite(t *testing.T) {
	assert.Equal(t, "  NaN", Sci(math.NaN(), 5, 4, 3))
	assert.Equal(t, "+Inf", Sci(math.Inf(1), 0, 4, 3))
}

func TestFixed(t *testing.T) {
	assert.Equal(t, "1.2386", Fixed(1.2386142026180595, 4))
	assert.Equal(t, "0.011715", Fixed(0.011714964623188415, 6))
}
