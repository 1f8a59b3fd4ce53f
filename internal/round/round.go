package round

import (
	"math"
	"math/big"
)

// Fixed rounds x to digits decimal places. The decision is made on the exact
// binary value of x, so 1.45 (stored as 1.4499999...) rounds to 1.4, and an
// exact tie rounds away from zero. NaN and infinities are returned as-is.
func Fixed(x float64, digits int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if x < 0 {
		return -Fixed(-x, digits)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	r := new(big.Rat).SetFloat64(x)
	r.Mul(r, new(big.Rat).SetInt(scale))
	r.Add(r, big.NewRat(1, 2))

	// Quo truncates, which is floor for a non-negative value.
	n := new(big.Int).Quo(r.Num(), r.Denom())
	f, _ := new(big.Rat).SetFrac(n, scale).Float64()
	return f
}
