package forecast

import "math/rand/v2"

// Source supplies uniform values in [0, 1) for the happiness noise term.
// *rand.Rand satisfies Source.
type Source interface {
	Float64() float64
}

// Fixed is a Source that always returns the same value.
type Fixed float64

// Float64 returns f.
func (f Fixed) Float64() float64 { return float64(f) }

// Quiet yields a noise term of exactly 0.
const Quiet = Fixed(0.5)

// Seeded returns a deterministic Source for reproducible runs.
func Seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
