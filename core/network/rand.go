// Package network provides the deterministic supply network model.
// Generation is driven by a Lehmer multiplicative congruential generator so
// that equal seeds produce bit-identical networks across runs and platforms.
package network

const (
	lehmerModulus    = 2147483647 // 2^31 - 1, prime
	lehmerMultiplier = 48271
)

// Rand is a Lehmer-style pseudo-random generator. The multiplication stays
// well inside int64 range (48271 * 2^31 < 2^63), so every product is exact
// before the modulus is applied.
type Rand struct {
	state int64
}

// NewRand seeds a generator. A seed congruent to 0 mod 2^31-1 would lock the
// state at zero forever, so it is replaced by 1.
func NewRand(seed int64) *Rand {
	s := seed % lehmerModulus
	if s < 0 {
		s += lehmerModulus
	}
	if s == 0 {
		s = 1
	}
	return &Rand{state: s}
}

// Next advances the state and returns a uniform draw in (0, 1).
func (r *Rand) Next() float64 {
	r.state = (r.state * lehmerMultiplier) % lehmerModulus
	return float64(r.state) / lehmerModulus
}
