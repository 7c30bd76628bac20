package copter

import (
	"math/rand"
	"time"
)

// Source supplies uniformly distributed numbers in [0, 1) for obstacle
// placement. *rand.Rand satisfies it; tests inject scripted sequences.
type Source interface {
	Float64() float64
}

// NewRandSource returns a math/rand source. A zero seed means "seed from the
// clock", so every run differs.
func NewRandSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// uniform maps a source sample onto [lo, hi].
func uniform(src Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	v := lo + src.Float64()*(hi-lo)
	if v > hi {
		v = hi
	}
	return v
}
