package simulation

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// sampler draws binomial counts from a single generator. It is not safe
// for concurrent use; each pass owns its own sampler.
type sampler struct {
	src rand.Source
}

func newSampler(seed1, seed2 uint64) *sampler {
	return &sampler{src: rand.NewPCG(seed1, seed2)}
}

// binomial returns the number of successes in n trials with probability p.
func (s *sampler) binomial(n int, p float64) int {
	switch {
	case n <= 0 || p <= 0:
		return 0
	case p >= 1:
		return n
	}
	d := distuv.Binomial{N: float64(n), P: p, Src: s.src}
	k := int(d.Rand())
	// distuv returns a float64 count; keep it within [0, n].
	if k < 0 {
		return 0
	}
	if k > n {
		return n
	}
	return k
}
