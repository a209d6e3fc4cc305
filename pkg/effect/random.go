package effect

import "math/rand/v2"

// RandomSource supplies uniform samples in [min, max]
type RandomSource interface {
	Next(min, max float64) float64
}

// PCGSource is a seeded RandomSource backed by math/rand/v2
type PCGSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a deterministic source for the given seed
func NewRandomSource(seed uint64) *PCGSource {
	return &PCGSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Next returns a uniform sample in [min, max). Equal bounds return min.
func (s *PCGSource) Next(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.rng.Float64()*(max-min)
}
