// Package sample implements the token-selection step that closes the
// autoregressive loop (spec §4.6): greedy argmax below a temperature
// threshold, otherwise temperature-scaled softmax sampling.
package sample

import (
	"math/rand"

	"llamago/kernel"
)

// greedyThreshold is the temperature below which sampling collapses to
// argmax (spec §4.6).
const greedyThreshold = 1e-5

// Sampler selects the next token from a logit vector. Its PRNG is
// explicitly seeded so tests can assert determinism even in the
// non-greedy path (spec §9 "Sampler randomness").
type Sampler struct {
	Temperature float32
	rng         *rand.Rand
}

// New returns a Sampler with the given temperature and seed.
func New(temperature float32, seed int64) *Sampler {
	return &Sampler{Temperature: temperature, rng: rand.New(rand.NewSource(seed))}
}

// Sample picks the next token id from logits.
func (s *Sampler) Sample(logits []float32) int {
	if s.Temperature < greedyThreshold {
		return kernel.Argmax(logits)
	}
	scaled := kernel.DivScalar(logits, s.Temperature)
	probs := kernel.Softmax(scaled)
	return kernel.RandSample(probs, s.rng)
}
