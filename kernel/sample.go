package kernel

import "math/rand"

// RandSample draws a uniform u in [0,1) from rng and returns the smallest
// index i such that the cumulative sum of p[0..i] exceeds u. If numerical
// drift leaves no index satisfying that (the cumulative sum falls just
// short of 1), the last index is returned.
func RandSample(p []float32, rng *rand.Rand) int {
	u := rng.Float32()

	var cdf float32
	for i, pi := range p {
		cdf += pi
		if cdf > u {
			return i
		}
	}
	return len(p) - 1
}
