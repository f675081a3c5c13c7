package kernel

import "github.com/chewxy/math32"

// eps is the additive term inside the RMS-norm mean (spec §4.1).
const eps = 1e-5

// RMSNorm computes y_i = x_i * g_i / sqrt(mean(x^2) + eps). eps is added
// inside the mean, before the square root.
func RMSNorm(x, g []float32) []float32 {
	var sumSq float32
	for _, v := range x {
		sumSq += v * v
	}
	scale := 1.0 / math32.Sqrt(sumSq/float32(len(x))+eps)

	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = v * scale * g[i]
	}
	return out
}

// Softmax is a numerically stable softmax: subtract max(x), exponentiate,
// normalize by the sum.
func Softmax(x []float32) []float32 {
	if len(x) == 0 {
		return nil
	}

	max := x[0]
	for _, v := range x[1:] {
		if v > max {
			max = v
		}
	}

	out := make([]float32, len(x))
	var sum float32
	for i, v := range x {
		e := math32.Exp(v - max)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
