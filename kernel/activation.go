package kernel

import "github.com/chewxy/math32"

// SiLU computes x / (1 + e^-x).
func SiLU(x float32) float32 {
	return x / (1 + math32.Exp(-x))
}

// SiLUVec maps SiLU element-wise over a fresh output vector.
func SiLUVec(x []float32) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = SiLU(v)
	}
	return out
}
