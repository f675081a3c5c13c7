package model

import "llamago/kernel"

// ffn runs one transformer layer's SwiGLU feed-forward sub-layer (spec
// §4.4) over the residual output of attention.
func ffn(x []float32, layer int, w *Weights) []float32 {
	xHat := kernel.RMSNorm(x, w.FFNNorm[layer])

	a := kernel.Matmul(xHat, w.FFNW1[layer])
	b := kernel.Matmul(xHat, w.FFNW3[layer])
	h := kernel.Mul(kernel.SiLUVec(a), b)
	y := kernel.Matmul(h, w.FFNW2[layer])

	return kernel.Add(x, y)
}
