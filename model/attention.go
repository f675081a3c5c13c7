package model

import (
	"github.com/chewxy/math32"

	"llamago/kernel"
	"llamago/kvcache"
)

// attention runs one transformer layer's attention sub-layer (spec §4.3):
// RMS-norm, QKV projection, RoPE, cache write, per-head causal softmax
// attention, output projection, and the residual connection.
func attention(x []float32, layer int, hp HyperParams, w *Weights, cache *kvcache.Cache, pos int) ([]float32, error) {
	xHat := kernel.RMSNorm(x, w.AttnNorm[layer])

	q := kernel.Matmul(xHat, w.AttnWq[layer])
	k := kernel.Matmul(xHat, w.AttnWk[layer])
	v := kernel.Matmul(xHat, w.AttnWv[layer])

	headDim := hp.HeadDim()
	qRot := make([]float32, hp.Dim)
	kRot := make([]float32, hp.Dim)
	cos, sin := w.RopeCos[pos], w.RopeSin[pos]
	for h := 0; h < hp.Head; h++ {
		kernel.RoPE(qRot, kRot, q, k, cos, sin, h*headDim, headDim)
	}

	if err := cache.Write(layer, pos, kRot, v); err != nil {
		return nil, err
	}

	scale := 1.0 / math32.Sqrt(float32(headDim))
	attnVal := make([]float32, hp.Dim)
	keyBuf := cache.KeyBuffer(layer)
	valBuf := cache.ValueBuffer(layer)
	for h := 0; h < hp.Head; h++ {
		headOffset := h * headDim

		scores := kernel.QKMul(qRot, keyBuf, hp.Dim, headOffset, headDim, 0, pos)
		scores = kernel.MulScalar(scores, scale)
		alpha := kernel.Softmax(scores)

		outHead := kernel.QKVMul(alpha, valBuf, hp.Dim, headOffset, headDim, 0, pos)
		copy(attnVal[headOffset:headOffset+headDim], outHead)
	}

	y := kernel.Matmul(attnVal, w.AttnWo[layer])
	return kernel.Add(x, y), nil
}
