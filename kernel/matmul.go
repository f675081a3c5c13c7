package kernel

// Matrix is a dense, row-major, output-major weight matrix: row i holds
// the `in` coefficients that produce output component i of y = W*x.
type Matrix struct {
	Data    []float32 // length Out*In, row i at Data[i*In:(i+1)*In]
	Out, In int
}

// Row returns the i-th row of W as a slice view (no copy).
func (w Matrix) Row(i int) []float32 {
	return w.Data[i*w.In : (i+1)*w.In]
}

// Matmul computes y = W*x where W is [out, in] and x has length in.
// Each output component is sum_j W[i][j] * x[j].
func Matmul(x []float32, w Matrix) []float32 {
	out := make([]float32, w.Out)
	for i := 0; i < w.Out; i++ {
		out[i] = Inner(w.Row(i), x)
	}
	return out
}

// QKMul computes, for a flat [seq_len][dim] key cache buffer kFlat, the
// dot product of q's head slice [headOffset:headOffset+headDim] with the
// same slice of every cached key row in [loPos, hiPos] (inclusive).
func QKMul(q []float32, kFlat []float32, dim, headOffset, headDim, loPos, hiPos int) []float32 {
	n := hiPos - loPos + 1
	out := make([]float32, n)
	qHead := q[headOffset : headOffset+headDim]
	for t := 0; t < n; t++ {
		rowOff := (loPos+t)*dim + headOffset
		out[t] = Inner(qHead, kFlat[rowOff:rowOff+headDim])
	}
	return out
}

// QKVMul computes, for a flat [seq_len][dim] value cache buffer vFlat and
// an attention weight vector attn of length hiPos-loPos+1, the weighted
// sum of the value rows' head slice over [loPos, hiPos].
func QKVMul(attn []float32, vFlat []float32, dim, headOffset, headDim, loPos, hiPos int) []float32 {
	out := make([]float32, headDim)
	for t, a := range attn {
		rowOff := (loPos+t)*dim + headOffset
		row := vFlat[rowOff : rowOff+headDim]
		for i, v := range row {
			out[i] += a * v
		}
	}
	return out
}
