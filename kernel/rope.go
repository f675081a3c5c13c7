package kernel

// RoPE rotates the head at [headOffset, headOffset+headDim) of qIn/kIn by
// the position-dependent angles in cos/sin (each of length headDim/2),
// writing into the caller-provided qOut/kOut buffers. Unlike the rest of
// this package, RoPE does not allocate: it is the one kernel the spec
// requires to write into caller-owned output buffers (§4.1).
func RoPE(qOut, kOut, qIn, kIn, cos, sin []float32, headOffset, headDim int) {
	for i := 0; i < headDim/2; i++ {
		i0 := headOffset + 2*i
		i1 := i0 + 1

		q0, q1 := qIn[i0], qIn[i1]
		k0, k1 := kIn[i0], kIn[i1]
		c, s := cos[i], sin[i]

		qOut[i0] = q0*c - q1*s
		qOut[i1] = q0*s + q1*c

		kOut[i0] = k0*c - k1*s
		kOut[i1] = k0*s + k1*c
	}
}
