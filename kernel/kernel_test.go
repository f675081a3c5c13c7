package kernel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestRMSNormUnitGain(t *testing.T) {
	x := []float32{1, 2, 3, 4, 5, 6}
	g := []float32{1, 1, 1, 1, 1, 1}

	y := RMSNorm(x, g)

	var sumSq float64
	for _, v := range y {
		sumSq += float64(v) * float64(v)
	}
	rms := sumSq / float64(len(y))
	assert.True(t, floats.EqualWithinAbsOrRel(rms, 1, 1e-2, 1e-2), "rms=%v", rms)
}

func TestSoftmaxSumsToOne(t *testing.T) {
	p := Softmax([]float32{1, 2, 3})

	var sum float64
	for _, v := range p {
		sum += float64(v)
		assert.GreaterOrEqual(t, v, float32(0))
	}
	assert.True(t, floats.EqualWithinAbsOrRel(sum, 1, 1e-6, 1e-6))
}

func TestSoftmaxShiftInvariant(t *testing.T) {
	a := Softmax([]float32{1, 2, 3})
	b := Softmax([]float32{101, 102, 103})

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.True(t, floats.EqualWithinAbsOrRel(float64(a[i]), float64(b[i]), 1e-6, 1e-6))
	}
}

func TestRoPEPreservesPairNorm(t *testing.T) {
	headDim := 4
	q := []float32{0.3, -1.2, 0.7, 2.1}
	k := []float32{-0.5, 0.4, 1.1, -0.9}
	cos := []float32{0.8, 0.2}
	sin := []float32{0.6, 0.98}

	qOut := make([]float32, headDim)
	kOut := make([]float32, headDim)
	RoPE(qOut, kOut, q, k, cos, sin, 0, headDim)

	for i := 0; i < headDim/2; i++ {
		i0, i1 := 2*i, 2*i+1
		before := float64(q[i0])*float64(q[i0]) + float64(q[i1])*float64(q[i1])
		after := float64(qOut[i0])*float64(qOut[i0]) + float64(qOut[i1])*float64(qOut[i1])
		assert.True(t, floats.EqualWithinAbsOrRel(before, after, 1e-5, 1e-5))
	}
}

func TestArgmax(t *testing.T) {
	assert.Equal(t, 2, Argmax([]float32{0.1, 0.5, 0.9, 0.9}))
}

func TestRandSampleDegenerate(t *testing.T) {
	p := []float32{1, 0, 0, 0}
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		assert.Equal(t, 0, RandSample(p, rng))
	}
}

func TestRandSampleUniformFrequency(t *testing.T) {
	n := 5
	p := make([]float32, n)
	for i := range p {
		p[i] = 1.0 / float32(n)
	}

	counts := make([]int, n)
	const draws = 20000
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < draws; i++ {
		counts[RandSample(p, rng)]++
	}

	expected := float64(draws) / float64(n)
	sigma := math.Sqrt(expected * (1 - 1.0/float64(n)))
	for _, c := range counts {
		assert.InDelta(t, expected, float64(c), 3*sigma)
	}
}

func TestMatmulOutputMajor(t *testing.T) {
	w := Matrix{Data: []float32{1, 0, 0, 1, 1, 1}, Out: 3, In: 2}
	x := []float32{2, 3}

	y := Matmul(x, w)
	assert.Equal(t, []float32{2, 3, 5}, y)
}

func TestQKMulAndQKVMul(t *testing.T) {
	dim := 4
	headOffset, headDim := 0, 2
	// two cached positions, dim=4 each
	kFlat := []float32{1, 0, 0, 0, 0, 1, 0, 0}
	vFlat := []float32{1, 2, 0, 0, 3, 4, 0, 0}
	q := []float32{1, 1}

	scores := QKMul(q, kFlat, dim, headOffset, headDim, 0, 1)
	require.Equal(t, []float32{1, 1}, scores)

	attn := Softmax(scores)
	out := QKVMul(attn, vFlat, dim, headOffset, headDim, 0, 1)
	assert.InDelta(t, 2.0, float64(out[0]), 1e-6)
	assert.InDelta(t, 3.0, float64(out[1]), 1e-6)
}
