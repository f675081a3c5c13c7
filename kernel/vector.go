// Package kernel implements the numerical kernels the forward pass rests
// on: vector/matrix arithmetic, activations, softmax, RMS norm, and RoPE.
// Every function here that returns a vector allocates a fresh output, and
// none mutates its inputs, with two documented exceptions: the RoPE
// kernel writes into caller-provided output buffers, and Matrix.Row
// returns a view of the matrix's own storage.
package kernel

import (
	"gorgonia.org/vecf32"
)

// clone returns a fresh copy of v so that gorgonia's in-place vecf32
// operators can be used without mutating the caller's slice.
func clone(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}

// AddScalar returns a fresh vector with a added to every element of v.
func AddScalar(v []float32, a float32) []float32 {
	return vecf32.Trans(clone(v), a)
}

// SubScalar returns a fresh vector with a subtracted from every element of v.
func SubScalar(v []float32, a float32) []float32 {
	return vecf32.TransInv(clone(v), a)
}

// MulScalar returns a fresh vector with every element of v scaled by a.
func MulScalar(v []float32, a float32) []float32 {
	return vecf32.Scale(clone(v), a)
}

// DivScalar returns a fresh vector with every element of v divided by a.
func DivScalar(v []float32, a float32) []float32 {
	return vecf32.ScaleInv(clone(v), a)
}

// Add returns a fresh vector a+b (element-wise). a and b must have equal length.
func Add(a, b []float32) []float32 {
	return vecf32.Add(clone(a), b)
}

// Sub returns a fresh vector a-b (element-wise). a and b must have equal length.
func Sub(a, b []float32) []float32 {
	return vecf32.Sub(clone(a), b)
}

// Mul returns a fresh vector a*b (element-wise). a and b must have equal length.
func Mul(a, b []float32) []float32 {
	return vecf32.Mul(clone(a), b)
}

// Div returns a fresh vector a/b (element-wise). a and b must have equal length.
func Div(a, b []float32) []float32 {
	return vecf32.Div(clone(a), b)
}

// Sum returns the sum of all elements of v.
func Sum(v []float32) float32 {
	var total float32
	for _, x := range v {
		total += x
	}
	return total
}

// Inner returns the dot product of a and b. a and b must have equal length.
func Inner(a, b []float32) float32 {
	return vecf32.Dot(a, b)
}

// Argmax returns the first index attaining the maximum value of v under
// the total order on finite floats. NaN handling is undefined (user error).
func Argmax(v []float32) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
