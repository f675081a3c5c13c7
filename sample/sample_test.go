package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"llamago/kernel"
)

func TestGreedyEqualsArgmax(t *testing.T) {
	logits := []float32{0.1, 5.2, -1.0, 5.2, 3.0}
	s := New(0, 7)
	assert.Equal(t, kernel.Argmax(logits), s.Sample(logits))
}

func TestGreedyDeterministic(t *testing.T) {
	logits := []float32{0.1, 5.2, -1.0, 5.2, 3.0}
	a := New(0, 1).Sample(logits)
	b := New(0, 2).Sample(logits)
	assert.Equal(t, a, b)
}

func TestTemperatureSamplingIsSeedDeterministic(t *testing.T) {
	logits := []float32{1, 2, 3, 0.5}
	a := New(0.8, 123).Sample(logits)
	b := New(0.8, 123).Sample(logits)
	assert.Equal(t, a, b)
}
