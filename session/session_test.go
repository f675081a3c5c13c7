package session

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"llamago/kernel"
	"llamago/model"
	"llamago/vocab"
)

func toyHP() model.HyperParams {
	return model.HyperParams{Dim: 8, FFNDim: 16, Layer: 2, Head: 2, KVHead: 2, VocabSize: 32, SeqLen: 16}
}

func toyWeights(seed int64) *model.Weights {
	rng := rand.New(rand.NewSource(seed))
	hp := toyHP()
	randMat := func(out, in int) kernel.Matrix {
		data := make([]float32, out*in)
		for i := range data {
			data[i] = rng.Float32()*2 - 1
		}
		return kernel.Matrix{Data: data, Out: out, In: in}
	}
	randVec := func(n int) []float32 {
		v := make([]float32, n)
		for i := range v {
			v[i] = rng.Float32()*2 - 1
		}
		return v
	}

	w := &model.Weights{TokEmbTable: randMat(hp.VocabSize, hp.Dim), FinalNorm: randVec(hp.Dim)}
	for l := 0; l < hp.Layer; l++ {
		w.AttnNorm = append(w.AttnNorm, randVec(hp.Dim))
		w.AttnWq = append(w.AttnWq, randMat(hp.Dim, hp.Dim))
		w.AttnWk = append(w.AttnWk, randMat(hp.Dim, hp.Dim))
		w.AttnWv = append(w.AttnWv, randMat(hp.Dim, hp.Dim))
		w.AttnWo = append(w.AttnWo, randMat(hp.Dim, hp.Dim))
		w.FFNNorm = append(w.FFNNorm, randVec(hp.Dim))
		w.FFNW1 = append(w.FFNW1, randMat(hp.FFNDim, hp.Dim))
		w.FFNW2 = append(w.FFNW2, randMat(hp.Dim, hp.FFNDim))
		w.FFNW3 = append(w.FFNW3, randMat(hp.FFNDim, hp.Dim))
	}
	for p := 0; p < hp.SeqLen; p++ {
		cosRow := make([]float32, hp.HeadDim()/2)
		sinRow := make([]float32, hp.HeadDim()/2)
		for i := range cosRow {
			cosRow[i] = 1
			sinRow[i] = 0
		}
		w.RopeCos = append(w.RopeCos, cosRow)
		w.RopeSin = append(w.RopeSin, sinRow)
	}
	return w
}

func TestGreedyGenerationIsDeterministic(t *testing.T) {
	hp := toyHP()
	w := toyWeights(11)

	run := func() []int {
		s := New(hp, w)
		var out []int
		err := s.Generate(Request{
			Prompt:      []int{vocab.SOS},
			MaxTokens:   8,
			Temperature: 0,
		}, func(tok int) error {
			out = append(out, tok)
			return nil
		})
		require.NoError(t, err)
		return out
	}

	a := run()
	b := run()
	require.Equal(t, a, b)
	require.Len(t, a, 7) // MaxTokens(8) - len(prompt)(1)
}

func TestPrimingTokensAreNotEmitted(t *testing.T) {
	hp := toyHP()
	w := toyWeights(12)
	s := New(hp, w)

	var emitted []int
	err := s.Generate(Request{
		Prompt:      []int{vocab.SOS, 4, 5},
		MaxTokens:   6,
		Temperature: 0,
	}, func(tok int) error {
		emitted = append(emitted, tok)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, emitted, 3)
}

func TestStateTransitions(t *testing.T) {
	hp := toyHP()
	w := toyWeights(13)
	s := New(hp, w)
	require.Equal(t, Uninitialized, s.State())

	err := s.Generate(Request{Prompt: []int{vocab.SOS}, MaxTokens: 3, Temperature: 0}, func(int) error { return nil })
	require.NoError(t, err)
	require.Equal(t, Generating, s.State())
}
