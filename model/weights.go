package model

import "llamago/kernel"

// Weights holds every tensor the spec §3/§6 weight file carries, in the
// order it appears on disk. All matrices are output-major (kernel.Matrix:
// row i produces output component i). The classifier head reuses
// TokEmbTable (weight tying) rather than duplicating it.
type Weights struct {
	TokEmbTable kernel.Matrix // [vocab_size, dim], row t = embedding of token t

	AttnNorm [][]float32     // [layer][dim]
	AttnWq   []kernel.Matrix // [layer] of [dim, dim]
	AttnWk   []kernel.Matrix
	AttnWv   []kernel.Matrix
	AttnWo   []kernel.Matrix

	FFNNorm [][]float32
	FFNW1   []kernel.Matrix // [layer] of [ffn_dim, dim]
	FFNW2   []kernel.Matrix // [layer] of [dim, ffn_dim]
	FFNW3   []kernel.Matrix // [layer] of [ffn_dim, dim]

	FinalNorm []float32

	RopeCos [][]float32 // [seq_len][head_dim/2]
	RopeSin [][]float32
}

// Embedding returns a fresh copy of the embedding row for token id t.
func (w *Weights) Embedding(t int) []float32 {
	row := w.TokEmbTable.Row(t)
	out := make([]float32, len(row))
	copy(out, row)
	return out
}

// Logits computes the tied classifier matmul: tok_emb_table * x.
func (w *Weights) Logits(x []float32) []float32 {
	return kernel.Matmul(x, w.TokEmbTable)
}
