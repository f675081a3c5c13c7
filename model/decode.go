package model

import (
	"llamago/apperror"
	"llamago/kernel"
	"llamago/kvcache"
)

// Decode runs the decoder step (spec §4.5): embed token, fold it through
// every transformer block's attention+FFN sub-layers, apply the final
// norm, and project through the tied classifier head to logits.
//
// Callers must invoke Decode for positions 0, 1, 2, ... in strictly
// ascending order for a given cache (spec §5 ordering guarantees).
func Decode(tok, pos int, hp HyperParams, w *Weights, cache *kvcache.Cache) ([]float32, error) {
	if tok < 0 || tok >= hp.VocabSize {
		return nil, apperror.Boundsf(nil, "token id %d out of range [0,%d)", tok, hp.VocabSize)
	}
	if pos < 0 || pos >= hp.SeqLen {
		return nil, apperror.Boundsf(nil, "position %d out of range [0,%d)", pos, hp.SeqLen)
	}

	x := w.Embedding(tok)

	for layer := 0; layer < hp.Layer; layer++ {
		var err error
		x, err = attention(x, layer, hp, w, cache, pos)
		if err != nil {
			return nil, err
		}
		x = ffn(x, layer, w)
	}

	x = kernel.RMSNorm(x, w.FinalNorm)
	return w.Logits(x), nil
}
