// Package model assembles the per-layer transformer blocks (C3 attention,
// C4 FFN) into the full decoder step (C5), operating on HyperParams and
// Weights loaded by the config/weightfile packages (spec §3, §4.3-§4.5).
package model

import "llamago/apperror"

// HyperParams are the immutable model dimensions loaded once at startup
// (spec §3).
type HyperParams struct {
	Name      string
	Dim       int
	FFNDim    int
	Layer     int
	Head      int
	KVHead    int
	VocabSize int
	SeqLen    int
}

// HeadDim returns dim/head.
func (h HyperParams) HeadDim() int {
	return h.Dim / h.Head
}

// Validate checks the divisibility and range invariants spec §3/§6
// require, returning a ConfigurationError describing the first violation.
func (h HyperParams) Validate() error {
	for name, v := range map[string]int{
		"dim": h.Dim, "ffn_dim": h.FFNDim, "layer": h.Layer,
		"head": h.Head, "kv_head": h.KVHead, "vocab_size": h.VocabSize, "seq_len": h.SeqLen,
	} {
		if v <= 0 {
			return apperror.Configurationf(nil, "%s must be positive, got %d", name, v)
		}
	}
	if h.Dim%h.Head != 0 {
		return apperror.Configurationf(nil, "dim (%d) must be divisible by head (%d)", h.Dim, h.Head)
	}
	if h.HeadDim()%2 != 0 {
		return apperror.Configurationf(nil, "head_dim (%d) must be even for RoPE pairing", h.HeadDim())
	}
	if h.KVHead != h.Head {
		return apperror.Configurationf(nil, "kv_head (%d) must equal head (%d): grouped-query attention is not supported by this core", h.KVHead, h.Head)
	}
	return nil
}
