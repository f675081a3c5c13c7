// Package kvcache implements the incremental key/value cache (spec §3,
// §4.2): a fixed-capacity, per-layer store of rotated keys and raw values
// that makes generation O(seq_len) per token rather than O(seq_len^2).
//
// Unlike the teacher's kvcache package (which juggles multiple concurrent
// sequences, sliding-window eviction, and chunked attention), the core
// this spec describes is restricted to one sequence, one key/value head
// per query head, and no eviction: generation is bounded by seq_len and
// slots are written exactly once in strictly ascending position order.
package kvcache

import (
	"fmt"

	"llamago/apperror"
)

// Cache is the [layer][seq_len][dim] key/value store. K and V are each a
// single contiguous buffer per layer so that a row (all dim components of
// one position) is a contiguous slice.
type Cache struct {
	dim     int
	seqLen  int
	k       [][]float32 // k[layer] has length seqLen*dim
	v       [][]float32 // v[layer] has length seqLen*dim
	written []int       // written[layer] = highest position written + 1 (0 = none)
}

// New allocates a zero-initialized cache for the given layer count,
// sequence capacity, and model dimension.
func New(layers, seqLen, dim int) *Cache {
	k := make([][]float32, layers)
	v := make([][]float32, layers)
	for l := 0; l < layers; l++ {
		k[l] = make([]float32, seqLen*dim)
		v[l] = make([]float32, seqLen*dim)
	}
	return &Cache{
		dim:     dim,
		seqLen:  seqLen,
		k:       k,
		v:       v,
		written: make([]int, layers),
	}
}

// Dim returns the model dimension each cached row holds.
func (c *Cache) Dim() int { return c.dim }

// SeqLen returns the cache's position capacity.
func (c *Cache) SeqLen() int { return c.seqLen }

// Write stores the rotated key k and raw value v for (layer, pos). Writes
// must occur in strictly ascending pos order per layer; pos >= seqLen is
// an error.
func (c *Cache) Write(layer, pos int, key, value []float32) error {
	if pos < 0 || pos >= c.seqLen {
		return apperror.Boundsf(nil, "kvcache: position %d out of range [0,%d)", pos, c.seqLen)
	}
	if len(key) != c.dim || len(value) != c.dim {
		return apperror.Shapef(nil, "kvcache: expected vectors of length %d, got k=%d v=%d", c.dim, len(key), len(value))
	}

	off := pos * c.dim
	copy(c.k[layer][off:off+c.dim], key)
	copy(c.v[layer][off:off+c.dim], value)

	if pos+1 > c.written[layer] {
		c.written[layer] = pos + 1
	}
	return nil
}

// KeyBuffer returns the full flat [seq_len][dim] key buffer for layer, for
// use with kernel.QKMul.
func (c *Cache) KeyBuffer(layer int) []float32 { return c.k[layer] }

// ValueBuffer returns the full flat [seq_len][dim] value buffer for layer,
// for use with kernel.QKVMul.
func (c *Cache) ValueBuffer(layer int) []float32 { return c.v[layer] }

// String renders the cache's shape (layers, seq_len, dim) for
// debugging/logging; it does not report which positions are written.
func (c *Cache) String() string {
	return fmt.Sprintf("kvcache{layers=%d seqLen=%d dim=%d}", len(c.k), c.seqLen, c.dim)
}
