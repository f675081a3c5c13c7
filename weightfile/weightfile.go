// Package weightfile reads the raw little-endian float32 weight file
// (spec §6): tensors appear in a fixed order with no header and no
// padding, the last dimension of each tensor varying fastest. The token
// embedding table and each layer's weight matrix are read into one
// contiguous buffer apiece (llamago/kernel.Matrix, shape carried
// alongside); a per-layer stack is a slice of such matrices, and the norm
// vectors and RoPE tables are [][]float32 whose rows are allocated
// separately, so a whole multi-layer tensor is not one contiguous buffer.
package weightfile

import (
	"encoding/binary"
	"io"
	"os"

	"llamago/apperror"
	"llamago/kernel"
	"llamago/model"
)

// Load reads a weight file at path for the given hyperparameters.
func Load(path string, hp model.HyperParams) (*model.Weights, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperror.Iof(err, "opening weight file %q", path)
	}
	defer f.Close()

	return Read(f, hp)
}

// reader wraps an io.Reader with the tensor-at-a-time helpers below,
// surfacing any truncation as an IoError.
type reader struct {
	r io.Reader
}

func (rd reader) flat(n int) ([]float32, error) {
	buf := make([]float32, n)
	if err := binary.Read(rd.r, binary.LittleEndian, buf); err != nil {
		return nil, apperror.Iof(err, "reading %d float32 values", n)
	}
	return buf, nil
}

func (rd reader) rows(count, width int) ([][]float32, error) {
	out := make([][]float32, count)
	for i := range out {
		row, err := rd.flat(width)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}

func (rd reader) matrices(count, out, in int) ([]kernel.Matrix, error) {
	ms := make([]kernel.Matrix, count)
	for i := range ms {
		data, err := rd.flat(out * in)
		if err != nil {
			return nil, err
		}
		ms[i] = kernel.Matrix{Data: data, Out: out, In: in}
	}
	return ms, nil
}

// Read reads the fixed tensor sequence from spec §6 in order.
func Read(r io.Reader, hp model.HyperParams) (*model.Weights, error) {
	rd := reader{r: r}
	headDim := hp.HeadDim()

	tokEmb, err := rd.flat(hp.VocabSize * hp.Dim)
	if err != nil {
		return nil, err
	}

	w := &model.Weights{TokEmbTable: kernel.Matrix{Data: tokEmb, Out: hp.VocabSize, In: hp.Dim}}

	if w.AttnNorm, err = rd.rows(hp.Layer, hp.Dim); err != nil {
		return nil, err
	}
	if w.AttnWq, err = rd.matrices(hp.Layer, hp.Dim, hp.Dim); err != nil {
		return nil, err
	}
	if w.AttnWk, err = rd.matrices(hp.Layer, hp.Dim, hp.Dim); err != nil {
		return nil, err
	}
	if w.AttnWv, err = rd.matrices(hp.Layer, hp.Dim, hp.Dim); err != nil {
		return nil, err
	}
	if w.AttnWo, err = rd.matrices(hp.Layer, hp.Dim, hp.Dim); err != nil {
		return nil, err
	}
	if w.FFNNorm, err = rd.rows(hp.Layer, hp.Dim); err != nil {
		return nil, err
	}
	if w.FFNW1, err = rd.matrices(hp.Layer, hp.FFNDim, hp.Dim); err != nil {
		return nil, err
	}
	if w.FFNW2, err = rd.matrices(hp.Layer, hp.Dim, hp.FFNDim); err != nil {
		return nil, err
	}
	if w.FFNW3, err = rd.matrices(hp.Layer, hp.FFNDim, hp.Dim); err != nil {
		return nil, err
	}
	if w.FinalNorm, err = rd.flat(hp.Dim); err != nil {
		return nil, err
	}
	if w.RopeCos, err = rd.rows(hp.SeqLen, headDim/2); err != nil {
		return nil, err
	}
	if w.RopeSin, err = rd.rows(hp.SeqLen, headDim/2); err != nil {
		return nil, err
	}

	// The file must contain exactly these tensors and nothing more.
	var probe [1]byte
	if n, _ := r.Read(probe[:]); n != 0 {
		return nil, apperror.Iof(nil, "weight file longer than the expected tensor layout for these hyperparameters")
	}

	return w, nil
}
