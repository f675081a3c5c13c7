package weightfile

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llamago/apperror"
	"llamago/model"
)

func toyHP() model.HyperParams {
	return model.HyperParams{Dim: 4, FFNDim: 8, Layer: 1, Head: 2, KVHead: 2, VocabSize: 3, SeqLen: 2}
}

func tensorSize(hp model.HyperParams) int {
	headDim := hp.HeadDim()
	n := hp.VocabSize*hp.Dim +
		hp.Layer*hp.Dim + // attn_norm
		4*hp.Layer*hp.Dim*hp.Dim + // wq wk wv wo
		hp.Layer*hp.Dim + // ffn_norm
		2*hp.Layer*hp.FFNDim*hp.Dim + hp.Layer*hp.Dim*hp.FFNDim + // w1 w3 w2
		hp.Dim + // final norm
		2*hp.SeqLen*(headDim/2) // rope cos/sin
	return n
}

func buildFile(n int) []byte {
	buf := new(bytes.Buffer)
	for i := 0; i < n; i++ {
		_ = binary.Write(buf, binary.LittleEndian, float32(i)*0.01)
	}
	return buf.Bytes()
}

func TestReadExactSize(t *testing.T) {
	hp := toyHP()
	data := buildFile(tensorSize(hp))

	w, err := Read(bytes.NewReader(data), hp)
	require.NoError(t, err)
	assert.Equal(t, hp.VocabSize, w.TokEmbTable.Out)
	assert.Equal(t, hp.Dim, w.TokEmbTable.In)
	assert.Len(t, w.AttnWq, hp.Layer)
	assert.Len(t, w.RopeCos, hp.SeqLen)
	assert.Len(t, w.RopeCos[0], hp.HeadDim()/2)
}

func TestReadTruncatedFileIsIoError(t *testing.T) {
	hp := toyHP()
	data := buildFile(tensorSize(hp) - 1)

	_, err := Read(bytes.NewReader(data), hp)
	require.Error(t, err)
	kind, ok := apperror.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperror.Io, kind)
}

func TestReadRejectsTrailingData(t *testing.T) {
	hp := toyHP()
	data := buildFile(tensorSize(hp) + 1)

	_, err := Read(bytes.NewReader(data), hp)
	require.Error(t, err)
}
