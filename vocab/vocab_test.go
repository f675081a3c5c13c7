package vocab

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildVocabFile(tokens []string) []byte {
	buf := new(bytes.Buffer)
	for _, tok := range tokens {
		_ = binary.Write(buf, binary.LittleEndian, uint32(len(tok)))
		buf.WriteString(tok)
	}
	return buf.Bytes()
}

func TestGreedyLongestMatch(t *testing.T) {
	tokens := []string{"a", "ab", "abc"}
	v, err := Read(bytes.NewReader(buildVocabFile(tokens)), len(tokens))
	require.NoError(t, err)

	got := v.StrToTok("abcab")
	require.Equal(t, []int{2, 1}, got) // "abc" then "ab"
}

func TestRoundTripForInVocabStrings(t *testing.T) {
	tokens := []string{"he", "llo", " wor", "ld", "!"}
	v, err := Read(bytes.NewReader(buildVocabFile(tokens)), len(tokens))
	require.NoError(t, err)

	original := "hello world!"
	ids := v.StrToTok(original)

	var rebuilt string
	for _, id := range ids {
		s, err := v.TokToStr(id)
		require.NoError(t, err)
		rebuilt += s
	}
	assert.Equal(t, original, rebuilt)
}

func TestByteFallbackOnNoMatch(t *testing.T) {
	tokens := []string{"x", "y"}
	v, err := Read(bytes.NewReader(buildVocabFile(tokens)), len(tokens))
	require.NoError(t, err)

	ids := v.StrToTok("z")
	require.Equal(t, []int{int('z')}, ids)
}

func TestTokToStrOutOfRange(t *testing.T) {
	v, err := Read(bytes.NewReader(buildVocabFile([]string{"a"})), 1)
	require.NoError(t, err)

	_, err = v.TokToStr(5)
	require.Error(t, err)
}
