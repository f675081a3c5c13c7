// Package vocab reads the vocabulary file (spec §6) and implements the
// tokenizer contract consumed by the driver: greedy longest-match
// str_to_tok, direct-lookup tok_to_str, and the raw-byte fallback when no
// vocabulary entry matches (preserved verbatim per spec §9 "Tokenizer
// fallback behavior").
package vocab

import (
	"encoding/binary"
	"io"
	"os"

	"llamago/apperror"
)

// SOS and EOS are the reserved start/end-of-sequence token ids (spec §6).
const (
	SOS = 1
	EOS = 2
)

// Vocab is the loaded token-id -> string table.
type Vocab struct {
	tokens []string
}

// Load reads a vocabulary file at path holding exactly vocabSize records.
func Load(path string, vocabSize int) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperror.Iof(err, "opening vocabulary file %q", path)
	}
	defer f.Close()

	return Read(f, vocabSize)
}

// Read reads vocabSize length-prefixed records from r.
func Read(r io.Reader, vocabSize int) (*Vocab, error) {
	tokens := make([]string, vocabSize)
	for i := 0; i < vocabSize; i++ {
		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, apperror.Iof(err, "reading length prefix for token %d", i)
		}

		buf := make([]byte, length)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, apperror.Iof(err, "reading token %d body (%d bytes)", i, length)
		}
		tokens[i] = string(buf)
	}
	return &Vocab{tokens: tokens}, nil
}

// Size returns the number of tokens in the vocabulary.
func (v *Vocab) Size() int { return len(v.tokens) }

// TokToStr looks up the string for a token id.
func (v *Vocab) TokToStr(tok int) (string, error) {
	if tok < 0 || tok >= len(v.tokens) {
		return "", apperror.Boundsf(nil, "token id %d out of range [0,%d)", tok, len(v.tokens))
	}
	return v.tokens[tok], nil
}

// StrToTok performs greedy longest-match tokenization: at each position it
// picks the longest vocabulary entry that prefixes the remaining text; on
// no match, it emits the raw bytes of the next UTF-8 rune as individual
// token ids. Those fallback ids have no guaranteed correspondence to
// vocabulary entries (spec §9) and are not necessarily valid indices into
// this vocabulary's own table.
func (v *Vocab) StrToTok(text string) []int {
	var out []int
	for len(text) > 0 {
		// Ties on match length resolve to the last candidate scanned,
		// matching the original tokenizer's iterator max_by semantics.
		bestIdx, bestLen := -1, -1
		for idx, tok := range v.tokens {
			if len(tok) >= bestLen && len(tok) <= len(text) && text[:len(tok)] == tok {
				bestIdx, bestLen = idx, len(tok)
			}
		}

		if bestIdx >= 0 {
			out = append(out, bestIdx)
			text = text[bestLen:]
			continue
		}

		r := []rune(text)[0]
		for _, b := range []byte(string(r)) {
			out = append(out, int(b))
		}
		text = text[len(string(r)):]
	}
	return out
}
