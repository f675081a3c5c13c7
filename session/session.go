// Package session implements the generation session state machine (spec
// §4.6): Uninitialized -> Priming (prompt tokens fed, outputs discarded)
// -> Generating (emitting tokens until the budget is spent). The session
// is the sole owner of the KV cache; weights are shared read-only.
//
// This mirrors the teacher's runner packages, where one sequence owns one
// cache slice and is driven step by step by the caller — simplified to a
// single sequence, since batching across sequences is a non-goal here.
package session

import (
	"log/slog"

	"github.com/google/uuid"

	"llamago/apperror"
	"llamago/kvcache"
	"llamago/model"
	"llamago/sample"
	"llamago/vocab"
)

// State is one of the three generation-session states (spec §4.6).
type State int

const (
	Uninitialized State = iota
	Priming
	Generating
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Priming:
		return "priming"
	case Generating:
		return "generating"
	default:
		return "unknown"
	}
}

// Request configures one generation run.
type Request struct {
	Prompt      []int // token ids to prime the cache with, in order
	MaxTokens   int   // total token budget, including the primed prompt
	Temperature float32
	Seed        int64
	// StopOnEOS, if true, ends generation as soon as vocab.EOS is
	// produced. Default false preserves the original/teacher behavior of
	// always emitting exactly MaxTokens tokens (spec §9 Design Note).
	StopOnEOS bool
}

// Session drives the decoder and sampler over a single sequence.
type Session struct {
	id      uuid.UUID
	hp      model.HyperParams
	weights *model.Weights
	cache   *kvcache.Cache
	state   State
	pos     int
}

// New creates a session over the given hyperparameters and weights,
// allocating a fresh KV cache.
func New(hp model.HyperParams, weights *model.Weights) *Session {
	return &Session{
		id:      uuid.New(),
		hp:      hp,
		weights: weights,
		cache:   kvcache.New(hp.Layer, hp.SeqLen, hp.Dim),
		state:   Uninitialized,
	}
}

// ID returns the session's unique id, used to correlate log lines.
func (s *Session) ID() uuid.UUID { return s.id }

// Generate runs req to completion, invoking emit once per generated
// (non-primed) token in order. Priming tokens advance the cache but are
// never passed to emit, matching spec §2 "Control flow".
func (s *Session) Generate(req Request, emit func(tok int) error) error {
	if len(req.Prompt) == 0 || req.Prompt[0] != vocab.SOS {
		return apperror.Shapef(nil, "prompt must begin with the SOS token")
	}
	if req.MaxTokens > s.hp.SeqLen {
		return apperror.Boundsf(nil, "max tokens %d exceeds seq_len %d", req.MaxTokens, s.hp.SeqLen)
	}

	sampler := sample.New(req.Temperature, req.Seed)

	slog.Info("generation session started", "session", s.id, "prompt_tokens", len(req.Prompt), "max_tokens", req.MaxTokens)

	s.state = Priming
	var last []float32
	toks := make([]int, 0, req.MaxTokens)
	for _, tok := range req.Prompt {
		logits, err := model.Decode(tok, s.pos, s.hp, s.weights, s.cache)
		if err != nil {
			return err
		}
		last = logits
		toks = append(toks, tok)
		s.pos++
	}

	s.state = Generating
	for s.pos < req.MaxTokens {
		next := sampler.Sample(last)
		if err := emit(next); err != nil {
			return err
		}
		toks = append(toks, next)

		if req.StopOnEOS && next == vocab.EOS {
			break
		}

		logits, err := model.Decode(next, s.pos, s.hp, s.weights, s.cache)
		if err != nil {
			return err
		}
		last = logits
		s.pos++
	}

	slog.Info("generation session finished", "session", s.id, "tokens_emitted", len(toks)-len(req.Prompt))
	return nil
}

// State reports the session's current state.
func (s *Session) State() State { return s.state }
