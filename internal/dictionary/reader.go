package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// State is the terminal state of a lookup.
type State int

const (
	StateDone State = iota + 1
	StateNotFound
)

func (s State) String() string {
	switch s {
	case StateDone:
		return "done"
	case StateNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Origin tells where the entry of a finished lookup came from.
type Origin string

const (
	OriginCache  Origin = "cache"
	OriginRemote Origin = "remote"
)

type Result struct {
	Word   string
	State  State
	Origin Origin
	Entry  Entry
	// Persisted is true when this lookup added the entry to the store.
	Persisted bool
	// WriteErr is set when the entry was fetched but could not be stored.
	// The lookup itself still succeeded.
	WriteErr error
}

func (r Result) Found() bool {
	return r.State == StateDone
}

// NotFoundMessage is shown to the user when neither the store nor the remote
// source knows the word.
func NotFoundMessage(word string) string {
	return fmt.Sprintf("Definition of %s not found. Please check the spelling and/or the language.", word)
}

// Reader looks words up in the store first and falls back to the remote
// fetcher, storing what it fetches.
type Reader struct {
	store   Store
	fetcher Fetcher
	logger  *slog.Logger
}

func NewReader(store Store, fetcher Fetcher) *Reader {
	return &Reader{
		store:   store,
		fetcher: fetcher,
		logger:  slog.Default(),
	}
}

// Lookup runs one lookup. The only errors returned are store read failures
// and an empty word; everything else ends in StateDone or StateNotFound.
func (r *Reader) Lookup(ctx context.Context, expression string) (Result, error) {
	word := NormalizeWord(expression)
	if word == "" {
		return Result{}, ErrEmptyWord
	}

	r.logger.Info("Looking up definition offline", "word", word)
	entry, ok, err := r.store.Get(ctx, word)
	if err != nil {
		return Result{}, fmt.Errorf("store.Get(%s) > %w", word, err)
	}
	if ok {
		return Result{
			Word:   word,
			State:  StateDone,
			Origin: OriginCache,
			Entry:  entry,
		}, nil
	}

	r.logger.Info("Couldn't find definition offline, looking up online", "word", word)
	candidate, ok := r.fetch(ctx, word)
	if !ok {
		return Result{Word: word, State: StateNotFound}, nil
	}

	result := Result{
		Word:   word,
		State:  StateDone,
		Origin: OriginRemote,
		Entry:  candidate,
	}
	written, err := r.store.PutIfAbsent(ctx, word, candidate)
	if err != nil {
		r.logger.Warn("failed to store the fetched definition",
			"word", word,
			"error", err,
		)
		result.WriteErr = err
		return result, nil
	}
	result.Persisted = written
	return result, nil
}

// fetch returns the first remote candidate if it is real.
func (r *Reader) fetch(ctx context.Context, word string) (Entry, bool) {
	candidates, err := r.fetcher.Fetch(ctx, word)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, ErrRemoteUnavailable) {
			level = slog.LevelError
		}
		r.logger.Log(ctx, level, "remote lookup failed", "word", word, "error", err)
		return Entry{}, false
	}
	if len(candidates) == 0 {
		r.logger.Debug("remote source returned no candidates", "word", word)
		return Entry{}, false
	}

	candidate := candidates[0].Normalize()
	if !IsReal(candidate) {
		r.logger.Debug("remote candidate is empty", "word", word)
		return Entry{}, false
	}
	return candidate, true
}
