package dictionary

import "context"

//go:generate mockgen -source=store.go -destination=../mocks/dictionary/mock_store.go -package=mock_dictionary

// Store is a word to Entry mapping that only ever grows: once a word is
// written it is never updated.
type Store interface {
	Get(ctx context.Context, word string) (Entry, bool, error)
	// PutIfAbsent stores the entry unless the word is already present.
	// It reports whether the entry was written.
	PutIfAbsent(ctx context.Context, word string, entry Entry) (bool, error)
}
