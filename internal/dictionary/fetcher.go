package dictionary

import "context"

//go:generate mockgen -source=fetcher.go -destination=../mocks/dictionary/mock_fetcher.go -package=mock_dictionary

// Fetcher looks a word up in a remote dictionary. It returns zero or more
// candidate entries; callers use the first one. Failures must wrap
// ErrRemoteUnavailable.
type Fetcher interface {
	Fetch(ctx context.Context, word string) ([]Entry, error)
}
