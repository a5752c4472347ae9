package dictionary

import "errors"

var (
	// ErrStorageCorrupt means the store exists but could not be decoded.
	ErrStorageCorrupt = errors.New("dictionary storage is corrupt")
	// ErrStorageMissing is returned only when the store is required to exist.
	ErrStorageMissing = errors.New("dictionary storage does not exist")
	// ErrRemoteUnavailable wraps transport and parse failures of a Fetcher.
	ErrRemoteUnavailable = errors.New("remote dictionary is unavailable")
	ErrWriteFailure      = errors.New("failed to write dictionary storage")
	ErrNotFound          = errors.New("definition not found")
	ErrEmptyWord         = errors.New("word must not be empty")
)
