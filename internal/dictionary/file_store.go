package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/gofrs/flock"
)

const (
	defaultLockAttempts = 10
	defaultLockDelay    = 50 * time.Millisecond
)

var errStoreLocked = errors.New("dictionary storage is locked by another process")

// StoredEntry is a single element of the store file.
type StoredEntry struct {
	Word  string `json:"word" yaml:"word"`
	Entry Entry  `json:"entry" yaml:"entry"`
}

// FileStore keeps every entry in one JSON file shaped as
// [{"word": Entry}, ...]. The file is read whole on every access and
// rewritten whole on every accepted write, so it suits a personal
// dictionary of a few thousand words, not more.
type FileStore struct {
	path            string
	requireExisting bool
	lockAttempts    uint
	lockDelay       time.Duration

	mu sync.Mutex
}

type FileStoreOption func(*FileStore)

// WithRequireExisting makes a missing file an ErrStorageMissing error
// instead of an empty store.
func WithRequireExisting(required bool) FileStoreOption {
	return func(s *FileStore) {
		s.requireExisting = required
	}
}

func WithLockAttempts(attempts uint, delay time.Duration) FileStoreOption {
	return func(s *FileStore) {
		if attempts > 0 {
			s.lockAttempts = attempts
		}
		if delay > 0 {
			s.lockDelay = delay
		}
	}
}

func NewFileStore(path string, options ...FileStoreOption) *FileStore {
	store := &FileStore{
		path:         path,
		lockAttempts: defaultLockAttempts,
		lockDelay:    defaultLockDelay,
	}
	for _, option := range options {
		option(store)
	}
	return store
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) lockPath() string {
	return s.path + ".lock"
}

// record keeps the raw JSON of an existing entry so that a rewrite does not
// drop fields this version does not know about.
type record struct {
	word string
	raw  json.RawMessage
}

type snapshot struct {
	records []record
	index   map[string]int
}

func (snap *snapshot) has(word string) bool {
	_, ok := snap.index[word]
	return ok
}

func (s *FileStore) read() (*snapshot, error) {
	snap := &snapshot{index: make(map[string]int)}

	contents, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if s.requireExisting {
			return nil, fmt.Errorf("%w: %s", ErrStorageMissing, s.path)
		}
		return snap, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", s.path, err)
	}
	if len(bytes.TrimSpace(contents)) == 0 {
		return snap, nil
	}

	var objects []map[string]json.RawMessage
	if err := json.Unmarshal(contents, &objects); err != nil {
		return nil, fmt.Errorf("%w: json.Unmarshal(%s) > %w", ErrStorageCorrupt, s.path, err)
	}
	for _, object := range objects {
		words := make([]string, 0, len(object))
		for word := range object {
			words = append(words, word)
		}
		sort.Strings(words)

		for _, word := range words {
			if snap.has(word) {
				slog.Default().Warn("duplicate word in dictionary storage, keeping the first one",
					"path", s.path,
					"word", word,
				)
				continue
			}
			snap.index[word] = len(snap.records)
			snap.records = append(snap.records, record{word: word, raw: object[word]})
		}
	}
	return snap, nil
}

func decodeRecord(path string, r record) (Entry, error) {
	var entry Entry
	if err := json.Unmarshal(r.raw, &entry); err != nil {
		return Entry{}, fmt.Errorf("%w: word %q in %s > %w", ErrStorageCorrupt, r.word, path, err)
	}
	return entry, nil
}

// Load decodes the whole store in file order.
func (s *FileStore) Load() ([]StoredEntry, error) {
	snap, err := s.read()
	if err != nil {
		return nil, err
	}

	entries := make([]StoredEntry, 0, len(snap.records))
	for _, r := range snap.records {
		entry, err := decodeRecord(s.path, r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, StoredEntry{Word: r.word, Entry: entry})
	}
	return entries, nil
}

func (s *FileStore) Get(ctx context.Context, word string) (Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}

	snap, err := s.read()
	if err != nil {
		return Entry{}, false, err
	}
	i, ok := snap.index[word]
	if !ok {
		return Entry{}, false, nil
	}
	entry, err := decodeRecord(s.path, snap.records[i])
	if err != nil {
		return Entry{}, false, err
	}
	return entry, true, nil
}

func (s *FileStore) Has(ctx context.Context, word string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	snap, err := s.read()
	if err != nil {
		return false, err
	}
	return snap.has(word), nil
}

// PutIfAbsent appends the entry and atomically rewrites the file. The
// presence check happens on a fresh read while holding both the in-process
// mutex and the file lock, so an existing word is never overwritten.
func (s *FileStore) PutIfAbsent(ctx context.Context, word string, entry Entry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false, fmt.Errorf("%w: os.MkdirAll > %w", ErrWriteFailure, err)
	}
	unlock, err := s.lock(ctx)
	if err != nil {
		return false, err
	}
	defer unlock()

	snap, err := s.read()
	if err != nil {
		return false, err
	}
	if snap.has(word) {
		return false, nil
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return false, fmt.Errorf("%w: json.Marshal > %w", ErrWriteFailure, err)
	}
	snap.records = append(snap.records, record{word: word, raw: raw})

	contents, err := encodeRecords(snap.records)
	if err != nil {
		return false, fmt.Errorf("%w: encodeRecords > %w", ErrWriteFailure, err)
	}
	if err := writeFileAtomic(s.path, contents); err != nil {
		return false, fmt.Errorf("%w: writeFileAtomic(%s) > %w", ErrWriteFailure, s.path, err)
	}
	return true, nil
}

func encodeRecords(records []record) ([]byte, error) {
	objects := make([]map[string]json.RawMessage, 0, len(records))
	for _, r := range records {
		objects = append(objects, map[string]json.RawMessage{r.word: r.raw})
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(objects); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lock takes an advisory lock on <path>.lock. The kernel drops it when the
// holder dies, so a crashed writer never leaves the store locked. The lock
// file itself stays on disk.
func (s *FileStore) lock(ctx context.Context) (func(), error) {
	lockPath := s.lockPath()
	fileLock := flock.New(lockPath)
	err := retry.Do(
		func() error {
			locked, err := fileLock.TryLock()
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if !locked {
				return errStoreLocked
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.lockAttempts),
		retry.Delay(s.lockDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: lock %s > %w", ErrWriteFailure, lockPath, err)
	}

	return func() {
		if err := fileLock.Unlock(); err != nil {
			slog.Default().Warn("failed to release the dictionary lock",
				"path", lockPath,
				"error", err,
			)
		}
	}, nil
}

// writeFileAtomic writes to a temporary file in the same directory and
// renames it over path, so readers see either the old or the new contents.
func writeFileAtomic(path string, contents []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dictionary-*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp > %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return fmt.Errorf("tmp.Chmod > %w", err)
	}
	if _, err := tmp.Write(contents); err != nil {
		cleanup()
		return fmt.Errorf("tmp.Write > %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("tmp.Sync > %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("tmp.Close > %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("os.Rename > %w", err)
	}

	// best effort: persist the rename itself
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

var _ Store = (*FileStore)(nil)
