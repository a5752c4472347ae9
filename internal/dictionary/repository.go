package dictionary

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// EntryRow is a stored entry mirrored into the dictionary_entries table.
type EntryRow struct {
	Word      string          `db:"word"`
	Source    string          `db:"source"`
	Entry     json.RawMessage `db:"entry"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// NewEntryRow encodes the entry for the entry column.
func NewEntryRow(word string, source string, entry Entry) (EntryRow, error) {
	encoded, err := json.Marshal(entry)
	if err != nil {
		return EntryRow{}, fmt.Errorf("json.Marshal > %w", err)
	}
	return EntryRow{
		Word:   word,
		Source: source,
		Entry:  encoded,
	}, nil
}

// Decode returns the Entry held in the entry column.
func (row EntryRow) Decode() (Entry, error) {
	var entry Entry
	if err := json.Unmarshal(row.Entry, &entry); err != nil {
		return Entry{}, fmt.Errorf("json.Unmarshal(%s) > %w", row.Word, err)
	}
	return entry, nil
}

// DictionaryRepository defines operations for the database mirror of the store.
//
//go:generate mockgen -source=repository.go -destination=../mocks/dictionary/mock_repository.go -package=mock_dictionary
type DictionaryRepository interface {
	FindAll(ctx context.Context) ([]EntryRow, error)
	FindByWord(ctx context.Context, word string) (*EntryRow, error)
	Insert(ctx context.Context, row *EntryRow) error
	Upsert(ctx context.Context, row *EntryRow) error
}

// DBDictionaryRepository implements DictionaryRepository using MySQL.
type DBDictionaryRepository struct {
	db *sqlx.DB
}

// NewDBDictionaryRepository creates a new DBDictionaryRepository.
func NewDBDictionaryRepository(db *sqlx.DB) *DBDictionaryRepository {
	return &DBDictionaryRepository{db: db}
}

// FindAll returns all mirrored entries ordered by word.
func (r *DBDictionaryRepository) FindAll(ctx context.Context) ([]EntryRow, error) {
	var rows []EntryRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM dictionary_entries ORDER BY word"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(dictionary_entries) > %w", err)
	}
	return rows, nil
}

// FindByWord returns a mirrored entry by word, or nil if not found.
func (r *DBDictionaryRepository) FindByWord(ctx context.Context, word string) (*EntryRow, error) {
	var row EntryRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM dictionary_entries WHERE word = ?", word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(dictionary_entry) > %w", err)
	}
	return &row, nil
}

// Insert adds a new row and fails if the word already exists.
func (r *DBDictionaryRepository) Insert(ctx context.Context, row *EntryRow) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dictionary_entries (word, source, entry) VALUES (?, ?, ?)`,
		row.Word, row.Source, row.Entry)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert dictionary_entry) > %w", err)
	}
	return nil
}

// Upsert inserts or replaces the entry of a word.
func (r *DBDictionaryRepository) Upsert(ctx context.Context, row *EntryRow) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dictionary_entries (word, source, entry)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE source = VALUES(source), entry = VALUES(entry)`,
		row.Word, row.Source, row.Entry)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert dictionary_entry) > %w", err)
	}
	return nil
}
