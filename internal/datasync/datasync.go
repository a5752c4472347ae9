// Package datasync mirrors the dictionary store into the database and
// exports stored entries.
package datasync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/at-ishikawa/lookword/internal/dictionary"
)

// ImportResult tracks counts of a sync run.
type ImportResult struct {
	New     int
	Skipped int
	Updated int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer copies stored entries into the database mirror.
type Importer struct {
	dictionaryRepo dictionary.DictionaryRepository
	writer         io.Writer
}

func NewImporter(dictionaryRepo dictionary.DictionaryRepository, writer io.Writer) *Importer {
	return &Importer{
		dictionaryRepo: dictionaryRepo,
		writer:         writer,
	}
}

// ImportEntries inserts words the database does not have yet. Existing rows
// are skipped unless UpdateExisting is set and their entry differs.
func (imp *Importer) ImportEntries(ctx context.Context, entries []dictionary.StoredEntry, source string, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult

	for _, stored := range entries {
		row, err := dictionary.NewEntryRow(stored.Word, source, stored.Entry)
		if err != nil {
			return nil, fmt.Errorf("NewEntryRow(%s) > %w", stored.Word, err)
		}

		existing, err := imp.dictionaryRepo.FindByWord(ctx, stored.Word)
		if err != nil {
			return nil, fmt.Errorf("FindByWord(%s) > %w", stored.Word, err)
		}

		if existing != nil {
			if !opts.UpdateExisting || sameJSON(existing.Entry, row.Entry) {
				fmt.Fprintf(imp.writer, "  [SKIP]  %q\n", stored.Word)
				result.Skipped++
				continue
			}
			if !opts.DryRun {
				if err := imp.dictionaryRepo.Upsert(ctx, &row); err != nil {
					return nil, fmt.Errorf("Upsert(%s) > %w", stored.Word, err)
				}
			}
			fmt.Fprintf(imp.writer, "  [UPDATE]  %q\n", stored.Word)
			result.Updated++
			continue
		}

		if !opts.DryRun {
			if err := imp.dictionaryRepo.Insert(ctx, &row); err != nil {
				return nil, fmt.Errorf("Insert(%s) > %w", stored.Word, err)
			}
		}
		fmt.Fprintf(imp.writer, "  [NEW]  %q\n", stored.Word)
		result.New++
	}

	return &result, nil
}

func sameJSON(a, b json.RawMessage) bool {
	var compactA, compactB bytes.Buffer
	if err := json.Compact(&compactA, a); err != nil {
		return false
	}
	if err := json.Compact(&compactB, b); err != nil {
		return false
	}
	return bytes.Equal(compactA.Bytes(), compactB.Bytes())
}

// Exporter reads the database mirror back into stored entries.
type Exporter struct {
	dictionaryRepo dictionary.DictionaryRepository
}

func NewExporter(dictionaryRepo dictionary.DictionaryRepository) *Exporter {
	return &Exporter{dictionaryRepo: dictionaryRepo}
}

func (e *Exporter) Export(ctx context.Context) ([]dictionary.StoredEntry, error) {
	rows, err := e.dictionaryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dictionaryRepo.FindAll() > %w", err)
	}

	entries := make([]dictionary.StoredEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.Decode()
		if err != nil {
			return nil, fmt.Errorf("row.Decode() > %w", err)
		}
		entries = append(entries, dictionary.StoredEntry{Word: row.Word, Entry: entry})
	}
	return entries, nil
}
