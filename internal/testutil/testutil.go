// Package testutil provides shared test helpers for creating config files and dictionary fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/at-ishikawa/lookword/internal/dictionary"
	"github.com/stretchr/testify/require"
)

// ConfigOption configures optional fields of the generated config file.
type ConfigOption func(*testConfig)

type testConfig struct {
	source          string
	baseURL         string
	requireExisting bool
}

// WithFreeDictionary makes the Free Dictionary API at baseURL the remote source.
func WithFreeDictionary(baseURL string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.source = "free_dictionary"
		cfg.baseURL = baseURL
	}
}

func WithRequireExisting() ConfigOption {
	return func(cfg *testConfig) {
		cfg.requireExisting = true
	}
}

// DictionaryPath is where SetupTestConfig points the file store.
func DictionaryPath(tmpDir string) string {
	return filepath.Join(tmpDir, "dictionaries", "dictionary.json")
}

// SetupTestConfig creates a minimal config file and the dictionaries directory for testing.
// Colors are disabled and the remote source is unreachable unless an option says otherwise.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{
		source:  "free_dictionary",
		baseURL: "http://127.0.0.1:1",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, d := range []string{"dictionaries", "outputs"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`dictionary:
  source: %s
  timeout_seconds: 5
  free_dictionary:
    base_url: %s
cache:
  backend: file
  file: %s
  require_existing: %t
render:
  color: never
outputs:
  pdf_directory: %s
`,
		cfg.source,
		cfg.baseURL,
		DictionaryPath(tmpDir),
		cfg.requireExisting,
		filepath.Join(tmpDir, "outputs"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// CreateDictionary stores a one-sense noun entry for each word, in order.
func CreateDictionary(t *testing.T, path string, words ...string) {
	t.Helper()

	store := dictionary.NewFileStore(path)
	for _, word := range words {
		written, err := store.PutIfAbsent(context.Background(), word, dictionary.Entry{
			Definitions: []dictionary.Definition{
				{PartOfSpeech: "noun", Text: []string{"a " + word}},
			},
		})
		require.NoError(t, err)
		require.True(t, written, "word %s should be new", word)
	}
}
