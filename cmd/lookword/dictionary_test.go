package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lookword/internal/config"
	"github.com/at-ishikawa/lookword/internal/dictionary/freedict"
	"github.com/at-ishikawa/lookword/internal/dictionary/rapidapi"
	"github.com/at-ishikawa/lookword/internal/dictionary/wiktionary"
)

func TestSource_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Source
		wantErr bool
	}{
		{name: "wiktionary", value: "wiktionary", want: SourceWiktionary},
		{name: "free dictionary", value: "free_dictionary", want: SourceFreeDictionary},
		{name: "words api", value: "words_api", want: SourceWordsAPI},
		{name: "invalid source value", value: "invalid_api", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var source Source
			err := source.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid source")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, source)
		})
	}
}

func TestSource_StringAndType(t *testing.T) {
	source := SourceWiktionary
	assert.Equal(t, "wiktionary", source.String())
	assert.Equal(t, "Source", source.Type())
}

func TestNewLookupCommand(t *testing.T) {
	cmd := newLookupCommand()

	assert.Equal(t, "lookup [word]", cmd.Use)
	for _, name := range []string{"source", "no-color", "pdf"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}))
	assert.NoError(t, cmd.Args(cmd, nil))
}

func TestNewFetcher(t *testing.T) {
	cfg := config.DictionaryConfig{
		TimeoutSeconds: 1,
		Wiktionary:     config.WiktionaryConfig{BaseURL: "https://en.wiktionary.org"},
		FreeDictionary: config.FreeDictionaryConfig{BaseURL: "https://api.dictionaryapi.dev/api/v2/entries/en"},
	}
	withRapidAPI := cfg
	withRapidAPI.RapidAPI = config.RapidAPIConfig{Host: "wordsapiv1.p.rapidapi.com", Key: "key"}

	tests := []struct {
		name    string
		cfg     config.DictionaryConfig
		source  Source
		want    any
		wantErr bool
	}{
		{name: "wiktionary", cfg: cfg, source: SourceWiktionary, want: &wiktionary.Fetcher{}},
		{name: "free dictionary", cfg: cfg, source: SourceFreeDictionary, want: &freedict.Fetcher{}},
		{name: "words api", cfg: withRapidAPI, source: SourceWordsAPI, want: &rapidapi.Fetcher{}},
		{name: "words api without credentials", cfg: cfg, source: SourceWordsAPI, wantErr: true},
		{name: "unknown source", cfg: cfg, source: Source("unknown"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newFetcher(tt.cfg, tt.source)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
			closeFetcher(got)
		})
	}
}

func TestColorEnabled(t *testing.T) {
	tests := []struct {
		name    string
		setting string
		noColor bool
		want    bool
	}{
		{name: "always", setting: config.ColorAlways, want: true},
		{name: "never", setting: config.ColorNever, want: false},
		{name: "no-color flag wins", setting: config.ColorAlways, noColor: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, colorEnabled(tt.setting, tt.noColor))
		})
	}
}
