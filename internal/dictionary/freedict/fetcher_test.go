package freedict

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/at-ishikawa/lookword/internal/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetcher_Fetch_Success(t *testing.T) {
	body := `[{
		"word": "hello",
		"phonetics": [
			{"text": "/həˈloʊ/", "audio": "https://example.com/hello-us.mp3"},
			{"text": "", "audio": "https://example.com/hello-uk.mp3"}
		],
		"origin": "early 19th century: variant of earlier hollo.",
		"meanings": [
			{
				"partOfSpeech": "noun",
				"definitions": [
					{"definition": "A greeting.", "example": "She gave a cheerful hello.", "synonyms": ["greeting"]}
				],
				"synonyms": ["salutation"],
				"antonyms": []
			},
			{
				"partOfSpeech": "exclamation",
				"definitions": [
					{"definition": "Used as a greeting.", "example": ""},
					{"definition": "Used to attract attention.", "antonyms": ["goodbye"]}
				]
			}
		]
	}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hello", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	fetcher := NewFetcher(srv.URL, 0, newTestLogger())
	defer fetcher.Close()

	got, err := fetcher.Fetch(context.Background(), "hello")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, dictionary.Entry{
		Pronunciations: dictionary.Pronunciations{
			Audio: []string{"https://example.com/hello-us.mp3", "https://example.com/hello-uk.mp3"},
			Text:  []string{"IPA: /həˈloʊ/"},
		},
		Etymology: "early 19th century: variant of earlier hollo.",
		Definitions: []dictionary.Definition{
			{
				PartOfSpeech: "noun",
				Text:         []string{"A greeting."},
				RelatedWords: []dictionary.RelatedGroup{
					{RelationshipType: "synonyms", Words: []string{"salutation", "greeting"}},
				},
				Examples: []string{"She gave a cheerful hello."},
			},
			{
				PartOfSpeech: "interjection",
				Text:         []string{"Used as a greeting.", "Used to attract attention."},
				RelatedWords: []dictionary.RelatedGroup{
					{RelationshipType: "antonyms", Words: []string{"goodbye"}},
				},
				Examples: []string{},
			},
		},
	}, got[0])
}

func TestFetcher_Fetch_Status(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:   "not found is no candidates",
			status: http.StatusNotFound,
			body:   `{"title":"No Definitions Found"}`,
		},
		{
			name:    "server error",
			status:  http.StatusBadGateway,
			body:    `bad gateway`,
			wantErr: dictionary.ErrRemoteUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			fetcher := NewFetcher(srv.URL, 0, newTestLogger())
			defer fetcher.Close()

			got, err := fetcher.Fetch(context.Background(), "qwzx")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestToEntry_PhoneticFallback(t *testing.T) {
	got := toEntry(apiEntry{Word: "cat", Phonetic: "/kæt/"})
	assert.Equal(t, []string{"IPA: /kæt/"}, got.Pronunciations.Text)
	assert.Empty(t, got.Pronunciations.Audio)
	assert.Empty(t, got.Definitions)
}
