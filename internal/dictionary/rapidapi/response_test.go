package rapidapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/at-ishikawa/lookword/internal/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPronunciation_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantAll string
		wantErr bool
	}{
		{
			name:    "struct format",
			json:    `{"all": "həˈloʊ"}`,
			wantAll: "həˈloʊ",
		},
		{
			name:    "string format",
			json:    `"həˈloʊ"`,
			wantAll: "həˈloʊ",
		},
		{
			name:    "empty struct",
			json:    `{"all": ""}`,
			wantAll: "",
		},
		{
			name:    "number",
			json:    `1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Pronunciation
			err := json.Unmarshal([]byte(tt.json), &p)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAll, p.All)
		})
	}
}

func TestResponse_ToEntry(t *testing.T) {
	tests := []struct {
		name     string
		response Response
		want     dictionary.Entry
	}{
		{
			name: "results are grouped by part of speech",
			response: Response{
				Word:          "run",
				Pronunciation: Pronunciation{All: "rʌn"},
				Results: []Result{
					{PartOfSpeech: "verb", Definition: "move fast", Synonyms: []string{"sprint"}, Examples: []string{"run home"}},
					{PartOfSpeech: "noun", Definition: "a score in baseball"},
					{PartOfSpeech: "verb", Definition: "operate", Synonyms: []string{"operate"}, TypeOf: []string{"function"}},
				},
			},
			want: dictionary.Entry{
				Pronunciations: dictionary.Pronunciations{Audio: []string{}, Text: []string{"IPA: /rʌn/"}},
				Definitions: []dictionary.Definition{
					{
						PartOfSpeech: "verb",
						Text:         []string{"move fast", "operate"},
						RelatedWords: []dictionary.RelatedGroup{
							{RelationshipType: "synonyms", Words: []string{"sprint", "operate"}},
							{RelationshipType: "type of", Words: []string{"function"}},
						},
						Examples: []string{"run home"},
					},
					{
						PartOfSpeech: "noun",
						Text:         []string{"a score in baseball"},
						RelatedWords: []dictionary.RelatedGroup{},
						Examples:     []string{},
					},
				},
			},
		},
		{
			name:     "no results",
			response: Response{Word: "qwzx"},
			want: dictionary.Entry{
				Pronunciations: dictionary.Pronunciations{Audio: []string{}, Text: []string{}},
				Definitions:    []dictionary.Definition{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.response.ToEntry())
		})
	}
}

func TestFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCount  int
		wantErr    error
		wantFirstP string
	}{
		{
			name:       "found",
			status:     http.StatusOK,
			body:       `{"word":"hello","pronunciation":{"all":"həˈloʊ"},"results":[{"definition":"a greeting","partOfSpeech":"noun"}]}`,
			wantCount:  1,
			wantFirstP: "IPA: /həˈloʊ/",
		},
		{
			name:      "not found",
			status:    http.StatusNotFound,
			body:      `{"success":false,"message":"word not found"}`,
			wantCount: 0,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"message":"oops"}`,
			wantErr: dictionary.ErrRemoteUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/words/hello", r.URL.Path)
				assert.Equal(t, "test.rapidapi.com", r.Header.Get("x-rapidapi-host"))
				assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			fetcher := NewFetcher(Config{Host: "test.rapidapi.com", Key: "test-key", BaseURL: srv.URL})
			got, err := fetcher.Fetch(context.Background(), "hello")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, []string{tt.wantFirstP}, got[0].Pronunciations.Text)
			}
		})
	}
}

func TestFetcher_Fetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewFetcher(Config{Host: "test", BaseURL: srv.URL}).Fetch(context.Background(), "hello")
	assert.ErrorIs(t, err, dictionary.ErrRemoteUnavailable)
}
