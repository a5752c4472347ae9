// Package freedict fetches entries from the Free Dictionary API
// (https://dictionaryapi.dev).
package freedict

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/at-ishikawa/lookword/internal/dictionary"
	"resty.dev/v3"
)

const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// partOfSpeechAliases maps the API's labels onto the dictionary vocabulary.
var partOfSpeechAliases = map[string]string{
	"exclamation": "interjection",
}

type Fetcher struct {
	httpClient *resty.Client
	log        *slog.Logger
}

func NewFetcher(baseURL string, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Fetcher{
		httpClient: client,
		log:        logger.With("fetcher", "freedict"),
	}
}

func (f *Fetcher) Close() error {
	return f.httpClient.Close()
}

func (f *Fetcher) Fetch(ctx context.Context, word string) ([]dictionary.Entry, error) {
	f.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	response, err := f.httpClient.R().
		SetContext(ctx).
		SetResult(&[]apiEntry{}).
		Get("/" + url.PathEscape(word))
	if err != nil {
		return nil, fmt.Errorf("%w: httpClient.Get > %w", dictionary.ErrRemoteUnavailable, err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if response.IsError() {
		return nil, fmt.Errorf("%w: response error %d: %s", dictionary.ErrRemoteUnavailable, response.StatusCode(), response.String())
	}

	entries, ok := response.Result().(*[]apiEntry)
	if !ok || entries == nil {
		return nil, fmt.Errorf("%w: unexpected response body: %s", dictionary.ErrRemoteUnavailable, response.String())
	}

	candidates := make([]dictionary.Entry, 0, len(*entries))
	for _, entry := range *entries {
		candidates = append(candidates, toEntry(entry))
	}
	f.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

func toEntry(entry apiEntry) dictionary.Entry {
	result := dictionary.Entry{
		Pronunciations: dictionary.Pronunciations{
			Audio: []string{},
			Text:  []string{},
		},
		Etymology:   entry.Origin,
		Definitions: make([]dictionary.Definition, 0, len(entry.Meanings)),
	}

	phonetics := entry.Phonetics
	if len(phonetics) == 0 && entry.Phonetic != "" {
		phonetics = []apiPhonetic{{Text: entry.Phonetic}}
	}
	for _, phonetic := range phonetics {
		if phonetic.Text != "" {
			result.Pronunciations.Text = append(result.Pronunciations.Text, "IPA: "+phonetic.Text)
		}
		if phonetic.Audio != "" {
			result.Pronunciations.Audio = append(result.Pronunciations.Audio, phonetic.Audio)
		}
	}

	for _, meaning := range entry.Meanings {
		partOfSpeech := meaning.PartOfSpeech
		if alias, ok := partOfSpeechAliases[partOfSpeech]; ok {
			partOfSpeech = alias
		}

		definition := dictionary.Definition{
			PartOfSpeech: partOfSpeech,
			Text:         make([]string, 0, len(meaning.Definitions)),
			RelatedWords: []dictionary.RelatedGroup{},
			Examples:     []string{},
		}
		synonyms := append([]string{}, meaning.Synonyms...)
		antonyms := append([]string{}, meaning.Antonyms...)
		for _, d := range meaning.Definitions {
			definition.Text = append(definition.Text, d.Definition)
			if d.Example != "" {
				definition.Examples = append(definition.Examples, d.Example)
			}
			synonyms = append(synonyms, d.Synonyms...)
			antonyms = append(antonyms, d.Antonyms...)
		}
		if len(synonyms) > 0 {
			definition.RelatedWords = append(definition.RelatedWords, dictionary.RelatedGroup{RelationshipType: "synonyms", Words: synonyms})
		}
		if len(antonyms) > 0 {
			definition.RelatedWords = append(definition.RelatedWords, dictionary.RelatedGroup{RelationshipType: "antonyms", Words: antonyms})
		}
		result.Definitions = append(result.Definitions, definition)
	}
	return result
}

var _ dictionary.Fetcher = (*Fetcher)(nil)
