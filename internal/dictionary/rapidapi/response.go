// https://rapidapi.com/dpventures/api/wordsapi
package rapidapi

import (
	"encoding/json"
	"fmt"

	"github.com/at-ishikawa/lookword/internal/dictionary"
)

type Response struct {
	Word          string        `json:"word"`
	Syllables     Syllable      `json:"syllables"`
	Frequency     float64       `json:"frequency"`
	Pronunciation Pronunciation `json:"pronunciation"`
	Results       []Result      `json:"results"`
}

type Syllable struct {
	Count int      `json:"count"`
	List  []string `json:"list"`
}

type Pronunciation struct {
	All string `json:"all"`
}

func (p *Pronunciation) UnmarshalJSON(data []byte) error {
	// pronunciation can be either a struct or a simple string
	if len(data) > 0 && data[0] == '{' {
		var all struct {
			All string `json:"all"`
		}
		if err := json.Unmarshal(data, &all); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		p.All = all.All
		return nil
	}

	var all string
	if err := json.Unmarshal(data, &all); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	p.All = all
	return nil
}

type Result struct {
	Definition   string   `json:"definition"`
	Derivation   []string `json:"derivation,omitempty"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Synonyms     []string `json:"synonyms"`
	SimilarTo    []string `json:"similarTo,omitempty"`
	TypeOf       []string `json:"typeOf,omitempty"`
	Examples     []string `json:"examples"`
}

// ToEntry groups results by part of speech in first-seen order. WordsAPI
// has no etymology or audio.
func (r Response) ToEntry() dictionary.Entry {
	entry := dictionary.Entry{
		Pronunciations: dictionary.Pronunciations{
			Audio: []string{},
			Text:  []string{},
		},
		Definitions: []dictionary.Definition{},
	}
	if r.Pronunciation.All != "" {
		entry.Pronunciations.Text = append(entry.Pronunciations.Text, fmt.Sprintf("IPA: /%s/", r.Pronunciation.All))
	}

	indexes := make(map[string]int)
	for _, result := range r.Results {
		i, ok := indexes[result.PartOfSpeech]
		if !ok {
			i = len(entry.Definitions)
			indexes[result.PartOfSpeech] = i
			entry.Definitions = append(entry.Definitions, dictionary.Definition{
				PartOfSpeech: result.PartOfSpeech,
				Text:         []string{},
				RelatedWords: []dictionary.RelatedGroup{},
				Examples:     []string{},
			})
		}

		definition := &entry.Definitions[i]
		definition.Text = append(definition.Text, result.Definition)
		definition.Examples = append(definition.Examples, result.Examples...)
		definition.RelatedWords = appendRelated(definition.RelatedWords, "synonyms", result.Synonyms)
		definition.RelatedWords = appendRelated(definition.RelatedWords, "similar to", result.SimilarTo)
		definition.RelatedWords = appendRelated(definition.RelatedWords, "type of", result.TypeOf)
		definition.RelatedWords = appendRelated(definition.RelatedWords, "derivation", result.Derivation)
	}
	return entry
}

// appendRelated merges words into the group of the same relationship.
func appendRelated(groups []dictionary.RelatedGroup, relationshipType string, words []string) []dictionary.RelatedGroup {
	if len(words) == 0 {
		return groups
	}
	for i := range groups {
		if groups[i].RelationshipType == relationshipType {
			groups[i].Words = append(groups[i].Words, words...)
			return groups
		}
	}
	return append(groups, dictionary.RelatedGroup{
		RelationshipType: relationshipType,
		Words:            append([]string{}, words...),
	})
}
