package dictionary

import (
	"strings"
)

// PartOfSpeech is one of the word classes a definition can belong to.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "noun"
	PartOfSpeechPronoun      PartOfSpeech = "pronoun"
	PartOfSpeechAdjective    PartOfSpeech = "adjective"
	PartOfSpeechDeterminer   PartOfSpeech = "determiner"
	PartOfSpeechVerb         PartOfSpeech = "verb"
	PartOfSpeechAdverb       PartOfSpeech = "adverb"
	PartOfSpeechPreposition  PartOfSpeech = "preposition"
	PartOfSpeechConjunction  PartOfSpeech = "conjunction"
	PartOfSpeechInterjection PartOfSpeech = "interjection"
)

var allPartsOfSpeech = []PartOfSpeech{
	PartOfSpeechNoun,
	PartOfSpeechPronoun,
	PartOfSpeechAdjective,
	PartOfSpeechDeterminer,
	PartOfSpeechVerb,
	PartOfSpeechAdverb,
	PartOfSpeechPreposition,
	PartOfSpeechConjunction,
	PartOfSpeechInterjection,
}

// ParsePartOfSpeech matches s case-insensitively against the known parts of speech.
func ParsePartOfSpeech(s string) (PartOfSpeech, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, pos := range allPartsOfSpeech {
		if normalized == string(pos) {
			return pos, true
		}
	}
	return "", false
}

// Entry is the dictionary data for a single word.
type Entry struct {
	Pronunciations Pronunciations `json:"pronunciations" yaml:"pronunciations"`
	Etymology      string         `json:"etymology" yaml:"etymology"`
	Definitions    []Definition   `json:"definitions" yaml:"definitions"`
}

type Pronunciations struct {
	Audio []string `json:"audio" yaml:"audio"`
	Text  []string `json:"text" yaml:"text"`
}

type Definition struct {
	PartOfSpeech string         `json:"partOfSpeech" yaml:"part_of_speech"`
	Text         []string       `json:"text" yaml:"text"`
	RelatedWords []RelatedGroup `json:"relatedWords" yaml:"related_words"`
	Examples     []string       `json:"examples" yaml:"examples"`
}

type RelatedGroup struct {
	RelationshipType string   `json:"relationshipType" yaml:"relationship_type"`
	Words            []string `json:"words" yaml:"words"`
}

// Normalize returns a copy of the entry with parts of speech lowercased and
// definitions outside the known vocabulary removed. Nil slices become empty
// so that the stored JSON always carries every field.
func (e Entry) Normalize() Entry {
	normalized := Entry{
		Pronunciations: Pronunciations{
			Audio: nonNil(e.Pronunciations.Audio),
			Text:  nonNil(e.Pronunciations.Text),
		},
		Etymology:   strings.TrimSpace(e.Etymology),
		Definitions: make([]Definition, 0, len(e.Definitions)),
	}
	for _, definition := range e.Definitions {
		pos, ok := ParsePartOfSpeech(definition.PartOfSpeech)
		if !ok {
			continue
		}

		relatedWords := make([]RelatedGroup, 0, len(definition.RelatedWords))
		for _, group := range definition.RelatedWords {
			relatedWords = append(relatedWords, RelatedGroup{
				RelationshipType: group.RelationshipType,
				Words:            nonNil(group.Words),
			})
		}
		normalized.Definitions = append(normalized.Definitions, Definition{
			PartOfSpeech: string(pos),
			Text:         nonNil(definition.Text),
			RelatedWords: relatedWords,
			Examples:     nonNil(definition.Examples),
		})
	}
	return normalized
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// NormalizeWord is the key form used for both the cache and the remote source.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
