// Package render turns a dictionary entry into the text block shown to the user.
package render

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/at-ishikawa/lookword/internal/dictionary"
)

const (
	Width = 100

	minExampleLength = 10
	thesaurusMarker  = "See also Thesaurus"
)

var ipaPattern = regexp.MustCompile(`IPA: .+`)

type Renderer struct {
	emphasis Emphasis
	width    int
}

func NewRenderer(emphasis Emphasis) *Renderer {
	if emphasis == nil {
		emphasis = PlainEmphasis{}
	}
	return &Renderer{
		emphasis: emphasis,
		width:    Width,
	}
}

// Render has no side effects; the same entry always renders to the same text.
func (r *Renderer) Render(entry dictionary.Entry, word string) string {
	fragments := []string{
		r.heading(word),
		r.pronunciation(entry.Pronunciations.Text),
		r.etymology(entry.Etymology),
	}
	for _, definition := range entry.Definitions {
		fragments = append(fragments,
			r.partOfSpeech(definition.PartOfSpeech),
			r.senses(definition.Text),
			r.relatedWords(definition.RelatedWords),
			r.example(definition.Examples),
		)
	}
	return strings.Join(fragments, "")
}

func (r *Renderer) heading(word string) string {
	return "\n" + r.emphasis.Apply(RoleHeading, word) + "\n"
}

// IPA returns the transcription of the first text carrying an "IPA: " marker.
func IPA(texts []string) (string, bool) {
	for _, text := range texts {
		match := ipaPattern.FindString(text)
		if match == "" {
			continue
		}
		return strings.ReplaceAll(match, "IPA: ", ""), true
	}
	return "", false
}

func (r *Renderer) pronunciation(texts []string) string {
	ipa, ok := IPA(texts)
	if !ok {
		return "\n"
	}
	return "  " + ipa + "\n"
}

func (r *Renderer) etymology(etymology string) string {
	if etymology == "" {
		return ""
	}
	body := fill(etymology, r.width, plainIndent("\t"), plainIndent("\t"))
	return r.emphasis.Apply(RoleLabel, "Etymology:") + "\n" + body + "\n\n"
}

func (r *Renderer) partOfSpeech(partOfSpeech string) string {
	title := cases.Title(language.English).String(partOfSpeech)
	return r.emphasis.Apply(RoleStrong, title+":") + "\n"
}

func (r *Renderer) senses(texts []string) string {
	var b strings.Builder
	for i, text := range texts {
		prefix := fmt.Sprintf("%d. ", i+1)
		first := plainIndent("\t" + prefix)
		next := plainIndent("\t" + strings.Repeat(" ", len(prefix)))
		b.WriteString(fill(text, r.width, first, next))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) relatedWords(groups []dictionary.RelatedGroup) string {
	if len(groups) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(groups))
	for _, group := range groups {
		prefix := "\t" + group.RelationshipType + ": "
		first := styledIndent(r.emphasis, RoleItalic, prefix)
		next := plainIndent("\t" + strings.Repeat(" ", utf8.RuneCountInString(prefix)))

		words := make([]string, 0, len(group.Words))
		for _, word := range group.Words {
			if strings.Contains(word, thesaurusMarker) {
				continue
			}
			words = append(words, word)
		}
		blocks = append(blocks, fill(strings.Join(words, " "), r.width, first, next))
	}

	block := strings.TrimRightFunc(strings.Join(blocks, "\n\n"), unicode.IsSpace)
	// a block whose words were all filtered out still ends its line
	return strings.TrimLeft(block, "\n") + "\n"
}

func (r *Renderer) example(examples []string) string {
	if len(examples) == 0 {
		return ""
	}
	selected := selectExample(examples)
	body := fill(selected, r.width, plainIndent("\t"), plainIndent("\t"))
	return "\n" + r.emphasis.Apply(RoleItalic, body) + "\n"
}

// selectExample returns the shortest example longer than minExampleLength
// characters. The running minimum is seeded with the first example, which
// is kept only when no example is long enough.
func selectExample(examples []string) string {
	selected := examples[0]
	selectedLength := utf8.RuneCountInString(selected)
	for _, example := range examples {
		length := utf8.RuneCountInString(example)
		if length <= minExampleLength {
			continue
		}
		if selectedLength <= minExampleLength || length < selectedLength {
			selected = example
			selectedLength = length
		}
	}
	return selected
}
