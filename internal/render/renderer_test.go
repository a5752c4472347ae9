package render

import (
	"strings"
	"testing"

	"github.com/at-ishikawa/lookword/internal/dictionary"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestRenderer_Render(t *testing.T) {
	tests := []struct {
		name  string
		entry dictionary.Entry
		word  string
		want  string
	}{
		{
			name: "noun without pronunciation or etymology",
			word: "test",
			entry: dictionary.Entry{
				Pronunciations: dictionary.Pronunciations{Audio: []string{}, Text: []string{}},
				Definitions: []dictionary.Definition{
					{PartOfSpeech: "noun", Text: []string{"a trial"}, RelatedWords: []dictionary.RelatedGroup{}, Examples: []string{}},
				},
			},
			want: "\ntest\n" +
				"\n" +
				"Noun:\n" +
				"\t1. a trial\n",
		},
		{
			name: "every section",
			word: "word",
			entry: dictionary.Entry{
				Pronunciations: dictionary.Pronunciations{
					Text: []string{"rhymes with X", "IPA: /wɜːd/", "IPA: /alt/"},
				},
				Etymology: "From Old English word.",
				Definitions: []dictionary.Definition{
					{
						PartOfSpeech: "noun",
						Text:         []string{"A unit of language.", "A promise."},
						RelatedWords: []dictionary.RelatedGroup{
							{RelationshipType: "synonyms", Words: []string{"term", "See also Thesaurus:word", "vocable"}},
							{RelationshipType: "antonyms", Words: []string{"silence"}},
						},
						Examples: []string{"short", "this one is the shortest valid", "a considerably much longer example sentence here"},
					},
					{
						PartOfSpeech: "verb",
						Text:         []string{"To phrase."},
					},
				},
			},
			want: "\nword\n" +
				"  /wɜːd/\n" +
				"Etymology:\n" +
				"\tFrom Old English word.\n\n" +
				"Noun:\n" +
				"\t1. A unit of language.\n" +
				"\t2. A promise.\n" +
				"\tsynonyms: term vocable\n" +
				"\n" +
				"\tantonyms: silence\n" +
				"\n" +
				"\tthis one is the shortest valid\n" +
				"Verb:\n" +
				"\t1. To phrase.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewRenderer(PlainEmphasis{})
			got := renderer.Render(tt.entry, tt.word)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, renderer.Render(tt.entry, tt.word))
		})
	}
}

func TestRenderer_Render_ColorEmphasis(t *testing.T) {
	entry := dictionary.Entry{
		Etymology: "Old.",
		Definitions: []dictionary.Definition{
			{PartOfSpeech: "adjective", Text: []string{"aged"}},
		},
	}

	got := NewRenderer(NewColorEmphasis()).Render(entry, "old")

	style := func(attributes ...color.Attribute) *color.Color {
		c := color.New(attributes...)
		c.EnableColor()
		return c
	}
	assert.Contains(t, got, style(color.Bold).Sprint("old"))
	assert.Contains(t, got, style(color.Bold, color.FgYellow, color.BgBlack).Sprint("Etymology:"))
	assert.Contains(t, got, style(color.FgHiGreen, color.Underline).Sprint("Adjective:"))
	assert.Contains(t, got, "\t1. aged\n")
}

func TestRenderer_Pronunciation(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  string
	}{
		{
			name:  "first IPA only",
			texts: []string{"rhymes with X", "IPA: /wɜːd/", "IPA: /alt/"},
			want:  "  /wɜːd/\n",
		},
		{
			name:  "marker in the middle of the text",
			texts: []string{"(Received Pronunciation) IPA: /tɛst/"},
			want:  "  /tɛst/\n",
		},
		{
			name:  "no IPA is a blank line",
			texts: []string{"Rhymes: -ɛst"},
			want:  "\n",
		},
		{
			name: "no texts",
			want: "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRenderer(nil).pronunciation(tt.texts))
		})
	}
}

func TestSelectExample(t *testing.T) {
	tests := []struct {
		name     string
		examples []string
		want     string
	}{
		{
			name:     "short seed is replaced by the shortest valid example",
			examples: []string{"short", "this one is the shortest valid", "a considerably much longer example sentence here"},
			want:     "this one is the shortest valid",
		},
		{
			name:     "long seed is replaced by a shorter valid example",
			examples: []string{"a considerably much longer example sentence here", "tiny", "medium length"},
			want:     "medium length",
		},
		{
			name:     "no valid example keeps the seed",
			examples: []string{"short", "ok"},
			want:     "short",
		},
		{
			name:     "exactly ten characters is not valid",
			examples: []string{"0123456789", "a longer example"},
			want:     "a longer example",
		},
		{
			name:     "ties keep the earlier example",
			examples: []string{"first valid one", "other valid one"},
			want:     "first valid one",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectExample(tt.examples))
		})
	}
}

func TestRenderer_RelatedWords(t *testing.T) {
	tests := []struct {
		name   string
		groups []dictionary.RelatedGroup
		want   string
	}{
		{
			name: "no groups",
			want: "",
		},
		{
			name: "thesaurus references are dropped",
			groups: []dictionary.RelatedGroup{
				{RelationshipType: "synonyms", Words: []string{"See also Thesaurus:test", "trial"}},
			},
			want: "\tsynonyms: trial\n",
		},
		{
			name: "groups are separated by a blank line",
			groups: []dictionary.RelatedGroup{
				{RelationshipType: "synonyms", Words: []string{"trial"}},
				{RelationshipType: "antonyms", Words: []string{"certainty"}},
			},
			want: "\tsynonyms: trial\n\n\tantonyms: certainty\n",
		},
		{
			name: "a group left empty after filtering",
			groups: []dictionary.RelatedGroup{
				{RelationshipType: "synonyms", Words: []string{"See also Thesaurus:test"}},
				{RelationshipType: "antonyms", Words: []string{"certainty"}},
			},
			want: "\tantonyms: certainty\n",
		},
		{
			name: "only filtered words leave a bare newline",
			groups: []dictionary.RelatedGroup{
				{RelationshipType: "synonyms", Words: []string{"See also Thesaurus:test"}},
			},
			want: "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRenderer(PlainEmphasis{}).relatedWords(tt.groups))
		})
	}
}

func TestRenderer_SensesHangingIndent(t *testing.T) {
	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}
	renderer := NewRenderer(PlainEmphasis{})

	got := renderer.senses([]string{words(30)})
	assert.Equal(t, "\t1. "+words(19)+"\n\t   "+words(11)+"\n", got)

	texts := make([]string, 10)
	for i := range texts {
		texts[i] = "x"
	}
	texts[9] = words(30)
	got = renderer.senses(texts)
	// continuation lines align past "10. "
	assert.True(t, strings.HasSuffix(got, "\t10. "+words(19)+"\n\t    "+words(11)+"\n"), got)
}

func TestFill(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		first indent
		next  indent
		want  string
	}{
		{
			name:  "empty text",
			text:  "  ",
			width: 10,
			first: plainIndent("\t"),
			next:  plainIndent("\t"),
			want:  "",
		},
		{
			name:  "fits on one line",
			text:  "a  b\nc",
			width: 10,
			first: plainIndent("> "),
			next:  plainIndent("  "),
			want:  "> a b c",
		},
		{
			name:  "wraps with the next indent",
			text:  "one two three four",
			width: 10,
			first: plainIndent("> "),
			next:  plainIndent("  "),
			want:  "> one two\n  three\n  four",
		},
		{
			name:  "styled indent counts its visible width",
			text:  "one two three",
			width: 9,
			first: indent{text: "\x1b[3m>\x1b[0m", width: 1},
			next:  plainIndent(""),
			want:  "\x1b[3m>\x1b[0mone two\nthree",
		},
		{
			name:  "long words are split",
			text:  "abcdefghij",
			width: 5,
			first: plainIndent(""),
			next:  plainIndent(""),
			want:  "abcde\nfghij",
		},
		{
			name:  "runes are counted, not bytes",
			text:  "wɜːd wɜːd",
			width: 9,
			first: plainIndent(""),
			next:  plainIndent(""),
			want:  "wɜːd wɜːd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fill(tt.text, tt.width, tt.first, tt.next))
		})
	}
}

func TestPlainEmphasis(t *testing.T) {
	for _, role := range []Role{RoleHeading, RoleLabel, RoleStrong, RoleItalic} {
		assert.Equal(t, "text", PlainEmphasis{}.Apply(role, "text"))
	}
}
