package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lookword/internal/dictionary"
)

func testEntryTemplate() EntryTemplate {
	return EntryTemplate{
		Word: "test",
		IPA:  "/tɛst/",
		Entry: dictionary.Entry{
			Etymology: "Old.",
			Definitions: []dictionary.Definition{
				{
					PartOfSpeech: "noun",
					Text:         []string{"a trial", "an exam"},
					RelatedWords: []dictionary.RelatedGroup{{RelationshipType: "synonyms", Words: []string{"exam", "trial"}}},
					Examples:     []string{"a test"},
				},
			},
		},
	}
}

func TestParseEntryTemplate(t *testing.T) {
	tests := []struct {
		name             string
		templatePath     string
		data             EntryTemplate
		wantTemplateName string
		wantContents     string
	}{
		{
			name: "uses filesystem template when available",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`Filesystem Template: {{ .Word }} {{ title "noun" }}`), 0644))
				return templatePath
			}(t),
			data:             testEntryTemplate(),
			wantTemplateName: "custom.md.go.tmpl",
			wantContents:     "Filesystem Template: test Noun",
		},
		{
			name:             "uses embedded template when no path is configured",
			templatePath:     "",
			data:             testEntryTemplate(),
			wantTemplateName: "entry.md.go.tmpl",
			wantContents: "# test\n\n*/tɛst/*\n\n## Etymology\n\nOld.\n\n## Noun\n\n1. a trial\n2. an exam\n" +
				"\n- *synonyms*: exam, trial\n\n> a test\n\n",
		},
		{
			name:             "uses embedded template when the file does not exist",
			templatePath:     "/non/existent/entry.md.go.tmpl",
			data:             EntryTemplate{Word: "bare"},
			wantTemplateName: "entry.md.go.tmpl",
			wantContents:     "# bare\n\n",
		},
		{
			name: "uses embedded template when the filesystem template is invalid",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "invalid.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`Bad: {{ .Unclosed`), 0644))
				return templatePath
			}(t),
			data:             EntryTemplate{Word: "bare"},
			wantTemplateName: "entry.md.go.tmpl",
			wantContents:     "# bare\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseEntryTemplate(tt.templatePath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemplateName, tmpl.Name())

			var buf bytes.Buffer
			require.NoError(t, WriteEntry(&buf, tmpl, tt.data))
			assert.Equal(t, tt.wantContents, buf.String())
		})
	}
}
