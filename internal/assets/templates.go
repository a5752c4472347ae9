package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/at-ishikawa/lookword/internal/dictionary"
)

const entryTemplateName = "entry.md.go.tmpl"

//go:embed templates/entry.md.go.tmpl
var fallbackEntryTemplate string

// EntryTemplate is the data an entry template is executed with.
type EntryTemplate struct {
	Word  string
	IPA   string
	Entry dictionary.Entry
}

// ParseEntryTemplate parses templatePath, or the embedded template when the
// path is empty, missing or does not parse.
func ParseEntryTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, entryTemplateName, fallbackEntryTemplate)
}

func WriteEntry(output io.Writer, tmpl *template.Template, data EntryTemplate) error {
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute(%s) > %w", data.Word, err)
	}
	return nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
		"title": func(s string) string {
			return cases.Title(language.English).String(s)
		},
		"inc": func(i int) int {
			return i + 1
		},
	}
}

func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(templateFuncs()).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(templateFuncs()).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
