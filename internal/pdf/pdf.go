package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/lookword/internal/assets"
	"github.com/at-ishikawa/lookword/internal/dictionary"
	"github.com/at-ishikawa/lookword/internal/render"
)

// ConvertMarkdownToPDF converts a markdown file to PDF using mdtopdf package
// The PDF file will be created in the same directory as the markdown file
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}

	return absPath, nil
}

// EntryWriter exports an entry as <word>.md and <word>.pdf in one directory.
type EntryWriter struct {
	template  *template.Template
	outputDir string
}

func NewEntryWriter(templatePath string, outputDir string) (*EntryWriter, error) {
	tmpl, err := assets.ParseEntryTemplate(templatePath)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseEntryTemplate(%s) > %w", templatePath, err)
	}
	return &EntryWriter{
		template:  tmpl,
		outputDir: outputDir,
	}, nil
}

// Write returns the absolute path of the PDF file.
func (w *EntryWriter) Write(word string, entry dictionary.Entry) (string, error) {
	ipa, _ := render.IPA(entry.Pronunciations.Text)

	var markdown bytes.Buffer
	if err := assets.WriteEntry(&markdown, w.template, assets.EntryTemplate{
		Word:  word,
		IPA:   ipa,
		Entry: entry,
	}); err != nil {
		return "", fmt.Errorf("assets.WriteEntry > %w", err)
	}

	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", w.outputDir, err)
	}
	markdownPath := filepath.Join(w.outputDir, fileName(word)+".md")
	if err := os.WriteFile(markdownPath, markdown.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", markdownPath, err)
	}
	return ConvertMarkdownToPDF(markdownPath)
}

func fileName(word string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, word)
}
