package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/at-ishikawa/lookword/internal/dictionary"
	"github.com/at-ishikawa/lookword/internal/render"
	"github.com/fatih/color"
)

type Lookuper interface {
	Lookup(ctx context.Context, expression string) (dictionary.Result, error)
}

//go:generate mockgen -source=lookup_cli.go -destination=../mocks/cli/mock_exporter.go -package=mock_cli

// EntryExporter writes a found entry somewhere besides the terminal, such as a PDF file.
type EntryExporter interface {
	Write(word string, entry dictionary.Entry) (string, error)
}

// LookupCLI reads words, looks them up and prints the rendered entries
type LookupCLI struct {
	reader       Lookuper
	renderer     *render.Renderer
	exporter     EntryExporter
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	red          *color.Color
}

// NewLookupCLI reads from stdin and writes to stdout. exporter may be nil.
func NewLookupCLI(reader Lookuper, renderer *render.Renderer, exporter EntryExporter, colored bool) *LookupCLI {
	red := color.New(color.FgRed)
	if colored {
		red.EnableColor()
	} else {
		red.DisableColor()
	}
	return &LookupCLI{
		reader:       reader,
		renderer:     renderer,
		exporter:     exporter,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		red:          red,
	}
}

// SetOutput redirects the rendered entries and reports, which go to stdout by default.
func (cli *LookupCLI) SetOutput(w io.Writer) {
	cli.stdoutWriter = w
}

// ReadWord reads one line of input.
func (cli *LookupCLI) ReadWord() (string, error) {
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("stdinReader.ReadString() > %w", err)
	}
	word := strings.TrimSpace(line)
	if word == "" {
		return "", dictionary.ErrEmptyWord
	}
	return word, nil
}

// Lookup prints the entry of word, or the not-found message together with
// dictionary.ErrNotFound.
func (cli *LookupCLI) Lookup(ctx context.Context, word string) error {
	result, err := cli.reader.Lookup(ctx, word)
	if err != nil {
		return fmt.Errorf("reader.Lookup(%s) > %w", word, err)
	}
	if !result.Found() {
		fmt.Fprintln(cli.stdoutWriter, cli.red.Sprint(dictionary.NotFoundMessage(result.Word)))
		return dictionary.ErrNotFound
	}

	fmt.Fprint(cli.stdoutWriter, cli.renderer.Render(result.Entry, result.Word))

	if cli.exporter == nil {
		return nil
	}
	path, err := cli.exporter.Write(result.Word, result.Entry)
	if err != nil {
		return fmt.Errorf("exporter.Write(%s) > %w", result.Word, err)
	}
	slog.Default().Info("exported the entry", slog.String("word", result.Word), slog.String("path", path))
	return nil
}

// WarmResult tracks counts of a warm run.
type WarmResult struct {
	Cached        int
	Fetched       int
	NotFound      int
	WriteFailures int
}

// Warm looks up every non-blank line of words so that the store holds them
// afterwards. Storage errors stop the run; other words keep going.
func (cli *LookupCLI) Warm(ctx context.Context, words io.Reader) (*WarmResult, error) {
	var result WarmResult

	scanner := bufio.NewScanner(words)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return &result, err
		}
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}

		lookup, err := cli.reader.Lookup(ctx, word)
		if err != nil {
			return &result, fmt.Errorf("reader.Lookup(%s) > %w", word, err)
		}
		switch {
		case !lookup.Found():
			fmt.Fprintf(cli.stdoutWriter, "  [NOT FOUND]  %q\n", lookup.Word)
			result.NotFound++
		case lookup.Origin == dictionary.OriginCache:
			fmt.Fprintf(cli.stdoutWriter, "  [CACHED]  %q\n", lookup.Word)
			result.Cached++
		case lookup.WriteErr != nil:
			fmt.Fprintf(cli.stdoutWriter, "  [WRITE FAILED]  %q\n", lookup.Word)
			result.WriteFailures++
		default:
			fmt.Fprintf(cli.stdoutWriter, "  [FETCHED]  %q\n", lookup.Word)
			result.Fetched++
		}
	}
	if err := scanner.Err(); err != nil {
		return &result, fmt.Errorf("scanner.Err() > %w", err)
	}
	return &result, nil
}
