package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/lookword/internal/cli"
	"github.com/at-ishikawa/lookword/internal/config"
	"github.com/at-ishikawa/lookword/internal/dictionary"
	"github.com/at-ishikawa/lookword/internal/pdf"
)

type Source string

func (s *Source) Set(val string) error {
	for _, source := range allSources {
		if val == string(source) {
			*s = source
			return nil
		}
	}
	return fmt.Errorf("invalid source: %s", val)
}

func (s Source) String() string {
	return string(s)
}

func (s *Source) Type() string {
	return "Source"
}

const (
	SourceWiktionary     Source = config.SourceWiktionary
	SourceFreeDictionary Source = config.SourceFreeDictionary
	SourceWordsAPI       Source = config.SourceWordsAPI
)

var (
	_          pflag.Value = (*Source)(nil)
	allSources             = []Source{SourceWiktionary, SourceFreeDictionary, SourceWordsAPI}
)

func newLookupCommand() *cobra.Command {
	var (
		source  Source
		noColor bool
		pdfDir  string
	)

	cmd := &cobra.Command{
		Use:   "lookup [word]",
		Short: "Show the definition of a word, reading it from stdin when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if !cmd.Flags().Changed("source") {
				if err := source.Set(cfg.Dictionary.Source); err != nil {
					return fmt.Errorf("source.Set > %w", err)
				}
			}

			store, closeStore, err := newStore(ctx, cfg.Cache)
			if err != nil {
				return fmt.Errorf("newStore > %w", err)
			}
			defer func() {
				_ = closeStore()
			}()

			fetcher, err := newFetcher(cfg.Dictionary, source)
			if err != nil {
				return fmt.Errorf("newFetcher > %w", err)
			}
			defer closeFetcher(fetcher)

			var exporter cli.EntryExporter
			if cmd.Flags().Changed("pdf") {
				if pdfDir == "" {
					pdfDir = cfg.Outputs.PDFDirectory
				}
				writer, err := pdf.NewEntryWriter(cfg.Templates.EntryTemplate, pdfDir)
				if err != nil {
					return fmt.Errorf("pdf.NewEntryWriter > %w", err)
				}
				exporter = writer
			}

			colored := colorEnabled(cfg.Render.Color, noColor)
			lookupCLI := cli.NewLookupCLI(
				dictionary.NewReader(store, fetcher),
				newRenderer(colored),
				exporter,
				colored,
			)
			lookupCLI.SetOutput(cmd.OutOrStdout())

			var word string
			if len(args) > 0 {
				word = args[0]
			} else {
				word, err = lookupCLI.ReadWord()
				if err != nil {
					return fmt.Errorf("lookupCLI.ReadWord > %w", err)
				}
			}
			return lookupCLI.Lookup(ctx, word)
		},
	}

	flags := cmd.Flags()
	flags.Var(&source, "source", fmt.Sprintf("Remote dictionary to fall back to. Possible values are %v", allSources))
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&pdfDir, "pdf", "", "Also export the entry as markdown and PDF into this directory (outputs.pdf_directory when empty)")
	return cmd
}
