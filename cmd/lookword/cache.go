package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/lookword/internal/cli"
	"github.com/at-ishikawa/lookword/internal/config"
	"github.com/at-ishikawa/lookword/internal/database"
	"github.com/at-ishikawa/lookword/internal/datasync"
	"github.com/at-ishikawa/lookword/internal/dictionary"
	"github.com/at-ishikawa/lookword/schemas"
)

const (
	exportFromFile     = "file"
	exportFromDatabase = "database"
)

func newCacheCommand() *cobra.Command {
	cacheCommand := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local dictionary store",
	}
	cacheCommand.AddCommand(
		newCacheListCommand(),
		newCacheExportCommand(),
		newCacheSyncCommand(),
		newCacheWarmCommand(),
	)
	return cacheCommand
}

// loadFileStore reads the whole file store. list, export and sync only work
// on the file backend.
func loadFileStore(cfg config.CacheConfig) ([]dictionary.StoredEntry, error) {
	if cfg.Backend != config.BackendFile {
		return nil, fmt.Errorf("this command needs the %s cache backend, got %s", config.BackendFile, cfg.Backend)
	}
	entries, err := newFileStore(cfg).Load()
	if err != nil {
		return nil, fmt.Errorf("store.Load > %w", err)
	}
	return entries, nil
}

func newCacheListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored words in file order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			entries, err := loadFileStore(cfg.Cache)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), entry.Word)
			}
			return nil
		},
	}
}

func newCacheExportCommand() *cobra.Command {
	var (
		formatName string
		from       string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump stored entries as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := datasync.ParseFormat(formatName)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			var entries []dictionary.StoredEntry
			switch from {
			case exportFromFile:
				entries, err = loadFileStore(cfg.Cache)
				if err != nil {
					return err
				}
			case exportFromDatabase:
				db, err := database.Open(cfg.Database)
				if err != nil {
					return fmt.Errorf("database.Open() > %w", err)
				}
				defer db.Close()

				entries, err = datasync.NewExporter(dictionary.NewDBDictionaryRepository(db)).Export(cmd.Context())
				if err != nil {
					return fmt.Errorf("exporter.Export() > %w", err)
				}
			default:
				return fmt.Errorf("invalid --from %q, must be one of %s, %s", from, exportFromFile, exportFromDatabase)
			}

			if output == "" {
				return datasync.Encode(cmd.OutOrStdout(), entries, format)
			}
			if err := datasync.WriteFile(output, entries, format); err != nil {
				return fmt.Errorf("datasync.WriteFile(%s) > %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatName, "format", string(datasync.FormatJSON), "Output format: json or yaml")
	cmd.Flags().StringVar(&from, "from", exportFromFile, "Where to read entries from: file or database")
	cmd.Flags().StringVar(&output, "output", "", "Write to this file instead of stdout")
	return cmd
}

func newCacheSyncCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror the file store into the dictionary_entries table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			entries, err := loadFileStore(cfg.Cache)
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer db.Close()

			if !dryRun {
				if err := database.Migrate(ctx, db, schemas.Migrations); err != nil {
					return fmt.Errorf("database.Migrate() > %w", err)
				}
			}

			importer := datasync.NewImporter(dictionary.NewDBDictionaryRepository(db), cmd.OutOrStdout())
			opts := datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}
			result, err := importer.ImportEntries(ctx, entries, cfg.Dictionary.Source, opts)
			if err != nil {
				return fmt.Errorf("importer.ImportEntries() > %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\nSync Summary:")
			if opts.DryRun {
				fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			fmt.Fprintf(out, "  Dictionary entries: %d new, %d skipped, %d updated\n", result.New, result.Skipped, result.Updated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing records with new data")
	return cmd
}

func newCacheWarmCommand() *cobra.Command {
	var source Source

	cmd := &cobra.Command{
		Use:   "warm <file>",
		Short: "Look up every word of a word list so that the store holds them",
		Args:  cobra.ExactArgs(1),
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

			words, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("os.Open(%s) > %w", args[0], err)
			}
			defer words.Close()

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

			out := cmd.OutOrStdout()
			lookupCLI := cli.NewLookupCLI(dictionary.NewReader(store, fetcher), newRenderer(false), nil, false)
			lookupCLI.SetOutput(out)
			result, err := lookupCLI.Warm(ctx, words)
			if err != nil {
				return fmt.Errorf("lookupCLI.Warm > %w", err)
			}

			fmt.Fprintln(out, "\nWarm Summary:")
			fmt.Fprintf(out, "  %d cached, %d fetched, %d not found, %d write failures\n",
				result.Cached, result.Fetched, result.NotFound, result.WriteFailures)
			return nil
		},
	}

	cmd.Flags().Var(&source, "source", fmt.Sprintf("Remote dictionary to fall back to. Possible values are %v", allSources))
	return cmd
}
