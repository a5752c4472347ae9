package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/at-ishikawa/lookword/internal/config"
	"github.com/at-ishikawa/lookword/internal/dictionary"
	"github.com/at-ishikawa/lookword/internal/dictionary/freedict"
	"github.com/at-ishikawa/lookword/internal/dictionary/rapidapi"
	"github.com/at-ishikawa/lookword/internal/dictionary/wiktionary"
	"github.com/at-ishikawa/lookword/internal/render"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func newFileStore(cfg config.CacheConfig) *dictionary.FileStore {
	return dictionary.NewFileStore(cfg.File,
		dictionary.WithRequireExisting(cfg.RequireExisting),
		dictionary.WithLockAttempts(cfg.LockAttempts, 0),
	)
}

// newStore returns the configured store and a function releasing it.
func newStore(ctx context.Context, cfg config.CacheConfig) (dictionary.Store, func() error, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		store, err := dictionary.NewRedisStore(ctx, dictionary.RedisConfig{
			URL:       cfg.RedisURL,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("dictionary.NewRedisStore > %w", err)
		}
		return store, store.Close, nil
	case config.BackendFile:
		return newFileStore(cfg), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

func newFetcher(cfg config.DictionaryConfig, source Source) (dictionary.Fetcher, error) {
	logger := slog.Default().With("source", source.String())
	switch source {
	case SourceWiktionary:
		return wiktionary.NewFetcher(cfg.Wiktionary.BaseURL, cfg.Timeout(), logger), nil
	case SourceFreeDictionary:
		return freedict.NewFetcher(cfg.FreeDictionary.BaseURL, cfg.Timeout(), logger), nil
	case SourceWordsAPI:
		if cfg.RapidAPI.Host == "" || cfg.RapidAPI.Key == "" {
			return nil, fmt.Errorf("RAPID_API_HOST and RAPID_API_KEY must be set to use %s", source)
		}
		return rapidapi.NewFetcher(rapidapi.Config{
			Host:    cfg.RapidAPI.Host,
			Key:     cfg.RapidAPI.Key,
			Timeout: cfg.Timeout(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown dictionary source: %s", source)
	}
}

// closeFetcher releases the HTTP client of fetchers that hold one.
func closeFetcher(fetcher dictionary.Fetcher) {
	closer, ok := fetcher.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		slog.Default().Debug("failed to close the fetcher", "error", err)
	}
}

// colorEnabled resolves render.color; --no-color wins over everything.
func colorEnabled(setting string, noColor bool) bool {
	if noColor {
		return false
	}
	switch setting {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return !color.NoColor
	}
}

func newRenderer(colored bool) *render.Renderer {
	if colored {
		return render.NewRenderer(render.NewColorEmphasis())
	}
	return render.NewRenderer(render.PlainEmphasis{})
}
