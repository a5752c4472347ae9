// Package wiktionary scrapes English entries from rendered Wiktionary pages.
package wiktionary

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/at-ishikawa/lookword/internal/dictionary"
	"resty.dev/v3"
)

const DefaultBaseURL = "https://en.wiktionary.org"

type Fetcher struct {
	httpClient *resty.Client
	log        *slog.Logger
}

func NewFetcher(baseURL string, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("User-Agent", "lookword (https://github.com/at-ishikawa/lookword)")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Fetcher{
		httpClient: client,
		log:        logger.With("fetcher", "wiktionary"),
	}
}

func (f *Fetcher) Close() error {
	return f.httpClient.Close()
}

func (f *Fetcher) Fetch(ctx context.Context, word string) ([]dictionary.Entry, error) {
	f.log.DebugContext(ctx, "wiktionary request", slog.String("word", word))

	response, err := f.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"title":  word,
			"action": "render",
		}).
		Get("/w/index.php")
	if err != nil {
		return nil, fmt.Errorf("%w: httpClient.Get > %w", dictionary.ErrRemoteUnavailable, err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if response.IsError() {
		return nil, fmt.Errorf("%w: response error %d", dictionary.ErrRemoteUnavailable, response.StatusCode())
	}

	candidates, err := Parse(strings.NewReader(response.String()))
	if err != nil {
		return nil, fmt.Errorf("%w: Parse > %w", dictionary.ErrRemoteUnavailable, err)
	}
	f.log.DebugContext(ctx, "wiktionary response",
		slog.String("word", word),
		slog.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

var _ dictionary.Fetcher = (*Fetcher)(nil)
