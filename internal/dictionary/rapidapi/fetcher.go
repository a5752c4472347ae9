package rapidapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/at-ishikawa/lookword/internal/dictionary"
	"github.com/go-resty/resty/v2"
)

type Config struct {
	Host    string
	Key     string
	Timeout time.Duration
	// BaseURL overrides https://<Host>, for tests.
	BaseURL string
}

// Fetcher looks words up in WordsAPI.
type Fetcher struct {
	client *resty.Client
}

func NewFetcher(config Config) *Fetcher {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://" + config.Host
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("x-rapidapi-host", config.Host).
		SetHeader("x-rapidapi-key", config.Key)
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}
	return &Fetcher{client: client}
}

func (f *Fetcher) Fetch(ctx context.Context, word string) ([]dictionary.Entry, error) {
	res, err := f.client.R().
		SetContext(ctx).
		SetResult(&Response{}).
		Get("/words/" + url.PathEscape(word))
	if err != nil {
		return nil, fmt.Errorf("%w: client.R.Get > %w", dictionary.ErrRemoteUnavailable, err)
	}
	if res.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status code: %d, body: %s", dictionary.ErrRemoteUnavailable, res.StatusCode(), string(res.Body()))
	}

	response, ok := res.Result().(*Response)
	if !ok || response == nil {
		return nil, fmt.Errorf("%w: unexpected response body: %s", dictionary.ErrRemoteUnavailable, string(res.Body()))
	}
	return []dictionary.Entry{response.ToEntry()}, nil
}

var _ dictionary.Fetcher = (*Fetcher)(nil)
