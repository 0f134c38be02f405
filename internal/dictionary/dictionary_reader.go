// Package dictionary looks up words in WordsAPI and fills missing item content.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/wordcycle/internal/dictionary/rapidapi"
)

// ErrWordNotFound is returned when the dictionary has no entry for a word.
var ErrWordNotFound = errors.New("word not found in dictionary")

type Config struct {
	RapidAPIHost string
	RapidAPIKey  string
	// BaseURL overrides https://<RapidAPIHost>.
	BaseURL string
}

type Reader struct {
	config    Config
	client    *resty.Client
	fileCache *FileCache
}

func NewReader(cacheDirectory string, config Config) *Reader {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://" + config.RapidAPIHost
	}
	return &Reader{
		config:    config,
		client:    resty.New().SetBaseURL(baseURL),
		fileCache: NewFileCache(cacheDirectory),
	}
}

func (r *Reader) lookupAPI(ctx context.Context, word string) ([]byte, error) {
	if r.config.RapidAPIKey == "" {
		return nil, errors.New("RAPID_API_KEY is not set")
	}

	res, err := r.client.R().
		SetContext(ctx).
		SetHeader("x-rapidapi-host", r.config.RapidAPIHost).
		SetHeader("x-rapidapi-key", r.config.RapidAPIKey).
		Get("/words/" + url.PathEscape(word))
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %q", ErrWordNotFound, word)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return res.Body(), nil
}

// Lookup returns the dictionary entry for word, from the cache when possible.
func (r *Reader) Lookup(ctx context.Context, word string) (rapidapi.Response, error) {
	var resp rapidapi.Response
	contents, err := r.fileCache.fetch(word, func() ([]byte, error) {
		body, err := r.lookupAPI(ctx, word)
		if err != nil {
			return nil, fmt.Errorf("r.lookupAPI > %w", err)
		}
		return body, nil
	})
	if err != nil {
		return resp, fmt.Errorf("r.fileCache.fetch > %w", err)
	}
	if err := json.Unmarshal(contents, &resp); err != nil {
		return resp, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return resp, nil
}
