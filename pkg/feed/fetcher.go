package feed

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

//go:generate moq -out mocks/validator_store.go -pkg mocks -skip-ensure -fmt goimports . ValidatorStore

// ValidatorStore persists HTTP cache validators between polls so unchanged
// channels can answer 304 instead of shipping the full document again.
// Implemented by repository.Store; a nil store disables conditional requests.
type ValidatorStore interface {
	HTTPCache(ctx context.Context, feedURL string) (etag, lastModified string, err error)
	SetHTTPCache(ctx context.Context, feedURL, etag, lastModified string) error
}

// Fetcher retrieves and parses remote channels over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
	store     ValidatorStore
}

// NewFetcher creates a fetcher with the given timeout and user agent. The
// store may be nil.
func NewFetcher(timeout time.Duration, userAgent string, store ValidatorStore) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		store:     store,
	}
}

// Fetch retrieves the channel honoring stored validators; a 304 answer
// yields (nil, nil) which callers treat as a no-op poll.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	return f.fetch(ctx, url, true)
}

// FetchFresh retrieves the channel unconditionally. Used for the initial
// construction fetch, so a restart never answers 304 into an empty display.
func (f *Fetcher) FetchFresh(ctx context.Context, url string) (*gofeed.Feed, error) {
	return f.fetch(ctx, url, false)
}

func (f *Fetcher) fetch(ctx context.Context, url string, conditional bool) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")

	if conditional && f.store != nil {
		etag, lastMod, cerr := f.store.HTTPCache(ctx, url)
		if cerr != nil {
			log.Printf("[WARN] http cache lookup for %s failed: %v", url, cerr)
		}
		if etag != "" {
			req.Header.Set("If-None-Match", etag)
		}
		if lastMod != "" {
			req.Header.Set("If-Modified-Since", lastMod)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotModified {
		return nil, nil // unchanged remote, no document this poll
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status code: %d", url, resp.StatusCode)
	}

	ch, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse channel %s: %w", url, err)
	}

	if f.store != nil {
		etag, lastMod := resp.Header.Get("ETag"), resp.Header.Get("Last-Modified")
		if etag != "" || lastMod != "" {
			if serr := f.store.SetHTTPCache(ctx, url, etag, lastMod); serr != nil {
				log.Printf("[WARN] save http validators for %s: %v", url, serr)
			}
		}
	}
	return ch, nil
}
