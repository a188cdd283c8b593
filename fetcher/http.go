package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"treehouse-importer/utils"
)

// HTTPFetcher retrieves a page with a plain GET and browser-like headers.
// Cheap and fast, but the source increasingly serves bot-detection shells to
// non-browser clients; the Chain falls through to the browser strategy when
// this one fails.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	retry     *utils.RetryConfig
}

// NewHTTPFetcher creates an HTTPFetcher with the given timeout and retry
// policy.
func NewHTTPFetcher(timeout time.Duration, userAgent string, retry *utils.RetryConfig) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		retry:     retry,
	}
}

func (f *HTTPFetcher) Name() string { return "http" }

// Fetch GETs the URL, retrying transport failures with backoff.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var html string

	err := f.retry.Do(ctx, "http-fetch", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}

		req.Header.Set("User-Agent", f.userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("get %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		html = string(body)
		return nil
	})

	return html, err
}
