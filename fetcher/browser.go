package fetcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"treehouse-importer/utils"
)

// BrowserFetcher renders a page in headless Chrome and returns the settled
// DOM. Heavyweight, so sessions are concurrency-bounded and rate-limited.
type BrowserFetcher struct {
	userAgent string
	chromeBin string
	limiter   *utils.Limiter
	retry     *utils.RetryConfig
	log       *utils.Logger
}

// NewBrowserFetcher creates a BrowserFetcher with the given limits.
func NewBrowserFetcher(userAgent, chromeBin string, limiter *utils.Limiter,
	retry *utils.RetryConfig, logger *utils.Logger) *BrowserFetcher {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &BrowserFetcher{
		userAgent: userAgent,
		chromeBin: chromeBin,
		limiter:   limiter,
		retry:     retry,
		log:       logger,
	}
}

func (f *BrowserFetcher) Name() string { return "browser" }

// Fetch navigates to the URL in a fresh headless-browser context, waits for
// the page to settle, and serializes the rendered DOM.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.limiter.Acquire()
	defer f.limiter.Release()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(f.userAgent),
	)
	if f.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(f.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	var html string
	err := f.retry.Do(ctx, "browser-fetch", func() error {
		// Suppress chromedp log noise
		tabCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 90*time.Second)
		defer cancelTimeout()

		var rendered string
		err := chromedp.Run(tabCtx,
			chromedp.Navigate(url),
			chromedp.Sleep(4*time.Second),
			chromedp.OuterHTML("html", &rendered),
		)
		if err != nil {
			return fmt.Errorf("chromedp render: %w", err)
		}

		html = rendered
		return nil
	})

	return html, err
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
