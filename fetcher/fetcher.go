// Package fetcher retrieves raw listing pages. The extraction engine is
// deliberately decoupled from fetching: strategies here only return HTML
// text, and the Chain decides which strategy to try in what order: a plain
// HTTP fetch first, a full browser session only when that fails.
package fetcher

import (
	"context"
	"fmt"

	"treehouse-importer/utils"
)

// Strategy fetches the raw HTML of a page.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, url string) (string, error)
}

// Chain tries strategies in order and returns the first document fetched.
type Chain struct {
	strategies []Strategy
	log        *utils.Logger
}

// NewChain creates a Chain over the given strategies.
func NewChain(logger *utils.Logger, strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies, log: logger}
}

// Fetch runs the chain. A later, heavier strategy is only attempted when the
// previous one fails.
func (c *Chain) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error

	for _, s := range c.strategies {
		html, err := s.Fetch(ctx, url)
		if err == nil {
			c.log.Debug("[fetch] %s succeeded for %s (%d bytes)", s.Name(), url, len(html))
			return html, nil
		}

		c.log.Warn("[fetch] %s failed for %s: %v", s.Name(), url, err)
		lastErr = err
	}

	if lastErr == nil {
		return "", fmt.Errorf("no fetch strategies configured")
	}
	return "", fmt.Errorf("all fetch strategies failed: %w", lastErr)
}
