// Package fetch provides the rate-limited HTTP transport used to retrieve
// racecard pages. Page parsing lives elsewhere; this package only hands
// back raw HTML.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/race-ranker/internal/config"
)

// Client wraps retryablehttp.Client with a token-bucket rate limiter so
// scraping stays polite regardless of how many races are fetched.
type Client struct {
	client      *retryablehttp.Client
	limiter     *rate.Limiter
	userAgent   string
	minPageSize int
	logger      *logrus.Logger
}

// NewClient creates a rate-limited racecard HTTP client from configuration.
func NewClient(cfg config.FetchConfig, logger *logrus.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = time.Duration(cfg.RetryWaitMinMs) * time.Millisecond
	retryClient.RetryWaitMax = time.Duration(cfg.RetryWaitMaxMs) * time.Millisecond
	retryClient.Logger = nil

	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 0.5
	}

	return &Client{
		client:      retryClient,
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		userAgent:   cfg.UserAgent,
		minPageSize: cfg.MinValidPageSize,
		logger:      logger,
	}
}

// FetchHTML retrieves one page, waiting on the rate limiter first. Pages
// smaller than the configured minimum are treated as blocked or empty
// responses and rejected.
func (c *Client) FetchHTML(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if len(body) < c.minPageSize {
		c.logger.WithFields(logrus.Fields{
			"url":   url,
			"bytes": len(body),
		}).Warn("Page smaller than minimum valid size")
		return "", fmt.Errorf("page too small (%d bytes): %s", len(body), url)
	}

	return string(body), nil
}
