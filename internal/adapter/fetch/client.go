// Package fetch downloads GRIB files referenced by scan requests.
//
// Archives like NOAA NOMADS serve plain sequential HTTP; Météo-France sits
// behind simple WAF rules that reject empty User-Agents, so the client
// always sends a configurable browser-style one. Downloads are capped at a
// configured byte limit because the scanner needs the whole file in memory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/grib-scan-etl/internal/config"
	"github.com/couchcryptid/grib-scan-etl/internal/observability"
)

// Client implements pipeline.Fetcher over plain HTTP GET.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a GRIB file fetcher from config.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		userAgent: cfg.FetchUserAgent,
		maxBytes:  cfg.FetchMaxBytes,
		metrics:   metrics,
		logger:    logger,
	}
}

// Fetch downloads the file at url in full and returns its bytes.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("fetch: empty url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	if resp.ContentLength > c.maxBytes {
		c.metrics.FetchRequests.WithLabelValues("too_large").Inc()
		return nil, fmt.Errorf("fetch %s: content length %d exceeds limit %d", url, resp.ContentLength, c.maxBytes)
	}

	// Read one byte past the limit so an unreported oversize body is
	// detected rather than silently truncated into a "corrupt" file.
	buf, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(buf)) > c.maxBytes {
		c.metrics.FetchRequests.WithLabelValues("too_large").Inc()
		return nil, fmt.Errorf("fetch %s: body exceeds limit %d", url, c.maxBytes)
	}

	c.metrics.FetchRequests.WithLabelValues("success").Inc()
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	c.logger.Debug("fetched grib file", "url", url, "bytes", len(buf))

	return buf, nil
}
