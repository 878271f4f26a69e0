package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/grib-scan-etl/internal/domain"
	"github.com/couchcryptid/grib-scan-etl/internal/observability"
)

// Fetcher downloads the bytes of a GRIB file referenced by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// GribTransformer implements Transformer: it resolves a scan request to a
// byte buffer (inline payload or download) and scans it for message spans.
type GribTransformer struct {
	fetcher Fetcher
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a GribTransformer. Pass a nil fetcher to reject
// URL-only requests (inline payloads still scan).
func NewTransformer(fetcher Fetcher, logger *slog.Logger, metrics *observability.Metrics) *GribTransformer {
	return &GribTransformer{
		fetcher: fetcher,
		logger:  logger,
		metrics: metrics,
	}
}

// Transform resolves the request's bytes and builds a scan report.
// Only the request itself can fail (bad JSON, unfetchable URL); malformed
// GRIB content always produces a report, with corruption reflected in span
// confidence rather than an error.
func (t *GribTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.ScanReport, error) {
	req, err := domain.ParseScanRequest(raw)
	if err != nil {
		return domain.ScanReport{}, err
	}

	buf := req.Payload
	if len(buf) == 0 {
		if t.fetcher == nil {
			return domain.ScanReport{}, fmt.Errorf("scan request %q: url fetch disabled and no inline payload", req.Name)
		}
		buf, err = t.fetcher.Fetch(ctx, req.URL)
		if err != nil {
			return domain.ScanReport{}, fmt.Errorf("fetch %q: %w", req.URL, err)
		}
	}

	start := time.Now()
	report := domain.BuildScanReport(req, buf)
	t.metrics.ScanDuration.Observe(time.Since(start).Seconds())
	t.metrics.BytesScanned.Observe(float64(report.FileSize))
	t.observeSpans(report.Summary)

	t.logger.Debug("scanned grib file",
		"name", report.Name,
		"file_size", report.FileSize,
		"complete", report.Summary.Complete,
		"partial", report.Summary.Partial,
		"unknown_edition", report.Summary.UnknownEdition,
	)

	return report, nil
}

func (t *GribTransformer) observeSpans(s domain.ScanSummary) {
	t.metrics.SpansFound.WithLabelValues(string(domain.ConfidenceComplete)).Add(float64(s.Complete))
	t.metrics.SpansFound.WithLabelValues(string(domain.ConfidencePartial)).Add(float64(s.Partial))
	t.metrics.SpansFound.WithLabelValues(string(domain.ConfidenceUnknownEdition)).Add(float64(s.UnknownEdition))
}
