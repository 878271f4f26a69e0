package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// ScanReport is the sink-topic representation of one scanned file: every
// located span plus the aggregate counts the reporting layer keys on.
type ScanReport struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Model       string        `json:"model,omitempty"`
	Source      string        `json:"source,omitempty"`
	URL         string        `json:"url,omitempty"`
	FileSize    int64         `json:"file_size"`
	Spans       []MessageSpan `json:"spans"`
	Summary     ScanSummary   `json:"summary"`
	ProcessedAt time.Time     `json:"processed_at"`
}

// ParseScanRequest deserializes a RawEvent's value into a ScanRequest.
// It expects the flat JSON produced by the collector service.
func ParseScanRequest(raw RawEvent) (ScanRequest, error) {
	var req ScanRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return ScanRequest{}, fmt.Errorf("parse scan request: %w", err)
	}
	if req.Name == "" {
		return ScanRequest{}, fmt.Errorf("parse scan request: missing name")
	}
	if len(req.Payload) == 0 && req.URL == "" {
		return ScanRequest{}, fmt.Errorf("parse scan request: neither payload nor url set")
	}
	return req, nil
}

// BuildScanReport scans the file bytes obtained for a request and assembles
// the report. The scan itself never fails; corruption shows up as degraded
// span confidence in the result.
func BuildScanReport(req ScanRequest, buf []byte) ScanReport {
	spans := ScanMessages(buf)
	summary := Summarize(spans)

	return ScanReport{
		ID:          generateID(req.Name, int64(len(buf)), summary),
		Name:        req.Name,
		Model:       req.Model,
		Source:      req.Source,
		URL:         req.URL,
		FileSize:    int64(len(buf)),
		Spans:       spans,
		Summary:     summary,
		ProcessedAt: clock.Now(),
	}
}

// generateID produces a deterministic ID from the report's key fields.
// Deterministic IDs make downstream upserts idempotent: rescanning the same
// file bytes produces the same ID.
func generateID(name string, size int64, s ScanSummary) string {
	input := fmt.Sprintf("%s|%d|%d|%d|%d", name, size, s.Complete, s.Partial, s.UnknownEdition)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	return "scan-" + short
}
