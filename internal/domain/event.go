package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ScanRequest is the flat JSON structure produced by the collector: one
// request per GRIB file. Payload carries the file bytes inline
// (base64-encoded on the wire) for small files and fixtures; otherwise URL
// points at the archive and the fetch adapter downloads the bytes.
type ScanRequest struct {
	Name    string `json:"name"`              // file identity, e.g. "gfs.t00z.pgrb2.1p00.f000"
	Model   string `json:"model,omitempty"`   // forecast model, e.g. "gfs", "arome"
	Source  string `json:"source,omitempty"`  // archive, e.g. "nomads", "meteofrance"
	URL     string `json:"url,omitempty"`     // download location when payload is absent
	Payload []byte `json:"payload,omitempty"` // inline file bytes
}
