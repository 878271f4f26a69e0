package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/grib-scan-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("key-1"),
		Value:     []byte(`{"name":"gfs_sample.grib2"}`),
		Topic:     "raw-grib-files",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("nomads")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("key-1"), raw.Key)
	assert.JSONEq(t, `{"name":"gfs_sample.grib2"}`, string(raw.Value))
	assert.Equal(t, "raw-grib-files", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "nomads", raw.Headers["source"])
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	report := domain.ScanReport{
		ID:       "scan-deadbeef01020304",
		Name:     "gfs_sample.grib2",
		FileSize: 2048,
		Summary:  domain.ScanSummary{Total: 3, Complete: 2, Partial: 1},
		Spans: []domain.MessageSpan{
			{Offset: 0, DeclaredLength: 1024, Edition: 2, Confidence: domain.ConfidenceComplete},
		},
		ProcessedAt: now,
	}

	msg, err := serializeToMessage(report)
	require.NoError(t, err)

	assert.Equal(t, []byte("scan-deadbeef01020304"), msg.Key)
	assert.Contains(t, string(msg.Value), `"confidence":"complete"`)
	require.Len(t, msg.Headers, 4)
	assert.Equal(t, "file_name", msg.Headers[0].Key)
	assert.Equal(t, []byte("gfs_sample.grib2"), msg.Headers[0].Value)
	assert.Equal(t, "complete_count", msg.Headers[1].Key)
	assert.Equal(t, []byte("2"), msg.Headers[1].Value)
	assert.Equal(t, "partial_count", msg.Headers[2].Key)
	assert.Equal(t, []byte("1"), msg.Headers[2].Value)
	assert.Equal(t, "processed_at", msg.Headers[3].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[3].Value)
}
