package domain

import (
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScanRequest(t *testing.T) {
	t.Run("valid with payload", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"name":"gfs.t00z.pgrb2.1p00.f000","model":"gfs","source":"nomads","payload":"R1JJQg=="}`)}
		req, err := ParseScanRequest(raw)

		require.NoError(t, err)
		assert.Equal(t, "gfs.t00z.pgrb2.1p00.f000", req.Name)
		assert.Equal(t, "gfs", req.Model)
		assert.Equal(t, "nomads", req.Source)
		assert.Equal(t, []byte("GRIB"), req.Payload)
	})

	t.Run("valid with url", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"name":"arome_sample.grib2","url":"https://example.test/arome.grib2"}`)}
		req, err := ParseScanRequest(raw)

		require.NoError(t, err)
		assert.Equal(t, "https://example.test/arome.grib2", req.URL)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseScanRequest(RawEvent{Value: []byte("not json{{{")})
		assert.Error(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := ParseScanRequest(RawEvent{Value: []byte(`{"url":"https://example.test/a.grib2"}`)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("neither payload nor url", func(t *testing.T) {
		_, err := ParseScanRequest(RawEvent{Value: []byte(`{"name":"a.grib2"}`)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "payload")
	})
}

func TestBuildScanReport(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC))
	SetClock(fakeClock)
	t.Cleanup(func() { SetClock(nil) })

	buf := append(grib2Message(t, 0, 64), grib2Message(t, 10, 128)...)
	buf = buf[:64+40] // truncate the second message

	req := ScanRequest{Name: "gfs_sample.grib2", Model: "gfs", Source: "nomads"}
	report := BuildScanReport(req, buf)

	assert.Equal(t, "gfs_sample.grib2", report.Name)
	assert.Equal(t, int64(104), report.FileSize)
	assert.Equal(t, fakeClock.Now(), report.ProcessedAt)
	assert.NotEmpty(t, report.ID)
	assert.True(t, strings.HasPrefix(report.ID, "scan-"))

	expected := ScanSummary{Total: 2, Complete: 1, Partial: 1}
	if diff := cmp.Diff(expected, report.Summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildScanReport_DeterministicID(t *testing.T) {
	buf := grib2Message(t, 0, 64)
	req := ScanRequest{Name: "sample.grib2"}

	first := BuildScanReport(req, buf)
	second := BuildScanReport(req, buf)
	assert.Equal(t, first.ID, second.ID, "rescanning the same bytes must produce the same ID")

	other := BuildScanReport(ScanRequest{Name: "other.grib2"}, buf)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestBuildScanReport_EmptyBuffer(t *testing.T) {
	report := BuildScanReport(ScanRequest{Name: "empty.grib2"}, nil)
	assert.Zero(t, report.FileSize)
	assert.Empty(t, report.Spans)
	assert.Equal(t, ScanSummary{}, report.Summary)
}

func TestScanReport_JSONRoundTrip(t *testing.T) {
	msg := grib2Message(t, 10, 32)
	binary.BigEndian.PutUint64(msg[lengthOffsetEd2:], 32)

	report := BuildScanReport(ScanRequest{Name: "ocean.grib2"}, msg)
	data, err := json.Marshal(report)
	require.NoError(t, err)

	var roundtrip ScanReport
	require.NoError(t, json.Unmarshal(data, &roundtrip))
	require.Len(t, roundtrip.Spans, 1)
	assert.Equal(t, ConfidenceComplete, roundtrip.Spans[0].Confidence)
	require.NotNil(t, roundtrip.Spans[0].Discipline)
	assert.Equal(t, 10, *roundtrip.Spans[0].Discipline)
}
