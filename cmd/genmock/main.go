// Command genmock generates synthetic GRIB fixture files covering the
// corruption patterns the scanner must survive: clean edition-2 runs,
// legacy edition-1 messages, mid-message truncation, garbled inter-message
// gaps, zero-length headers, and unrecognized edition bytes. It scans each
// generated file with the actual domain package so the printed counts match
// real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/mock
package main

import (
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/couchcryptid/grib-scan-etl/internal/domain"
)

// fixtureDef names one generated file and the builder producing its bytes.
type fixtureDef struct {
	file  string
	build func(rng *rand.Rand) []byte
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "", "output directory for GRIB fixture files")
	seed := flag.Int64("seed", 1, "seed for the garbage-byte generator")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out-dir")
	}

	defs := []fixtureDef{
		{file: "clean_ed2_3msg.grib2", build: buildCleanEdition2},
		{file: "legacy_ed1_2msg.grib", build: buildLegacyEdition1},
		{file: "truncated_final.grib2", build: buildTruncatedFinal},
		{file: "garbage_gap.grib2", build: buildGarbageGap},
		{file: "zero_length.grib2", build: buildZeroLength},
		{file: "unknown_edition.grib2", build: buildUnknownEdition},
	}

	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	requests := make([]domain.ScanRequest, 0, len(defs))
	for _, d := range defs {
		buf := d.build(rng)
		path := filepath.Join(*outDir, d.file)
		if err := os.WriteFile(path, buf, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", d.file, err)
		}

		summary := domain.Summarize(domain.ScanMessages(buf))
		log.Printf("%s: %d bytes, complete=%d partial=%d unknown=%d",
			d.file, len(buf), summary.Complete, summary.Partial, summary.UnknownEdition)

		requests = append(requests, domain.ScanRequest{
			Name:    d.file,
			Model:   "synthetic",
			Source:  "genmock",
			Payload: buf,
		})
	}

	// Emit the matching scan-request fixture for pipeline tests.
	reqPath := filepath.Join(*outDir, "scan_requests.json")
	if err := writeJSON(reqPath, requests); err != nil {
		return fmt.Errorf("writing request fixture: %w", err)
	}
	log.Printf("wrote scan request fixture: %s", reqPath)

	printStats(defs, rng)
	return nil
}

// message builders

func grib2Message(discipline byte, totalLen int) []byte {
	msg := make([]byte, totalLen)
	copy(msg, "GRIB")
	msg[6] = discipline
	msg[7] = 2
	binary.BigEndian.PutUint64(msg[8:], uint64(totalLen))
	return msg
}

func grib1Message(totalLen int) []byte {
	msg := make([]byte, totalLen)
	copy(msg, "GRIB")
	msg[7] = 1
	msg[4] = byte(totalLen >> 16)
	msg[5] = byte(totalLen >> 8)
	msg[6] = byte(totalLen)
	return msg
}

func buildCleanEdition2(_ *rand.Rand) []byte {
	var buf []byte
	buf = append(buf, grib2Message(0, 96)...)   // meteorological
	buf = append(buf, grib2Message(10, 128)...) // oceanographic
	buf = append(buf, grib2Message(0, 64)...)
	return buf
}

func buildLegacyEdition1(_ *rand.Rand) []byte {
	// The second message's length field is exactly 0x00 0x01 0x00 (256),
	// the canonical zero-extension check.
	return append(grib1Message(48), grib1Message(256)...)
}

func buildTruncatedFinal(_ *rand.Rand) []byte {
	buf := append(grib2Message(0, 96), grib2Message(0, 128)...)
	return buf[:96+57] // cut the second message mid-payload
}

func buildGarbageGap(rng *rand.Rand) []byte {
	gap := make([]byte, 50)
	for i := range gap {
		b := byte(rng.Intn(256))
		for b == 'G' { // keep accidental signatures out of the gap
			b = byte(rng.Intn(256))
		}
		gap[i] = b
	}
	buf := grib2Message(0, 64)
	buf = append(buf, gap...)
	buf = append(buf, grib2Message(10, 64)...)
	return buf
}

func buildZeroLength(_ *rand.Rand) []byte {
	msg := grib2Message(0, 64)
	binary.BigEndian.PutUint64(msg[8:], 0)
	return append(msg, grib2Message(0, 32)...)
}

func buildUnknownEdition(_ *rand.Rand) []byte {
	msg := make([]byte, 32)
	copy(msg, "GRIB")
	msg[7] = 9
	return append(msg, grib2Message(0, 32)...)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(defs []fixtureDef, rng *rand.Rand) {
	fmt.Println("\n=== Stats for updating test assertions ===")

	var total domain.ScanSummary
	for _, d := range defs {
		buf := d.build(rng)
		s := domain.Summarize(domain.ScanMessages(buf))
		total.Total += s.Total
		total.Complete += s.Complete
		total.Partial += s.Partial
		total.UnknownEdition += s.UnknownEdition

		fmt.Printf("%s:\n", d.file)
		for i, span := range domain.ScanMessages(buf) {
			line := fmt.Sprintf("  span %d: offset=%d edition=%d length=%d confidence=%s",
				i, span.Offset, span.Edition, span.DeclaredLength, span.Confidence)
			if span.Discipline != nil {
				line += fmt.Sprintf(" discipline=%s", domain.DisciplineName(*span.Discipline))
			}
			fmt.Println(line)
		}
	}

	fmt.Printf("\nTotal spans: %d (complete=%d, partial=%d, unknown=%d)\n",
		total.Total, total.Complete, total.Partial, total.UnknownEdition)
}
