// Command validate scans a local GRIB file and checks the result for
// structural health: signature coverage, length-sum consistency, and
// truncation at the tail. It optionally emits the located spans as CSV for
// spreadsheet triage of a suspect download.
//
// Usage:
//
//	go run ./cmd/validate -grib data/sample_gfs.grib2 -csv spans.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/couchcryptid/grib-scan-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	gribPath := flag.String("grib", "", "path to the GRIB file to scan")
	csvPath := flag.String("csv", "", "optional output path for a per-span CSV")
	flag.Parse()

	if *gribPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*gribPath, *csvPath); code != 0 {
		os.Exit(code)
	}
}

func run(gribPath, csvPath string) int {
	buf, err := os.ReadFile(gribPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read GRIB file: %v\n", err)
		return 1
	}

	fmt.Println("=== GRIB Scan Validation ===")
	fmt.Println()

	spans := domain.ScanMessages(buf)
	summary := domain.Summarize(spans)

	fmt.Printf("File: %s (%d bytes)\n", gribPath, len(buf))
	fmt.Printf("Spans: %d total, %d complete, %d partial, %d unknown-edition\n",
		summary.Total, summary.Complete, summary.Partial, summary.UnknownEdition)
	fmt.Println()

	phases := []*phase{
		validateSpansFound(spans),
		validateCoverage(buf, spans),
		validateTail(buf, spans),
	}

	allPassed := true
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		allPassed = false
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	if csvPath != "" {
		if err := writeSpanCSV(csvPath, spans); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: write CSV: %v\n", err)
			return 1
		}
		fmt.Printf("\nwrote %d spans to %s\n", len(spans), csvPath)
	}

	if !allPassed {
		return 2
	}
	return 0
}

// validateSpansFound fails when the buffer contains no recognizable
// message at all, which usually means an HTML error page was downloaded
// instead of a GRIB file.
func validateSpansFound(spans []domain.MessageSpan) *phase {
	p := &phase{name: "signature scan"}
	if len(spans) == 0 {
		p.errorf("no GRIB signatures found; is this a GRIB file?")
	}
	return p
}

// validateCoverage checks how much of the file the complete spans account
// for. Healthy archives are back-to-back messages; large uncovered tails
// or gaps point at stitched or corrupted transfers.
func validateCoverage(buf []byte, spans []domain.MessageSpan) *phase {
	p := &phase{name: "length coverage"}

	var covered int64
	for _, span := range spans {
		if span.Confidence == domain.ConfidenceComplete {
			covered += span.DeclaredLength
		}
	}
	if len(buf) == 0 {
		return p
	}

	ratio := float64(covered) / float64(len(buf))
	if ratio < 0.9 {
		p.errorf("complete spans cover %.1f%% of the file (want >= 90%%)", ratio*100)
	}
	return p
}

// validateTail flags a partial final span, the signature of a download cut
// off mid-message.
func validateTail(buf []byte, spans []domain.MessageSpan) *phase {
	p := &phase{name: "tail truncation"}
	if len(spans) == 0 {
		return p
	}

	last := spans[len(spans)-1]
	if last.Confidence == domain.ConfidencePartial {
		missing := last.Offset + last.DeclaredLength - int64(len(buf))
		p.errorf("final span at offset %d declares %d bytes but the file ends %d bytes short",
			last.Offset, last.DeclaredLength, missing)
	}
	return p
}

func writeSpanCSV(path string, spans []domain.MessageSpan) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"offset", "edition", "declared_length", "confidence", "discipline"}); err != nil {
		return err
	}
	for _, span := range spans {
		discipline := ""
		if span.Discipline != nil {
			discipline = domain.DisciplineName(*span.Discipline)
		}
		row := []string{
			strconv.FormatInt(span.Offset, 10),
			strconv.Itoa(span.Edition),
			strconv.FormatInt(span.DeclaredLength, 10),
			string(span.Confidence),
			discipline,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
