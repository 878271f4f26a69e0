package domain

import (
	"bytes"
	"encoding/binary"
)

// ScanMessages walks a fully loaded GRIB file buffer and returns every
// candidate message span in offset order. It is a pure function: no state
// survives between calls and concurrent callers never interfere.
//
// The scan is a single forward pass. Positions that do not open with the
// "GRIB" signature are skipped one byte at a time, which resynchronizes
// the cursor after corrupt or garbled regions. On a signature hit the
// edition byte selects the length encoding; a coherent declared length
// moves the cursor past the whole message (even when the declared end lies
// beyond the buffer, which the span reports as partial), while an
// undecodable or implausibly small length falls back to a one-byte advance
// so overlapping or false signatures behind it are still found.
//
// Malformed content never produces an error, only degraded-confidence
// spans. An empty or short buffer yields zero spans.
func ScanMessages(buf []byte) []MessageSpan {
	var spans []MessageSpan

	idx := 0
	for idx+indicatorWindow <= len(buf) {
		if !bytes.Equal(buf[idx:idx+SignatureLen], gribSignature) {
			idx++
			continue
		}

		span := decodeIndicator(buf, idx)
		spans = append(spans, span)

		// Jump by the declared length only when it is large enough to
		// cover its own header; anything smaller (including zero) cannot
		// be trusted and would stall or rewind the cursor.
		if span.Confidence != ConfidenceUnknownEdition && span.DeclaredLength >= minDeclaredLength(span.Edition) {
			// The comparison stays in int64 space: a declared end at or
			// past the buffer end stops the scan without the cursor
			// addition ever overflowing int.
			if span.DeclaredLength >= int64(len(buf)-idx) {
				break
			}
			idx += int(span.DeclaredLength)
		} else {
			idx++
		}
	}

	return spans
}

// decodeIndicator reads the header at a confirmed signature position and
// classifies the resulting span. The caller guarantees indicatorWindow
// bytes are available at idx.
func decodeIndicator(buf []byte, idx int) MessageSpan {
	span := MessageSpan{
		Offset:  int64(idx),
		Edition: int(buf[idx+editionOffset]),
	}

	switch span.Edition {
	case EditionGRIB1:
		// Zero-extend the 3-byte field to 4 bytes before decoding; Go has
		// no native 24-bit integer read.
		var padded [4]byte
		copy(padded[1:], buf[idx+lengthOffsetEd1:idx+lengthOffsetEd1+3])
		span.DeclaredLength = int64(binary.BigEndian.Uint32(padded[:]))
	case EditionGRIB2:
		span.DeclaredLength = int64(binary.BigEndian.Uint64(buf[idx+lengthOffsetEd2 : idx+lengthOffsetEd2+8])) //nolint:gosec // lengths past math.MaxInt64 never fit a real buffer and classify as partial
		d := int(buf[idx+disciplineOffset])
		span.Discipline = &d
	default:
		span.Confidence = ConfidenceUnknownEdition
		return span
	}

	switch {
	case span.DeclaredLength < minDeclaredLength(span.Edition):
		span.Confidence = ConfidencePartial
	case span.Offset+span.DeclaredLength <= int64(len(buf)):
		span.Confidence = ConfidenceComplete
	default:
		span.Confidence = ConfidencePartial
	}
	return span
}

// minDeclaredLength returns the smallest declared length that still covers
// the header region for the given edition.
func minDeclaredLength(edition int) int64 {
	if edition == EditionGRIB1 {
		return minMessageLenEd1
	}
	return minMessageLenEd2
}
