// Package domain models GRIB weather-file message scanning.
//
// # Data Source
//
// GRIB (GRIdded Binary) is the WMO format for gridded meteorological model
// output. Sample files come from open archives such as NOAA NOMADS GFS
// (https://nomads.ncep.noaa.gov/) and Météo-France AROME/ARPEGE public data
// (https://donneespubliques.meteofrance.fr/). The upstream collector service
// publishes one scan request per file to the Kafka source topic, carrying
// either a download URL or the file bytes inline.
//
// # GRIB Indicator Section
//
// Every GRIB message opens with a fixed indicator section (Section 0):
//
//	bytes 0-3   "GRIB" ASCII signature
//	byte  7     edition number (1 or 2)
//
// The two editions in circulation encode the total message length
// incompatibly:
//
//	Edition 1:  bytes 4-6, 3-byte unsigned big-endian. Go has no 24-bit
//	            integer type, so the field is zero-extended with a leading
//	            zero byte and decoded as a 4-byte big-endian value.
//	Edition 2:  bytes 4-5 reserved, byte 6 discipline, bytes 8-15 total
//	            length as an 8-byte unsigned big-endian value.
//
// The edition-2 discipline byte classifies the message's product family
// (0 = meteorological, 10 = oceanographic, ...). It lives inside the fixed
// header the scanner already reads, so it is surfaced on spans as
// enrichment. Nothing past Section 0 is decoded here — grid definitions,
// parameter tables, and projections belong to full GRIB decoders.
//
// # Scanning Corrupt Files
//
// Files arrive truncated mid-download, stitched from partial transfers, or
// with garbled byte runs between messages, and there is no authoritative
// index to lean on. The scanner therefore treats corruption as data, not
// failure: every signature hit is emitted as a [MessageSpan] whose
// [Confidence] records how far the declared length could be trusted, and
// scanning always makes forward progress — by the declared length when the
// header is coherent, byte by byte otherwise — so signatures after a bad
// region are still found. See [ScanMessages].
//
// # ID Generation
//
// Report IDs are deterministic SHA-256 hashes of the report's key fields.
// This enables idempotent upserts downstream (ON CONFLICT DO NOTHING) and
// replay safety without distributed coordination. See [BuildScanReport].
package domain
