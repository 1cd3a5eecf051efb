// Package decode turns raw SII export bytes into tabular rows. Exports in
// the wild disagree on field separator and text encoding, so both are
// detected before the CSV reader runs.
package decode

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/parsererror"

	"golang.org/x/text/encoding/charmap"
)

// Separators lists the candidate field separators, in priority order.
// Ties during detection keep the earlier candidate.
var Separators = []rune{';', ',', '\t', '|'}

// Encodings lists the charsets attempted, in order. Latin-1 assigns every
// byte, so the chain always yields text.
var Encodings = []string{"utf-8", "utf-8-sig", "latin-1", "iso-8859-1", "cp1252"}

// sampleSize bounds how many bytes feed separator detection.
const sampleSize = 2000

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table holds the decoded contents of one export file.
type Table struct {
	Headers   []string
	Rows      [][]string
	Encoding  string
	Separator rune
}

// DetectSeparator picks the candidate separator that occurs most often in
// the leading bytes of the file.
func DetectSeparator(sample []byte) rune {
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	best := Separators[0]
	bestCount := bytes.Count(sample, []byte{byte(Separators[0])})
	for _, sep := range Separators[1:] {
		if n := bytes.Count(sample, []byte{byte(sep)}); n > bestCount {
			best = sep
			bestCount = n
		}
	}
	return best
}

// decodeText converts raw bytes to a string and reports which charset was
// used. A BOM wins, valid UTF-8 comes next, and Latin-1 absorbs the rest.
func decodeText(data []byte) (string, string) {
	if bytes.HasPrefix(data, utf8BOM) {
		return string(bytes.TrimPrefix(data, utf8BOM)), "utf-8-sig"
	}
	if utf8.Valid(data) {
		return string(data), "utf-8"
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data), "latin-1"
	}
	return string(decoded), "latin-1"
}

// Decode reads one export file into a Table. Header cells are trimmed. A
// file with no data rows is a DecodeError; the caller decides whether that
// skips the file or aborts the run.
func Decode(data []byte, filename string, logger logging.Logger) (*Table, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, parsererror.NewDecodeError(filename, Encodings, fmt.Errorf("file is empty"))
	}

	sep := DetectSeparator(data)
	text, enc := decodeText(data)

	logger.Debug("Detected file format",
		logging.Field{Key: logging.FieldFile, Value: filename},
		logging.Field{Key: logging.FieldEncoding, Value: enc},
		logging.Field{Key: logging.FieldDelimiter, Value: string(sep)})

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sep
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, parsererror.NewDecodeError(filename, Encodings, err)
	}
	if len(records) < 2 {
		return nil, parsererror.NewDecodeError(filename, Encodings, fmt.Errorf("no data rows"))
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	// The header fixes the row width. Some exports carry one extra trailing
	// field on every data row, so the first data row widens the
	// malformed-row threshold.
	effectiveWidth := len(headers)
	if len(records[1]) > effectiveWidth {
		effectiveWidth = len(records[1])
	}

	rows := make([][]string, 0, len(records)-1)
	skipped := 0
	for i, rec := range records[1:] {
		if len(rec) > effectiveWidth {
			skipped++
			logger.Warn("Skipping malformed row",
				logging.Field{Key: logging.FieldFile, Value: filename},
				logging.Field{Key: logging.FieldRow, Value: i + 2})
			continue
		}
		row := make([]string, len(headers))
		for j := range row {
			if j < len(rec) {
				row[j] = rec[j]
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, parsererror.NewDecodeError(filename, Encodings, fmt.Errorf("no data rows"))
	}

	logger.Debug("Decoded file",
		logging.Field{Key: logging.FieldFile, Value: filename},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
		logging.Field{Key: logging.FieldSkipped, Value: skipped})

	return &Table{Headers: headers, Rows: rows, Encoding: enc, Separator: sep}, nil
}
