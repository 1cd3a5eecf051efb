// Package textutils provides text extraction helpers for the loose formats
// SII exports use in their type and folio columns.
package textutils

import (
	"regexp"
	"strconv"
	"strings"
)

// typeCodeRe matches the parenthesized code in labels like
// "Boleta Electrónica (39)".
var typeCodeRe = regexp.MustCompile(`\((\d+)\)`)

// ExtractTypeCode pulls the SII document type code out of a cell. The cell
// may carry a bare number or a label with the code in parentheses.
func ExtractTypeCode(raw string) (int, bool) {
	if m := typeCodeRe.FindStringSubmatch(raw); len(m) > 1 {
		if code, err := strconv.Atoi(m[1]); err == nil {
			return code, true
		}
	}
	code, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return code, true
}

// FormatFolioRange renders a folio range as "{first} al {last}". Summaries
// without both ends collapse to the placeholder "Z".
func FormatFolioRange(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first != "" && last != "" {
		return first + " al " + last
	}
	return "Z"
}
