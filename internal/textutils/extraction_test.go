package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTypeCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		ok       bool
	}{
		{"label with code", "Boleta Electrónica (39)", 39, true},
		{"code before label", "(48) Comprobante de Pago", 48, true},
		{"bare number", "39", 39, true},
		{"padded number", " 41 ", 41, true},
		{"first parenthesized code wins", "Boleta (39) duplicada (41)", 39, true},
		{"decimal form rejected", "39.0", 0, false},
		{"empty", "", 0, false},
		{"label without code", "Boleta Electrónica", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, ok := ExtractTypeCode(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, code)
		})
	}
}

func TestFormatFolioRange(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		last     string
		expected string
	}{
		{"both ends", "100", "150", "100 al 150"},
		{"padded ends", " 100 ", " 150 ", "100 al 150"},
		{"missing last", "100", "", "Z"},
		{"missing first", "", "150", "Z"},
		{"missing both", "", "", "Z"},
		{"whitespace only", "  ", "150", "Z"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatFolioRange(tc.first, tc.last))
		})
	}
}
