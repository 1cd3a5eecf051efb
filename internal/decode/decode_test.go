package decode

import (
	"errors"
	"testing"

	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSeparator(t *testing.T) {
	tests := []struct {
		name     string
		sample   string
		expected rune
	}{
		{"semicolon", "Tipo Doc;Folio;Monto Total\n33;123;119000\n", ';'},
		{"comma", "Tipo Doc,Folio,Monto Total\n33,123,119000\n", ','},
		{"tab", "Tipo Doc\tFolio\tMonto Total\n33\t123\t119000\n", '\t'},
		{"pipe", "Tipo Doc|Folio|Monto Total\n33|123|119000\n", '|'},
		{"tie keeps priority order", "a,b;c\n", ';'},
		{"no separator at all", "solo una columna\n", ';'},
		{"comma majority despite semicolons", "a,b,c;d\n1,2,3;4\n", ','},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectSeparator([]byte(tc.sample)))
		})
	}
}

func TestDetectSeparatorSampleWindow(t *testing.T) {
	// Pipes past the first 2000 bytes must not influence detection.
	sample := make([]byte, 0, 3000)
	sample = append(sample, []byte("a;b;c\n")...)
	for len(sample) < 2100 {
		sample = append(sample, 'x')
	}
	for i := 0; i < 50; i++ {
		sample = append(sample, '|')
	}
	assert.Equal(t, ';', DetectSeparator(sample))
}

func TestDecodeUTF8(t *testing.T) {
	data := []byte("Tipo Doc;Folio;Razón Social\n33;123;Comercial Andes Ltda.\n39;456;Otra SpA\n")

	table, err := Decode(data, "ventas.csv", logging.NewMockLogger())
	require.NoError(t, err)

	assert.Equal(t, "utf-8", table.Encoding)
	assert.Equal(t, ';', table.Separator)
	assert.Equal(t, []string{"Tipo Doc", "Folio", "Razón Social"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"33", "123", "Comercial Andes Ltda."}, table.Rows[0])
}

func TestDecodeBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Tipo Doc;Folio\n33;123\n")...)

	table, err := Decode(data, "ventas.csv", logging.NewMockLogger())
	require.NoError(t, err)

	assert.Equal(t, "utf-8-sig", table.Encoding)
	assert.Equal(t, []string{"Tipo Doc", "Folio"}, table.Headers)
	require.Len(t, table.Rows, 1)
}

func TestDecodeLatin1(t *testing.T) {
	// 0xF3 is "ó" in Latin-1 and invalid UTF-8.
	data := []byte("Tipo Doc;Raz\xf3n Social\n33;Mu\xf1oz y Cia\n")

	table, err := Decode(data, "ventas.csv", logging.NewMockLogger())
	require.NoError(t, err)

	assert.Equal(t, "latin-1", table.Encoding)
	assert.Equal(t, []string{"Tipo Doc", "Razón Social"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Muñoz y Cia", table.Rows[0][1])
}

func TestDecodeTrimsHeaders(t *testing.T) {
	data := []byte("  Tipo Doc ; Folio \n33;123\n")

	table, err := Decode(data, "ventas.csv", logging.NewMockLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"Tipo Doc", "Folio"}, table.Headers)
}

func TestDecodeRaggedRows(t *testing.T) {
	// Row 2 sets the malformed threshold at 3 fields. The four-field row
	// is dropped, the short row is padded, and the three-field row loses
	// its stray trailing value.
	data := []byte("Tipo Doc;Folio\n33;123;extra\n34;456;extra;toomuch\n39\n")

	mock := logging.NewMockLogger()
	table, err := Decode(data, "ventas.csv", mock)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"33", "123"}, table.Rows[0])
	assert.Equal(t, []string{"39", ""}, table.Rows[1])
	assert.True(t, mock.ContainsMessage("WARN", "Skipping malformed row"))
}

func TestDecodeQuotedFields(t *testing.T) {
	data := []byte("Tipo Doc;Razon Social\n33;\"Perez; Hijos Ltda\"\n")

	table, err := Decode(data, "ventas.csv", logging.NewMockLogger())
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Perez; Hijos Ltda", table.Rows[0][1])
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", []byte{}},
		{"whitespace only", []byte("   \n  \n")},
		{"header only", []byte("Tipo Doc;Folio\n")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			table, err := Decode(tc.data, "vacio.csv", logging.NewMockLogger())
			assert.Nil(t, table)
			require.Error(t, err)

			var decodeErr *parsererror.DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, "vacio.csv", decodeErr.FilePath)
			assert.Equal(t, Encodings, decodeErr.Tried)
		})
	}
}

func TestDecodeNilLogger(t *testing.T) {
	data := []byte("Tipo Doc;Folio\n33;123\n")

	table, err := Decode(data, "ventas.csv", nil)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}
