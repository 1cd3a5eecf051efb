package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cajapyme/libro-caja/internal/models"
	"cajapyme/libro-caja/internal/parsererror"
)

func sampleLedger() *models.Ledger {
	return &models.Ledger{
		Period:      "2024",
		CompanyRUT:  "76.543.210-K",
		CompanyName: "COMERCIAL DEMO LTDA",
		Records: []models.CanonicalRecord{
			{
				Correlative:  1,
				Kind:         models.OperationOpening,
				Counterparty: "76.543.210-K",
				Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Gloss:        "Saldo Inicial",
				Flow:         decimal.NewFromInt(1000000),
				Basis:        decimal.Zero,
				Origin:       models.OriginOpening,
			},
			{
				Correlative:  2,
				Kind:         models.OperationIncome,
				DocNumber:    "101",
				DocType:      "33",
				Counterparty: "77.111.222-3",
				Date:         time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				Gloss:        "Venta — CLIENTE UNO",
				Flow:         decimal.NewFromInt(119000),
				Basis:        decimal.NewFromInt(100000),
				Origin:       models.OriginSalesInvoice,
			},
			{
				Correlative: 3,
				Kind:        models.OperationExpense,
				DocNumber:   "TRF-01",
				DocType:     "Transferencia",
				Date:        time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
				Gloss:       "Pago arriendo",
				Flow:        decimal.NewFromInt(450000),
				Basis:       decimal.Zero,
				Origin:      models.OriginManualPayment,
			},
		},
	}
}

func TestRecordToCSVRow(t *testing.T) {
	row := RecordToCSVRow(sampleLedger().Records[1])

	assert.Equal(t, 2, row.Correlative)
	assert.Equal(t, 1, row.Kind)
	assert.Equal(t, "101", row.DocNumber)
	assert.Equal(t, "33", row.DocType)
	assert.Equal(t, "05/01/2024", row.Date)
	assert.Equal(t, "Venta — CLIENTE UNO", row.Gloss)
	assert.True(t, row.Flow.Equal(decimal.NewFromInt(119000)))
}

func TestCSVRowToRecordErrors(t *testing.T) {
	t.Run("invalid kind", func(t *testing.T) {
		_, err := CSVRowToRecord(LedgerCSVRow{Correlative: 1, Kind: 7, Date: "05/01/2024"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid operation kind")
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := CSVRowToRecord(LedgerCSVRow{Correlative: 1, Kind: 1, Date: "sin fecha"})
		require.Error(t, err)
	})
}

func TestWriteAndReadLedger(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "out", "libro.csv")
	original := sampleLedger()

	require.NoError(t, WriteLedgerToCSV(original, csvFile))

	raw, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	content := string(raw)
	assert.True(t, strings.HasPrefix(content,
		"N° Correlativo;Tipo Operación;N° Documento;Tipo Documento;RUT Emisor;Fecha Operación;Glosa de Operación;C8;C9"),
		"unexpected header: %s", strings.SplitN(content, "\n", 2)[0])
	assert.Contains(t, content, "Venta — CLIENTE UNO")
	assert.Contains(t, content, "05/01/2024")

	restored, err := ReadLedgerFromCSV(csvFile)
	require.NoError(t, err)

	assert.Equal(t, "76.543.210-K", restored.CompanyRUT)
	assert.Equal(t, "2024", restored.Period)
	require.Len(t, restored.Records, 3)
	for i, rec := range restored.Records {
		orig := original.Records[i]
		assert.Equal(t, orig.Correlative, rec.Correlative)
		assert.Equal(t, orig.Kind, rec.Kind)
		assert.Equal(t, orig.DocNumber, rec.DocNumber)
		assert.Equal(t, orig.DocType, rec.DocType)
		assert.Equal(t, orig.Counterparty, rec.Counterparty)
		assert.Equal(t, orig.Date, rec.Date)
		assert.Equal(t, orig.Gloss, rec.Gloss)
		assert.True(t, orig.Flow.Equal(rec.Flow), "flow row %d: %s vs %s", i, orig.Flow, rec.Flow)
		assert.True(t, orig.Basis.Equal(rec.Basis), "basis row %d", i)
	}
	assert.True(t, restored.Records[0].IsOpening())
}

func TestWriteLedgerNil(t *testing.T) {
	assert.Error(t, WriteLedgerToCSV(nil, filepath.Join(t.TempDir(), "x.csv")))
}

func TestSetDelimiter(t *testing.T) {
	SetDelimiter(',')
	defer SetDelimiter(';')

	csvFile := filepath.Join(t.TempDir(), "libro.csv")
	require.NoError(t, WriteLedgerToCSV(sampleLedger(), csvFile))

	raw, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "N° Correlativo,Tipo Operación"))

	restored, err := ReadLedgerFromCSV(csvFile)
	require.NoError(t, err)
	assert.Len(t, restored.Records, 3)
}

func TestReadLedgerMissingFile(t *testing.T) {
	_, err := ReadLedgerFromCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadLedgerCorruptRow(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "libro.csv")
	content := "N° Correlativo;Tipo Operación;N° Documento;Tipo Documento;RUT Emisor;Fecha Operación;Glosa de Operación;C8;C9\n" +
		"1;7;101;33;77.111.222-3;05/01/2024;Venta;119000;100000\n"
	require.NoError(t, os.WriteFile(csvFile, []byte(content), 0644))

	_, err := ReadLedgerFromCSV(csvFile)

	var validationErr *parsererror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, csvFile, validationErr.FilePath)
	assert.Contains(t, validationErr.Reason, "invalid operation kind")
}
