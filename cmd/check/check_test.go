package check_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cajapyme/libro-caja/cmd/check"
	"cajapyme/libro-caja/internal/common"
	"cajapyme/libro-caja/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func writeLedger(t *testing.T, records []models.CanonicalRecord) string {
	t.Helper()
	l := &models.Ledger{
		Period:      "2024",
		CompanyRUT:  "76.543.210-K",
		CompanyName: "COMERCIAL DEMO LTDA",
		Records:     records,
	}
	path := filepath.Join(t.TempDir(), "libro.csv")
	require.NoError(t, common.WriteLedgerToCSV(l, path))
	return path
}

func TestCheckCleanLedger(t *testing.T) {
	path := writeLedger(t, []models.CanonicalRecord{
		{
			Correlative:  1,
			Kind:         models.OperationOpening,
			Counterparty: "76.543.210-K",
			Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Gloss:        "Saldo Inicial",
			Flow:         decimal.NewFromInt(500000),
			Basis:        decimal.Zero,
			Origin:       models.OriginOpening,
		},
		{
			Correlative: 2,
			Kind:        models.OperationIncome,
			DocNumber:   "101",
			DocType:     "33",
			Date:        day(15),
			Gloss:       "Venta — CLIENTE UNO",
			Flow:        decimal.NewFromInt(119000),
			Basis:       decimal.NewFromInt(100000),
			Origin:      models.OriginSalesInvoice,
		},
	})

	led, findings, err := check.Run(path)

	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Len(t, led.Records, 2)
	assert.Equal(t, "2024", led.Period)
	assert.Equal(t, "76.543.210-K", led.CompanyRUT)
}

func TestCheckReportsCorrelativeGap(t *testing.T) {
	path := writeLedger(t, []models.CanonicalRecord{
		{
			Correlative:  1,
			Kind:         models.OperationOpening,
			Counterparty: "76.543.210-K",
			Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Gloss:        "Saldo Inicial",
			Flow:         decimal.NewFromInt(500000),
			Origin:       models.OriginOpening,
		},
		{
			Correlative: 3,
			Kind:        models.OperationExpense,
			DocNumber:   "555",
			DocType:     "33",
			Date:        day(10),
			Gloss:       "Compra — PROVEEDOR",
			Flow:        decimal.NewFromInt(59500),
			Basis:       decimal.NewFromInt(50000),
			Origin:      models.OriginPurchase,
		},
	})

	_, findings, err := check.Run(path)

	require.NoError(t, err)
	assert.Contains(t, findings, "El correlativo tiene saltos o irregularidades.")
}

func TestCheckMissingFile(t *testing.T) {
	_, _, err := check.Run(filepath.Join(t.TempDir(), "no-existe.csv"))
	require.Error(t, err)
}

func TestCommandMetadata(t *testing.T) {
	assert.Equal(t, "check", check.Cmd.Use)
	assert.Contains(t, check.Cmd.Short, "Re-validate")
	assert.NotNil(t, check.Cmd.Run)
}
