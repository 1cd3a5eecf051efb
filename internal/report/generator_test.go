package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cajapyme/libro-caja/internal/models"
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
				Correlative: 2,
				Kind:        models.OperationIncome,
				DocNumber:   "101",
				DocType:     "33",
				Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				Gloss:       "Venta — CLIENTE UNO",
				Flow:        decimal.NewFromInt(119000),
				Basis:       decimal.NewFromInt(100000),
				Origin:      models.OriginSalesInvoice,
			},
		},
	}
}

func sampleTotals() models.Totals {
	return models.Totals{
		TotalIncome:  decimal.NewFromInt(1119000),
		TotalExpense: decimal.NewFromInt(59500),
		NetFlow:      decimal.NewFromInt(1059500),
		IncomeBasis:  decimal.NewFromInt(100000),
		ExpenseBasis: decimal.NewFromInt(50000),
		NetResult:    decimal.NewFromInt(50000),
	}
}

func TestGenerateTextReport(t *testing.T) {
	g := NewReportGenerator()

	out, err := g.GenerateReport(sampleLedger(), sampleTotals(), []string{"El correlativo tiene saltos o irregularidades."}, "text")

	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "LIBRO DE CAJA CONTRIBUYENTES")
	assert.Contains(t, text, "PERÍODO:      2024")
	assert.Contains(t, text, "RUT:          76.543.210-K")
	assert.Contains(t, text, "RAZÓN SOCIAL: COMERCIAL DEMO LTDA")
	assert.Contains(t, text, "REGISTRO DE OPERACIONES")
	assert.Contains(t, text, "Saldo Inicial")
	assert.Contains(t, text, "01/01/2024")
	assert.Contains(t, text, "TOTAL FLUJO INGRESOS (C10)")
	assert.Contains(t, text, "TOTAL FLUJO EGRESOS (C11)")
	assert.Contains(t, text, "SALDO FLUJO DE CAJA (C12)")
	assert.Contains(t, text, "INGRESOS BASE IMPONIBLE (C13)")
	assert.Contains(t, text, "EGRESOS BASE IMPONIBLE (C14)")
	assert.Contains(t, text, "RESULTADO NETO (C15)")
	assert.Contains(t, text, "$1.119.000")
	assert.Contains(t, text, "$1.059.500")
	assert.Contains(t, text, "ADVERTENCIAS DE VALIDACIÓN")
	assert.Contains(t, text, "- El correlativo tiene saltos o irregularidades.")
	assert.Contains(t, text, "Régimen Pro Pyme")
}

func TestTextReportWithoutWarnings(t *testing.T) {
	g := NewReportGenerator()

	out, err := g.GenerateReport(sampleLedger(), sampleTotals(), nil, "text")

	require.NoError(t, err)
	assert.NotContains(t, string(out), "ADVERTENCIAS")
}

func TestGenerateJSONReport(t *testing.T) {
	g := NewReportGenerator()

	out, err := g.GenerateReport(sampleLedger(), sampleTotals(), []string{"aviso"}, "json")

	require.NoError(t, err)
	var decoded PeriodReport
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "2024", decoded.Period)
	assert.Equal(t, "76.543.210-K", decoded.CompanyRUT)
	assert.Equal(t, 2, decoded.Records)
	assert.Equal(t, 1, decoded.Movements)
	assert.True(t, decoded.TotalIncome.Equal(decimal.NewFromInt(1119000)))
	assert.True(t, decoded.NetResult.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, []string{"aviso"}, decoded.Warnings)
}

func TestUnsupportedFormat(t *testing.T) {
	g := NewReportGenerator()

	_, err := g.GenerateReport(sampleLedger(), sampleTotals(), nil, "xlsx")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}
