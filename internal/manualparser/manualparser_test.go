package manualparser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/models"
	"cajapyme/libro-caja/internal/parser"
)

func parseText(t *testing.T, text string) *parser.Result {
	t.Helper()
	p := New(logging.NewMockLogger())
	result, err := p.Parse([]byte(text), parser.FileMeta{Name: "pagos"})
	require.NoError(t, err)
	return result
}

func TestParsePaymentLine(t *testing.T) {
	result := parseText(t, `2,TRF-001,Transferencia,15/01/2024,Pago arriendo oficina,450000`)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, models.OperationExpense, rec.Kind)
	assert.Equal(t, "TRF-001", rec.DocNumber)
	assert.Equal(t, "Transferencia", rec.DocType)
	assert.Empty(t, rec.Counterparty)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, "Pago arriendo oficina", rec.Gloss)
	assert.True(t, rec.Flow.Equal(decimal.NewFromInt(450000)), "flow: %s", rec.Flow)
	assert.True(t, rec.Basis.IsZero(), "basis: %s", rec.Basis)
	assert.Equal(t, models.OriginManualPayment, rec.Origin)
	assert.Empty(t, result.Warnings)
}

func TestParseFeeLine(t *testing.T) {
	result := parseText(t, `2,BH-77,Boleta Honorarios,12.345.678-9,20/01/2024,Juan Pérez,"$151,077","$171,678"`)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, models.OperationExpense, rec.Kind)
	assert.Equal(t, "BH-77", rec.DocNumber)
	assert.Equal(t, "Boleta Honorarios", rec.DocType)
	assert.Equal(t, "12.345.678-9", rec.Counterparty)
	assert.Equal(t, "Honorarios — Juan Pérez", rec.Gloss)
	assert.True(t, rec.Flow.Equal(decimal.NewFromInt(151077)), "flow: %s", rec.Flow)
	assert.True(t, rec.Basis.Equal(decimal.NewFromInt(171678)), "basis: %s", rec.Basis)
	assert.Equal(t, models.OriginProfessionalFee, rec.Origin)
}

func TestKindSpellings(t *testing.T) {
	result := parseText(t,
		"ingreso,R-1,Recibo,05/01/2024,Cobro,1000\n"+
			"i,R-2,Recibo,05/01/2024,Cobro,1000\n"+
			"E,R-3,Recibo,05/01/2024,Devolución,1000\n")

	require.Len(t, result.Records, 3)
	assert.Equal(t, models.OperationIncome, result.Records[0].Kind)
	assert.Equal(t, models.OperationIncome, result.Records[1].Kind)
	assert.Equal(t, models.OperationExpense, result.Records[2].Kind)
}

func TestHeaderLineSkippedSilently(t *testing.T) {
	result := parseText(t,
		"Tipo,Documento,Descripción,Fecha,Glosa,Monto\n"+
			"1,R-1,Recibo,05/01/2024,Cobro,1000\n")

	require.Len(t, result.Records, 1)
	assert.Empty(t, result.Warnings)
}

func TestMalformedLinesWarnAndContinue(t *testing.T) {
	result := parseText(t,
		"1,R-1,Recibo,05/01/2024,Cobro,1000\n"+
			"\n"+
			"1,R-2,Recibo,05/01/2024,Cobro\n"+
			"x,R-3,Recibo,05/01/2024,Cobro,1000\n"+
			"1,R-4,Recibo,fecha mala,Cobro,1000\n"+
			"1,R-5,Recibo,05/01/2024,Cobro,not-a-number\n"+
			"0,R-6,Recibo,05/01/2024,Cobro,1000\n"+
			"1,R-7,Recibo,06/01/2024,Cobro,2000\n")

	require.Len(t, result.Records, 2)
	assert.Equal(t, "R-1", result.Records[0].DocNumber)
	assert.Equal(t, "R-7", result.Records[1].DocNumber)

	require.Len(t, result.Warnings, 5)
	assert.Contains(t, result.Warnings[0], "Línea 3")
	assert.Contains(t, result.Warnings[0], "se esperaban 6 u 8 campos")
	assert.Contains(t, result.Warnings[1], "Línea 4")
	assert.Contains(t, result.Warnings[1], "tipo de operación inválido")
	assert.Contains(t, result.Warnings[2], "Línea 5")
	assert.Contains(t, result.Warnings[2], "fecha inválida")
	assert.Contains(t, result.Warnings[3], "Línea 6")
	assert.Contains(t, result.Warnings[3], "monto inválido")
	assert.Contains(t, result.Warnings[4], "Línea 7")
	assert.Contains(t, result.Warnings[4], "tipo de operación inválido")
}

func TestFlexibleAmountFormats(t *testing.T) {
	result := parseText(t,
		"1,R-1,Recibo,05/01/2024,Venta contado,\"$450.000\"\n"+
			"1,R-2,Recibo,05/01/2024,Venta contado,\"1.234,50\"\n")

	require.Len(t, result.Records, 2)
	assert.True(t, result.Records[0].Flow.Equal(decimal.NewFromInt(450000)), "flow: %s", result.Records[0].Flow)
	assert.True(t, result.Records[1].Flow.Equal(decimal.NewFromFloat(1234.5)), "flow: %s", result.Records[1].Flow)
}

func TestWindowsLineEndings(t *testing.T) {
	result := parseText(t, "1,R-1,Recibo,05/01/2024,Cobro,1000\r\n2,E-1,Egreso,06/01/2024,Pago,500\r\n")

	require.Len(t, result.Records, 2)
	assert.Empty(t, result.Warnings)
}

func TestEmptyInput(t *testing.T) {
	result := parseText(t, "")

	assert.Empty(t, result.Records)
	assert.Empty(t, result.Warnings)
}
