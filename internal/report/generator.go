// Package report renders the period summary for the accountant: the
// official totals block plus the assembled operations, as plain text or
// JSON. Spreadsheet styling is out of scope; the CSV export carries the
// ledger itself.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cajapyme/libro-caja/internal/currencyutils"
	"cajapyme/libro-caja/internal/dateutils"
	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/models"
)

const reportTitle = "LIBRO DE CAJA CONTRIBUYENTES ACOGIDOS AL RÉGIMEN DEL ART. 14 LETRA D) N°3 Y N°8 LETRA (a) LIR"

const reportFooter = "Documento generado conforme al Art. 14 D N°3 y N°8(a) LIR — Régimen Pro Pyme — SII Chile"

// PeriodReport is the JSON shape of the period summary.
type PeriodReport struct {
	Period       string          `json:"period"`
	CompanyRUT   string          `json:"company_rut"`
	CompanyName  string          `json:"company_name"`
	Records      int             `json:"records"`
	Movements    int             `json:"movements"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetFlow      decimal.Decimal `json:"net_flow"`
	IncomeBasis  decimal.Decimal `json:"income_basis"`
	ExpenseBasis decimal.Decimal `json:"expense_basis"`
	NetResult    decimal.Decimal `json:"net_result"`
	Warnings     []string        `json:"warnings,omitempty"`
}

// ReportGenerator renders period reports in various formats.
type ReportGenerator struct {
	logger *logrus.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{
		logger: logging.GetLogger(),
	}
}

// GenerateReport renders the report in the specified format (text or json).
// It returns the report as a byte slice and an error if the format is
// unsupported.
func (g *ReportGenerator) GenerateReport(l *models.Ledger, totals models.Totals, warnings []string, format string) ([]byte, error) {
	switch format {
	case "text":
		return g.generateTextReport(l, totals, warnings), nil
	case "json":
		return g.generateJSONReport(l, totals, warnings)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateTextReport(l *models.Ledger, totals models.Totals, warnings []string) []byte {
	var b strings.Builder

	b.WriteString(reportTitle + "\n\n")
	fmt.Fprintf(&b, "PERÍODO:      %s\n", l.Period)
	fmt.Fprintf(&b, "RUT:          %s\n", l.CompanyRUT)
	fmt.Fprintf(&b, "RAZÓN SOCIAL: %s\n\n", l.CompanyName)

	b.WriteString("REGISTRO DE OPERACIONES\n")
	fmt.Fprintf(&b, "%-4s %-3s %-10s %-14s %-16s %-40s %16s %16s\n",
		"C1", "C2", "C6 FECHA", "C3 DOCUMENTO", "C4 TIPO", "C7 GLOSA", "C8 MONTO", "C9 BASE")
	for _, rec := range l.Records {
		fmt.Fprintf(&b, "%-4d %-3d %-10s %-14s %-16s %-40s %16s %16s\n",
			rec.Correlative,
			int(rec.Kind),
			dateutils.ToChileanFormat(rec.Date),
			truncate(rec.DocNumber, 14),
			truncate(rec.DocType, 16),
			truncate(rec.Gloss, 40),
			currencyutils.FormatAmount(rec.Flow, "CLP"),
			currencyutils.FormatAmount(rec.Basis, "CLP"))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-32s %16s\n", "TOTAL FLUJO INGRESOS (C10)", currencyutils.FormatAmount(totals.TotalIncome, "CLP"))
	fmt.Fprintf(&b, "%-32s %16s\n", "TOTAL FLUJO EGRESOS (C11)", currencyutils.FormatAmount(totals.TotalExpense, "CLP"))
	fmt.Fprintf(&b, "%-32s %16s\n", "SALDO FLUJO DE CAJA (C12)", currencyutils.FormatAmount(totals.NetFlow, "CLP"))
	fmt.Fprintf(&b, "%-32s %16s\n", "INGRESOS BASE IMPONIBLE (C13)", currencyutils.FormatAmount(totals.IncomeBasis, "CLP"))
	fmt.Fprintf(&b, "%-32s %16s\n", "EGRESOS BASE IMPONIBLE (C14)", currencyutils.FormatAmount(totals.ExpenseBasis, "CLP"))
	fmt.Fprintf(&b, "%-32s %16s\n", "RESULTADO NETO (C15)", currencyutils.FormatAmount(totals.NetResult, "CLP"))

	if len(warnings) > 0 {
		b.WriteString("\nADVERTENCIAS DE VALIDACIÓN\n")
		for _, warning := range warnings {
			b.WriteString("- " + warning + "\n")
		}
	}

	b.WriteString("\n" + reportFooter + "\n")
	return []byte(b.String())
}

func (g *ReportGenerator) generateJSONReport(l *models.Ledger, totals models.Totals, warnings []string) ([]byte, error) {
	period := PeriodReport{
		Period:       l.Period,
		CompanyRUT:   l.CompanyRUT,
		CompanyName:  l.CompanyName,
		Records:      len(l.Records),
		Movements:    len(l.Movements()),
		TotalIncome:  totals.TotalIncome,
		TotalExpense: totals.TotalExpense,
		NetFlow:      totals.NetFlow,
		IncomeBasis:  totals.IncomeBasis,
		ExpenseBasis: totals.ExpenseBasis,
		NetResult:    totals.NetResult,
		Warnings:     warnings,
	}

	jsonReport, err := json.MarshalIndent(period, "", "  ")
	if err != nil {
		g.logger.Errorf("Failed to marshal JSON report: %v", err)
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return jsonReport, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
