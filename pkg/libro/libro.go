// Package libro exposes the high-level entry points for building,
// editing, re-reading and reporting Pro Pyme cash ledgers without going
// through the CLI.
package libro

import (
	"cajapyme/libro-caja/internal/common"
	"cajapyme/libro-caja/internal/ledger"
	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/models"
	"cajapyme/libro-caja/internal/pipeline"
	"cajapyme/libro-caja/internal/report"
	"cajapyme/libro-caja/internal/validation"
)

// Options describes one ledger run. See pipeline.Options.
type Options = pipeline.Options

// Result carries everything one run produced. See pipeline.Result.
type Result = pipeline.Result

// Edits are the manual corrections applied to an assembled ledger.
type Edits = ledger.Edits

// Build runs the full ingestion pipeline and returns the assembled
// ledger with its totals and findings.
func Build(opts Options) (*Result, error) {
	return pipeline.NewRunner(logging.Default()).Run(opts)
}

// ApplyEdits returns a copy of the ledger with the manual corrections
// applied, re-sorted and renumbered.
func ApplyEdits(l *models.Ledger, edits Edits) *models.Ledger {
	return ledger.ApplyEdits(l, edits)
}

// ComputeTotals recomputes the six report totals of a ledger.
func ComputeTotals(l *models.Ledger) models.Totals {
	return ledger.ComputeTotals(l)
}

// Check runs the ledger consistency checks and returns its findings.
func Check(l *models.Ledger) []string {
	return validation.CheckLedger(l)
}

// WriteCSV writes a ledger in the canonical CSV layout.
func WriteCSV(l *models.Ledger, path string) error {
	return common.WriteLedgerToCSV(l, path)
}

// ReadCSV reads a ledger back from its CSV form.
func ReadCSV(path string) (*models.Ledger, error) {
	return common.ReadLedgerFromCSV(path)
}

// RenderReport renders the period report in the requested format, "text"
// or "json".
func RenderReport(l *models.Ledger, totals models.Totals, warnings []string, format string) ([]byte, error) {
	return report.NewReportGenerator().GenerateReport(l, totals, warnings, format)
}
