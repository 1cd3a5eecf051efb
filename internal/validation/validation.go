// Package validation holds the advisory ledger checks and small input
// checks used by the commands. Ledger findings are warnings for the
// accountant, never errors: a flagged ledger still exports.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"cajapyme/libro-caja/internal/models"
)

const maxReportedFolios = 5

// CheckLedger runs the advisory checks over an assembled ledger and
// returns human-readable warnings in Spanish, ready for display.
func CheckLedger(l *models.Ledger) []string {
	var warnings []string

	if folios := duplicateFolios(l); len(folios) > 0 {
		warnings = append(warnings,
			"Posibles documentos duplicados detectados: "+strings.Join(folios, ", "))
	}

	if basisExceedsFlow(l) {
		warnings = append(warnings,
			"Existen registros donde la Base Imponible supera el Monto Total. Verifique los datos.")
	}

	if !correlativeIsSequential(l) {
		warnings = append(warnings,
			"El correlativo tiene saltos o irregularidades.")
	}

	return warnings
}

// duplicateFolios returns the document numbers of movements sharing
// document number, type and operation kind, in ledger order, capped at
// five. The opening row never participates.
func duplicateFolios(l *models.Ledger) []string {
	counts := make(map[string]int)
	for _, rec := range l.Records {
		if rec.IsOpening() {
			continue
		}
		counts[rec.DuplicateKey()]++
	}

	var folios []string
	seen := make(map[string]bool)
	for _, rec := range l.Records {
		if rec.IsOpening() || counts[rec.DuplicateKey()] < 2 || seen[rec.DocNumber] {
			continue
		}
		seen[rec.DocNumber] = true
		folios = append(folios, rec.DocNumber)
		if len(folios) == maxReportedFolios {
			break
		}
	}
	return folios
}

// basisExceedsFlow reports whether any record carries a taxable base
// above its total flow, with one peso of tolerance for rounding.
func basisExceedsFlow(l *models.Ledger) bool {
	tolerance := decimal.NewFromInt(1)
	for _, rec := range l.Records {
		if rec.Basis.GreaterThan(rec.Flow.Add(tolerance)) {
			return true
		}
	}
	return false
}

func correlativeIsSequential(l *models.Ledger) bool {
	for i, rec := range l.Records {
		if rec.Correlative != i+1 {
			return false
		}
	}
	return true
}

// IsValidPath checks that a given path exists and is accessible.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}

// IsValidReportFormat checks if the given report format is supported.
func IsValidReportFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s. Supported formats are 'text', 'json'", format)
	}
}
