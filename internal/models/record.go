// Package models defines the canonical ledger data model shared by every
// parser and by the assembler: the record, the ledger, and the period totals.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OperationKind classifies a ledger row. The numeric values are the C2 codes
// of the SII cash book layout and are written as-is to the ledger CSV.
type OperationKind int

const (
	// OperationOpening marks the synthetic opening balance row.
	OperationOpening OperationKind = 0
	// OperationIncome marks cash entering the business.
	OperationIncome OperationKind = 1
	// OperationExpense marks cash leaving the business.
	OperationExpense OperationKind = 2
)

// String returns the Spanish label shown in reports.
func (k OperationKind) String() string {
	switch k {
	case OperationOpening:
		return "Saldo Inicial"
	case OperationIncome:
		return "Ingreso de Caja"
	case OperationExpense:
		return "Egreso de Caja"
	}
	return fmt.Sprintf("OperationKind(%d)", int(k))
}

// Valid reports whether k is one of the three defined kinds.
func (k OperationKind) Valid() bool {
	return k >= OperationOpening && k <= OperationExpense
}

// ParseOperationKind maps a cell value to an OperationKind. It accepts the
// numeric C2 codes used in the ledger CSV plus the Spanish labels accepted
// in pasted manual entries.
func ParseOperationKind(s string) (OperationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "saldo inicial":
		return OperationOpening, nil
	case "1", "i", "ingreso":
		return OperationIncome, nil
	case "2", "e", "egreso":
		return OperationExpense, nil
	}
	return 0, fmt.Errorf("unknown operation kind: %q", s)
}

// CanonicalRecord is one row of the cash ledger. Amounts are kept
// non-negative; the sign of the cash effect is implied by Kind.
type CanonicalRecord struct {
	Correlative  int             // C1, assigned by the assembler
	Kind         OperationKind   // C2
	DocNumber    string          // C3: folio, "A al B" range, or label
	DocType      string          // C4: SII numeric code, or free text for manual entries
	Counterparty string          // C5: RUT, may be empty for aggregated rows
	Date         time.Time       // C6, midnight UTC
	Gloss        string          // C7
	Flow         decimal.Decimal // C8: total cash effect
	Basis        decimal.Decimal // C9: taxable base contribution, may be zero
	Origin       string          // provenance tag, diagnostics only
}

// IsOpening reports whether the record is the synthetic opening balance row.
func (r CanonicalRecord) IsOpening() bool {
	return r.Kind == OperationOpening
}

// DuplicateKey is the identity under which two records count as the same
// document for duplicate detection.
func (r CanonicalRecord) DuplicateKey() string {
	return r.DocNumber + "|" + r.DocType + "|" + strconv.Itoa(int(r.Kind))
}
