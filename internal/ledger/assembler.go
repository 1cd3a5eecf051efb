// Package ledger assembles canonical records into the cash book: one
// opening row followed by the period's movements in date order, numbered
// 1..N. Every edit rebuilds the whole thing; nothing is patched in place.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"cajapyme/libro-caja/internal/dateresolve"
	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/models"
)

// Opening describes the synthetic first row of the ledger.
type Opening struct {
	Amount      decimal.Decimal
	CompanyRUT  string
	CompanyName string
	Period      string
}

// Assembler builds ledgers out of parsed records.
type Assembler struct {
	logger logging.Logger
}

// NewAssembler creates an assembler. A nil logger falls back to the
// default.
func NewAssembler(logger logging.Logger) *Assembler {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Assembler{logger: logger}
}

// NewOpeningRecord builds the opening balance row. It is dated January 1
// of the period year so it sorts ahead of every movement.
func NewOpeningRecord(opening Opening) (models.CanonicalRecord, error) {
	return models.NewRecordBuilder().
		WithKind(models.OperationOpening).
		WithCounterparty(opening.CompanyRUT).
		WithDate(dateresolve.New(opening.Period).OpeningDate()).
		WithGloss("Saldo Inicial").
		WithFlow(opening.Amount).
		WithOrigin(models.OriginOpening).
		Build()
}

// Assemble builds a ledger from the parsed movements. The movements are
// stably sorted by operation date, the opening row is prepended, and the
// correlative is assigned over the final sequence. The input slice is not
// modified.
func (a *Assembler) Assemble(movements []models.CanonicalRecord, opening Opening) (*models.Ledger, error) {
	openingRecord, err := NewOpeningRecord(opening)
	if err != nil {
		return nil, err
	}

	records := make([]models.CanonicalRecord, 0, len(movements)+1)
	records = append(records, openingRecord)
	records = append(records, movements...)

	ledger := &models.Ledger{
		Period:      opening.Period,
		CompanyRUT:  opening.CompanyRUT,
		CompanyName: opening.CompanyName,
		Records:     records,
	}
	reorder(ledger)

	a.logger.Info("Assembled ledger",
		logging.Field{Key: logging.FieldPeriod, Value: opening.Period},
		logging.Field{Key: logging.FieldRecords, Value: len(ledger.Records)})

	return ledger, nil
}

// reorder pins opening rows first, stably sorts the movements by date so
// same-day rows keep their arrival order, and renumbers the correlative
// from 1.
func reorder(ledger *models.Ledger) {
	opening := make([]models.CanonicalRecord, 0, 1)
	movements := make([]models.CanonicalRecord, 0, len(ledger.Records))
	for _, rec := range ledger.Records {
		if rec.IsOpening() {
			opening = append(opening, rec)
		} else {
			movements = append(movements, rec)
		}
	}

	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date.Before(movements[j].Date)
	})

	records := append(opening, movements...)
	for i := range records {
		records[i].Correlative = i + 1
	}
	ledger.Records = records
}
