package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"cajapyme/libro-caja/internal/models"
)

// Edits captures what a reviewing user may change before export: the
// opening amount and any operation date, the latter keyed by the row's
// correlative number.
type Edits struct {
	OpeningAmount *decimal.Decimal
	Dates         map[int]time.Time
}

// ApplyEdits returns a new ledger with the edits applied, re-sorted and
// renumbered as one step. The input ledger is left untouched; date edits
// pointing at unknown correlatives are ignored.
func ApplyEdits(original *models.Ledger, edits Edits) *models.Ledger {
	ledger := original.Clone()

	if edits.OpeningAmount != nil {
		if opening := ledger.Opening(); opening != nil {
			opening.Flow = edits.OpeningAmount.Abs()
		}
	}

	if len(edits.Dates) > 0 {
		for i := range ledger.Records {
			date, ok := edits.Dates[ledger.Records[i].Correlative]
			if !ok || date.IsZero() {
				continue
			}
			y, m, d := date.Date()
			ledger.Records[i].Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		}
	}

	reorder(ledger)
	return ledger
}
