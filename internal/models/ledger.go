package models

// Ledger is the assembled cash book for one fiscal period. Records are
// ordered and numbered by the assembler; the ledger is replaced wholesale on
// every edit, never mutated row by row.
type Ledger struct {
	Period      string
	CompanyRUT  string
	CompanyName string
	Records     []CanonicalRecord
}

// Opening returns the opening balance row, or nil when the ledger has none.
func (l *Ledger) Opening() *CanonicalRecord {
	for i := range l.Records {
		if l.Records[i].IsOpening() {
			return &l.Records[i]
		}
	}
	return nil
}

// Movements returns the records other than the opening row, in ledger order.
func (l *Ledger) Movements() []CanonicalRecord {
	movements := make([]CanonicalRecord, 0, len(l.Records))
	for _, r := range l.Records {
		if !r.IsOpening() {
			movements = append(movements, r)
		}
	}
	return movements
}

// Clone returns a deep copy. Editing flows work on a clone so the previous
// ledger value stays intact until the recompute succeeds.
func (l *Ledger) Clone() *Ledger {
	records := make([]CanonicalRecord, len(l.Records))
	copy(records, l.Records)
	return &Ledger{
		Period:      l.Period,
		CompanyRUT:  l.CompanyRUT,
		CompanyName: l.CompanyName,
		Records:     records,
	}
}
