package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// RecordBuilder provides a fluent API for constructing canonical records.
// The first setter error sticks; Build reports it and validates the result.
type RecordBuilder struct {
	rec CanonicalRecord
	err error
}

// NewRecordBuilder creates a RecordBuilder with zero amounts.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{
		rec: CanonicalRecord{
			Flow:  decimal.Zero,
			Basis: decimal.Zero,
		},
	}
}

// WithKind sets the operation kind
func (b *RecordBuilder) WithKind(kind OperationKind) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if !kind.Valid() {
		b.err = fmt.Errorf("invalid operation kind: %d", kind)
		return b
	}
	b.rec.Kind = kind
	return b
}

// WithDocNumber sets the document number (folio, range or label)
func (b *RecordBuilder) WithDocNumber(number string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.DocNumber = number
	return b
}

// WithDocTypeCode sets the document type from an SII numeric code
func (b *RecordBuilder) WithDocTypeCode(code int) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.DocType = strconv.Itoa(code)
	return b
}

// WithDocTypeLabel sets the document type from a free-text label, as used
// by manual entries
func (b *RecordBuilder) WithDocTypeLabel(label string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.DocType = label
	return b
}

// WithCounterparty sets the counterparty tax identifier
func (b *RecordBuilder) WithCounterparty(rut string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.Counterparty = rut
	return b
}

// WithDate sets the operation date, discarding any time-of-day component
func (b *RecordBuilder) WithDate(date time.Time) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if date.IsZero() {
		b.err = errors.New("operation date cannot be zero")
		return b
	}
	y, m, d := date.Date()
	b.rec.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return b
}

// WithGloss sets the human-readable narrative
func (b *RecordBuilder) WithGloss(gloss string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.Gloss = gloss
	return b
}

// WithFlow sets the cash effect amount. The absolute value is stored; the
// direction is implied by the operation kind.
func (b *RecordBuilder) WithFlow(amount decimal.Decimal) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.Flow = amount.Abs()
	return b
}

// WithBasis sets the taxable base contribution, stored as absolute value
func (b *RecordBuilder) WithBasis(amount decimal.Decimal) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.Basis = amount.Abs()
	return b
}

// WithOrigin sets the provenance tag
func (b *RecordBuilder) WithOrigin(origin string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.Origin = origin
	return b
}

// Build validates the record and returns it.
func (b *RecordBuilder) Build() (CanonicalRecord, error) {
	if b.err != nil {
		return CanonicalRecord{}, fmt.Errorf("builder error: %w", b.err)
	}

	if b.rec.Date.IsZero() {
		return CanonicalRecord{}, errors.New("operation date is required")
	}

	// Kind zero value is OperationOpening, so an unset kind would silently
	// mint extra opening rows. Require the matching origin tag.
	if b.rec.Kind == OperationOpening && b.rec.Origin != OriginOpening {
		return CanonicalRecord{}, errors.New("opening kind requires the opening origin tag")
	}

	return b.rec, nil
}

// Reset clears the builder state and returns a new builder
func (b *RecordBuilder) Reset() *RecordBuilder {
	return NewRecordBuilder()
}
