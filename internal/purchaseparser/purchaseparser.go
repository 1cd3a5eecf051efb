// Package purchaseparser converts the SII purchase register (registro de
// compras) into canonical cash movements. Every row with a non-zero total
// produces a record: ordinary documents leave as expense, credit notes
// received come back as income.
package purchaseparser

import (
	"cajapyme/libro-caja/internal/classify"
	"cajapyme/libro-caja/internal/colmap"
	"cajapyme/libro-caja/internal/decode"
	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/models"
	"cajapyme/libro-caja/internal/parser"
	"cajapyme/libro-caja/internal/parsererror"
)

// Columns beyond neto and exento that feed the taxable base of a
// purchase. Registers that lack them simply contribute zero.
var basisFields = []string{
	colmap.FieldNetoActivoFijo,
	colmap.FieldIVANoRecuperable,
	colmap.FieldTabacosPuros,
	colmap.FieldTabacosCigarrillos,
	colmap.FieldTabacosElaborados,
	colmap.FieldImpuestoSinCredito,
	colmap.FieldOtroImpuesto,
}

// Parser extracts canonical records from a purchase register export.
type Parser struct {
	parser.BaseParser
	deps parser.Deps
}

// New creates a purchase register parser.
func New(deps parser.Deps, logger logging.Logger) *Parser {
	return &Parser{
		BaseParser: parser.NewBaseParser(logger),
		deps:       deps.Normalize(),
	}
}

// Parse implements parser.Parser for the compras register.
func (p *Parser) Parse(data []byte, meta parser.FileMeta) (*parser.Result, error) {
	p.GetLogger().Info("Parsing purchase register",
		logging.Field{Key: logging.FieldFile, Value: meta.Path})

	table, err := decode.Decode(data, meta.Path, p.GetLogger())
	if err != nil {
		return nil, err
	}

	mapping, missing := colmap.Resolve(colmap.SchemaCompras, table.Headers, p.deps.SchemaAliases(colmap.SchemaCompras))
	if len(missing) > 0 {
		return nil, parsererror.NewMappingError(meta.Path, string(colmap.SchemaCompras), missing)
	}

	folioDates := parser.CollectFolioDates(table, mapping)

	records := make([]models.CanonicalRecord, 0, len(table.Rows))
	skipped := 0
	adjusted := 0
	for i, row := range table.Rows {
		total := p.AmountOrZero(mapping.Cell(row, colmap.FieldTotal), i+2)
		if total.IsZero() {
			skipped++
			continue
		}

		code := classify.DocTypeCode(mapping.Cell(row, colmap.FieldTipoDoc))
		kind, prefix := classify.PurchaseOperation(code)

		basis := p.AmountOrZero(mapping.Cell(row, colmap.FieldNeto), i+2).
			Add(p.AmountOrZero(mapping.Cell(row, colmap.FieldExento), i+2))
		for _, field := range basisFields {
			basis = basis.Add(p.AmountOrZero(mapping.Cell(row, field), i+2))
		}

		folio := mapping.Cell(row, colmap.FieldFolio)
		date, fromCell := p.deps.Dates.Resolve(mapping.Cell(row, colmap.FieldFecha), folioDates, folio, meta.Name)
		if !fromCell {
			adjusted++
		}

		record, err := models.NewRecordBuilder().
			WithKind(kind).
			WithDocNumber(folio).
			WithDocTypeCode(code).
			WithCounterparty(mapping.Cell(row, colmap.FieldRUT)).
			WithDate(date).
			WithGloss(prefix + " — " + mapping.Cell(row, colmap.FieldRazon)).
			WithFlow(total).
			WithBasis(basis).
			WithOrigin(models.OriginPurchase).
			Build()
		if err != nil {
			p.GetLogger().WithError(err).Warn("Skipping purchase row that could not be converted",
				logging.Field{Key: logging.FieldFile, Value: meta.Path},
				logging.Field{Key: logging.FieldRow, Value: i + 2})
			skipped++
			continue
		}

		records = append(records, record)
	}

	if adjusted > 0 {
		p.GetLogger().Debug("Resolved operation dates from fallbacks",
			logging.Field{Key: logging.FieldFile, Value: meta.Path},
			logging.Field{Key: logging.FieldCount, Value: adjusted})
	}
	p.GetLogger().Info("Parsed purchase register",
		logging.Field{Key: logging.FieldFile, Value: meta.Path},
		logging.Field{Key: logging.FieldRecords, Value: len(records)},
		logging.Field{Key: logging.FieldSkipped, Value: skipped})

	return &parser.Result{Records: records}, nil
}
