// Package salesparser converts the SII sales register (registro de
// ventas) into canonical cash movements. Invoices and debit notes enter
// as income, credit notes as expense; receipt and voucher codes belong
// to the daily summary register and are skipped here.
package salesparser

import (
	"cajapyme/libro-caja/internal/classify"
	"cajapyme/libro-caja/internal/colmap"
	"cajapyme/libro-caja/internal/decode"
	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/models"
	"cajapyme/libro-caja/internal/parser"
	"cajapyme/libro-caja/internal/parsererror"
)

// Parser extracts canonical records from a sales register export.
type Parser struct {
	parser.BaseParser
	deps parser.Deps
}

// New creates a sales register parser.
func New(deps parser.Deps, logger logging.Logger) *Parser {
	return &Parser{
		BaseParser: parser.NewBaseParser(logger),
		deps:       deps.Normalize(),
	}
}

// Parse implements parser.Parser for the ventas register.
func (p *Parser) Parse(data []byte, meta parser.FileMeta) (*parser.Result, error) {
	p.GetLogger().Info("Parsing sales register",
		logging.Field{Key: logging.FieldFile, Value: meta.Path})

	table, err := decode.Decode(data, meta.Path, p.GetLogger())
	if err != nil {
		return nil, err
	}

	mapping, missing := colmap.Resolve(colmap.SchemaVentas, table.Headers, p.deps.SchemaAliases(colmap.SchemaVentas))
	if len(missing) > 0 {
		return nil, parsererror.NewMappingError(meta.Path, string(colmap.SchemaVentas), missing)
	}

	folioDates := parser.CollectFolioDates(table, mapping)

	records := make([]models.CanonicalRecord, 0, len(table.Rows))
	skipped := 0
	adjusted := 0
	for i, row := range table.Rows {
		code := classify.DocTypeCode(mapping.Cell(row, colmap.FieldTipoDoc))
		kind, prefix, ok := classify.SaleOperation(code)
		if !ok {
			skipped++
			continue
		}

		total := p.AmountOrZero(mapping.Cell(row, colmap.FieldTotal), i+2)
		if total.IsZero() {
			skipped++
			continue
		}
		neto := p.AmountOrZero(mapping.Cell(row, colmap.FieldNeto), i+2)
		exento := p.AmountOrZero(mapping.Cell(row, colmap.FieldExento), i+2)

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
			WithBasis(neto.Add(exento)).
			WithOrigin(models.OriginSalesInvoice).
			Build()
		if err != nil {
			p.GetLogger().WithError(err).Warn("Skipping sales row that could not be converted",
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
	p.GetLogger().Info("Parsed sales register",
		logging.Field{Key: logging.FieldFile, Value: meta.Path},
		logging.Field{Key: logging.FieldRecords, Value: len(records)},
		logging.Field{Key: logging.FieldSkipped, Value: skipped})

	return &parser.Result{Records: records}, nil
}
