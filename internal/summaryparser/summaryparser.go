// Package summaryparser converts the SII daily receipts summary (resumen
// de ventas de boletas) into canonical cash movements. Each usable row
// aggregates one day of receipts or payment vouchers into a single income
// record covering a folio range.
package summaryparser

import (
	"cajapyme/libro-caja/internal/classify"
	"cajapyme/libro-caja/internal/colmap"
	"cajapyme/libro-caja/internal/decode"
	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/models"
	"cajapyme/libro-caja/internal/parser"
	"cajapyme/libro-caja/internal/parsererror"
	"cajapyme/libro-caja/internal/textutils"
)

const glossPrefix = "Resumen ventas boletas del día"

// Parser extracts canonical records from a receipts summary export.
type Parser struct {
	parser.BaseParser
	deps parser.Deps
}

// New creates a receipts summary parser.
func New(deps parser.Deps, logger logging.Logger) *Parser {
	return &Parser{
		BaseParser: parser.NewBaseParser(logger),
		deps:       deps.Normalize(),
	}
}

// Parse implements parser.Parser for the resumen register.
func (p *Parser) Parse(data []byte, meta parser.FileMeta) (*parser.Result, error) {
	p.GetLogger().Info("Parsing receipts summary",
		logging.Field{Key: logging.FieldFile, Value: meta.Path})

	table, err := decode.Decode(data, meta.Path, p.GetLogger())
	if err != nil {
		return nil, err
	}

	mapping, missing := colmap.Resolve(colmap.SchemaResumen, table.Headers, p.deps.SchemaAliases(colmap.SchemaResumen))
	if len(missing) > 0 {
		return nil, parsererror.NewMappingError(meta.Path, string(colmap.SchemaResumen), missing)
	}

	records := make([]models.CanonicalRecord, 0, len(table.Rows))
	skipped := 0
	adjusted := 0
	for i, row := range table.Rows {
		tipo := mapping.Cell(row, colmap.FieldTipo)
		if tipo == "" {
			skipped++
			continue
		}

		// Invoices appearing in a summary export are already covered by
		// the sales register, and anything outside the receipt and
		// voucher groups has no place here.
		code, ok := textutils.ExtractTypeCode(tipo)
		if !ok || classify.IsSalesInvoice(code) || !classify.IsSummaryDocument(code) {
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

		date, fromCell := p.deps.Dates.Resolve(mapping.Cell(row, colmap.FieldFecha), nil, "", meta.Name)
		if !fromCell {
			adjusted++
		}

		folioRange := textutils.FormatFolioRange(
			mapping.Cell(row, colmap.FieldFolioIni),
			mapping.Cell(row, colmap.FieldFolioFin))

		record, err := models.NewRecordBuilder().
			WithKind(models.OperationIncome).
			WithDocNumber(folioRange).
			WithDocTypeCode(code).
			WithDate(date).
			WithGloss(glossPrefix + " — " + classify.DocumentTypeName(code, p.deps.DocTypeNames, tipo)).
			WithFlow(total).
			WithBasis(neto.Add(exento)).
			WithOrigin(models.OriginSalesSummary).
			Build()
		if err != nil {
			p.GetLogger().WithError(err).Warn("Skipping summary row that could not be converted",
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
	p.GetLogger().Info("Parsed receipts summary",
		logging.Field{Key: logging.FieldFile, Value: meta.Path},
		logging.Field{Key: logging.FieldRecords, Value: len(records)},
		logging.Field{Key: logging.FieldSkipped, Value: skipped})

	return &parser.Result{Records: records}, nil
}
