// Package manualparser converts pasted manual entries into canonical
// cash movements. Two fixed line formats are accepted: a 6-field generic
// payment and an 8-field professional fee line. Lines are independent;
// a malformed line is reported and the rest of the batch continues.
package manualparser

import (
	"encoding/csv"
	"fmt"
	"strings"

	"cajapyme/libro-caja/internal/currencyutils"
	"cajapyme/libro-caja/internal/dateutils"
	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/models"
	"cajapyme/libro-caja/internal/parser"
)

// Words that identify a pasted header line. A header is only assumed when
// the first field is not a valid operation kind.
var headerKeywords = []string{"tipo", "fecha", "monto", "documento", "glosa", "rut", "honorario"}

// Parser extracts canonical records from pasted manual entry lines.
type Parser struct {
	parser.BaseParser
}

// New creates a manual entry parser.
func New(logger logging.Logger) *Parser {
	return &Parser{
		BaseParser: parser.NewBaseParser(logger),
	}
}

// Parse implements parser.Parser for pasted text. Field counts choose the
// format: 6 fields make a generic payment, 8 a professional fee.
func (p *Parser) Parse(data []byte, meta parser.FileMeta) (*parser.Result, error) {
	result := &parser.Result{}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for i, line := range lines {
		lineNo := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields, err := splitLine(line)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Línea %d: no se pudo leer la línea (%v)", lineNo, err))
			continue
		}

		record, reason := p.convertLine(fields)
		if reason != "" {
			if reason == reasonHeader {
				p.GetLogger().Debug("Skipping pasted header line",
					logging.Field{Key: logging.FieldLine, Value: lineNo})
				continue
			}
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Línea %d: %s", lineNo, reason))
			continue
		}

		result.Records = append(result.Records, record)
	}

	p.GetLogger().Info("Parsed manual entries",
		logging.Field{Key: logging.FieldFile, Value: meta.Name},
		logging.Field{Key: logging.FieldRecords, Value: len(result.Records)},
		logging.Field{Key: logging.FieldWarnings, Value: len(result.Warnings)})

	return result, nil
}

// reasonHeader is a sentinel for lines that look like pasted headers and
// are dropped without a warning.
const reasonHeader = "\x00header"

func splitLine(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = ','
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	fields, err := reader.Read()
	if err != nil {
		return nil, err
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

// convertLine builds a record from one split line. A non-empty reason
// means the line was rejected.
func (p *Parser) convertLine(fields []string) (models.CanonicalRecord, string) {
	if len(fields) != 6 && len(fields) != 8 {
		return models.CanonicalRecord{}, fmt.Sprintf("se esperaban 6 u 8 campos, hay %d", len(fields))
	}

	kind, err := models.ParseOperationKind(fields[0])
	if err != nil {
		if looksLikeHeader(fields) {
			return models.CanonicalRecord{}, reasonHeader
		}
		return models.CanonicalRecord{}, fmt.Sprintf("tipo de operación inválido '%s'", fields[0])
	}
	if kind == models.OperationOpening {
		return models.CanonicalRecord{}, fmt.Sprintf("tipo de operación inválido '%s'", fields[0])
	}

	if len(fields) == 6 {
		return p.convertPayment(kind, fields)
	}
	return p.convertFee(kind, fields)
}

// convertPayment reads the 6-field generic payment format: kind, document
// number, description, date, narrative, amount.
func (p *Parser) convertPayment(kind models.OperationKind, fields []string) (models.CanonicalRecord, string) {
	date, _, err := dateutils.ParseDate(fields[3])
	if err != nil {
		return models.CanonicalRecord{}, fmt.Sprintf("fecha inválida '%s'", fields[3])
	}

	amount, err := currencyutils.ParseFlexibleAmount(fields[5])
	if err != nil {
		return models.CanonicalRecord{}, fmt.Sprintf("monto inválido '%s'", fields[5])
	}

	record, err := models.NewRecordBuilder().
		WithKind(kind).
		WithDocNumber(fields[1]).
		WithDocTypeLabel(fields[2]).
		WithDate(date).
		WithGloss(fields[4]).
		WithFlow(amount).
		WithOrigin(models.OriginManualPayment).
		Build()
	if err != nil {
		return models.CanonicalRecord{}, err.Error()
	}
	return record, ""
}

// convertFee reads the 8-field professional fee format: kind, document
// number, document type label, counterparty id, date, name, paid amount,
// gross amount. The paid amount is the cash flow; the gross amount feeds
// the taxable base.
func (p *Parser) convertFee(kind models.OperationKind, fields []string) (models.CanonicalRecord, string) {
	date, _, err := dateutils.ParseDate(fields[4])
	if err != nil {
		return models.CanonicalRecord{}, fmt.Sprintf("fecha inválida '%s'", fields[4])
	}

	paid, err := currencyutils.ParseFlexibleAmount(fields[6])
	if err != nil {
		return models.CanonicalRecord{}, fmt.Sprintf("monto inválido '%s'", fields[6])
	}
	gross, err := currencyutils.ParseFlexibleAmount(fields[7])
	if err != nil {
		return models.CanonicalRecord{}, fmt.Sprintf("monto inválido '%s'", fields[7])
	}

	record, err := models.NewRecordBuilder().
		WithKind(kind).
		WithDocNumber(fields[1]).
		WithDocTypeLabel(fields[2]).
		WithCounterparty(fields[3]).
		WithDate(date).
		WithGloss("Honorarios — " + fields[5]).
		WithFlow(paid).
		WithBasis(gross).
		WithOrigin(models.OriginProfessionalFee).
		Build()
	if err != nil {
		return models.CanonicalRecord{}, err.Error()
	}
	return record, ""
}

func looksLikeHeader(fields []string) bool {
	joined := strings.ToLower(strings.Join(fields, " "))
	for _, keyword := range headerKeywords {
		if strings.Contains(joined, keyword) {
			return true
		}
	}
	return false
}
