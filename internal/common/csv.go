// Package common provides the CSV serialization shared by the commands:
// the flat ledger row shape, the writers and the readers.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cajapyme/libro-caja/internal/config"
	"cajapyme/libro-caja/internal/dateutils"
	"cajapyme/libro-caja/internal/models"
	"cajapyme/libro-caja/internal/parsererror"
)

var log = config.Logger

// Delimiter is the global CSV delimiter for ledger files. SII exports and
// Chilean spreadsheet tooling default to semicolons.
var Delimiter rune = ';'

func init() {
	// Fallback to the environment for processes that skip config loading
	if val := os.Getenv("LIBROCAJA_CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter used for ledger CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// LedgerCSVRow is one ledger row in its exported CSV shape. The headers
// are the official cash book column names.
type LedgerCSVRow struct {
	Correlative  int             `csv:"N° Correlativo"`
	Kind         int             `csv:"Tipo Operación"`
	DocNumber    string          `csv:"N° Documento"`
	DocType      string          `csv:"Tipo Documento"`
	Counterparty string          `csv:"RUT Emisor"`
	Date         string          `csv:"Fecha Operación"`
	Gloss        string          `csv:"Glosa de Operación"`
	Flow         decimal.Decimal `csv:"C8"`
	Basis        decimal.Decimal `csv:"C9"`
}

// RecordToCSVRow flattens a canonical record for export.
func RecordToCSVRow(rec models.CanonicalRecord) LedgerCSVRow {
	return LedgerCSVRow{
		Correlative:  rec.Correlative,
		Kind:         int(rec.Kind),
		DocNumber:    rec.DocNumber,
		DocType:      rec.DocType,
		Counterparty: rec.Counterparty,
		Date:         dateutils.ToChileanFormat(rec.Date),
		Gloss:        rec.Gloss,
		Flow:         rec.Flow,
		Basis:        rec.Basis,
	}
}

// CSVRowToRecord rebuilds a canonical record from its exported shape.
func CSVRowToRecord(row LedgerCSVRow) (models.CanonicalRecord, error) {
	kind := models.OperationKind(row.Kind)
	if !kind.Valid() {
		return models.CanonicalRecord{}, fmt.Errorf("row %d: invalid operation kind %d", row.Correlative, row.Kind)
	}

	date, _, err := dateutils.ParseDate(row.Date)
	if err != nil {
		return models.CanonicalRecord{}, fmt.Errorf("row %d: %w", row.Correlative, err)
	}

	origin := ""
	if kind == models.OperationOpening {
		origin = models.OriginOpening
	}

	return models.CanonicalRecord{
		Correlative:  row.Correlative,
		Kind:         kind,
		DocNumber:    row.DocNumber,
		DocType:      row.DocType,
		Counterparty: row.Counterparty,
		Date:         date,
		Gloss:        row.Gloss,
		Flow:         row.Flow,
		Basis:        row.Basis,
		Origin:       origin,
	}, nil
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.WithField("file", filePath).Info("Reading CSV file")

	file, err := os.Open(filePath) // #nosec G304 -- path comes from user input
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = Delimiter
		r.LazyQuotes = true
		return r
	})
	defer gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return csv.NewReader(in)
	})

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField("count", len(rows)).Info("Successfully read CSV data")
	return rows, nil
}

// WriteLedgerToCSV writes an assembled ledger to a CSV file. All commands
// use this function to ensure consistent output.
func WriteLedgerToCSV(l *models.Ledger, csvFile string) error {
	if l == nil {
		return fmt.Errorf("cannot write nil ledger to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(l.Records),
	}).Info("Writing ledger to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- path comes from user input
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]LedgerCSVRow, 0, len(l.Records))
	for _, rec := range l.Records {
		rows = append(rows, RecordToCSVRow(rec))
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal ledger to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(rows),
	}).Info("Successfully wrote ledger to CSV file")

	return nil
}

// ReadLedgerFromCSV reads a previously exported ledger back. The company
// RUT and period are recovered from the opening row.
func ReadLedgerFromCSV(csvFile string) (*models.Ledger, error) {
	rows, err := ReadCSVFile[LedgerCSVRow](csvFile)
	if err != nil {
		return nil, err
	}

	records := make([]models.CanonicalRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := CSVRowToRecord(row)
		if err != nil {
			return nil, &parsererror.ValidationError{FilePath: csvFile, Reason: err.Error()}
		}
		records = append(records, rec)
	}

	l := &models.Ledger{Records: records}
	if opening := l.Opening(); opening != nil {
		l.CompanyRUT = opening.Counterparty
		l.Period = strconv.Itoa(opening.Date.Year())
	}
	return l, nil
}
