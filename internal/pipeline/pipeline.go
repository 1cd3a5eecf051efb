// Package pipeline orchestrates a full ledger run: it routes the supplied
// register files to the right parser, collects their movements, assembles
// the period ledger and runs the consistency checks on the result.
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cajapyme/libro-caja/internal/dateresolve"
	"cajapyme/libro-caja/internal/factory"
	"cajapyme/libro-caja/internal/fileutils"
	"cajapyme/libro-caja/internal/ledger"
	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/models"
	"cajapyme/libro-caja/internal/parser"
	"cajapyme/libro-caja/internal/parsererror"
	"cajapyme/libro-caja/internal/store"
	"cajapyme/libro-caja/internal/validation"
)

// Options describes one ledger run.
type Options struct {
	Period         string
	CompanyRUT     string
	CompanyName    string
	OpeningBalance decimal.Decimal

	// Register files routed explicitly by the caller.
	VentasFiles  []string
	ComprasFiles []string
	ResumenFiles []string

	// Dir, when set, is scanned for .csv files which are routed to a
	// register by filename keywords.
	Dir string

	// Pasted manual entry text, one line per operation.
	PagosText      string
	HonorariosText string

	// Optional schema override files for the store. Empty values use the
	// store defaults.
	AliasesFile  string
	DocTypesFile string
}

// Result carries everything one run produced. Warnings are user-facing
// messages in Spanish; Findings are the ledger consistency check results.
type Result struct {
	RunID        string
	Ledger       *models.Ledger
	Totals       models.Totals
	Warnings     []string
	Findings     []string
	SkippedFiles []string
}

// Runner executes ledger runs.
type Runner struct {
	logger logging.Logger
}

// NewRunner creates a Runner with the given logger.
func NewRunner(logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Default()
	}
	return &Runner{logger: logger}
}

type source struct {
	kind factory.ParserType
	path string
}

// Run executes one complete ledger run. A file that cannot be read or
// understood is skipped with a warning; the rest of the batch continues.
// It returns parsererror.ErrNoUsableInput when sources were supplied but
// none of them yielded a single movement.
func (r *Runner) Run(opts Options) (*Result, error) {
	runID := uuid.NewString()
	log := r.logger.WithField(logging.FieldRunID, runID)
	log.Info("Starting ledger run",
		logging.Field{Key: logging.FieldPeriod, Value: opts.Period})

	deps, err := r.buildDeps(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: runID}

	sources, err := r.collectSources(opts, result)
	if err != nil {
		return nil, err
	}

	var movements []models.CanonicalRecord
	attempted := len(sources)

	for _, src := range sources {
		p, err := factory.GetParserWithLogger(src.kind, deps, r.logger)
		if err != nil {
			return nil, err
		}
		movements = append(movements, r.parseFile(p, src.path, result)...)
	}

	if strings.TrimSpace(opts.PagosText) != "" {
		attempted++
		movements = append(movements, r.parseManual(opts.PagosText, "Pagos manuales", deps, result)...)
	}
	if strings.TrimSpace(opts.HonorariosText) != "" {
		attempted++
		movements = append(movements, r.parseManual(opts.HonorariosText, "Honorarios", deps, result)...)
	}

	if attempted > 0 && len(movements) == 0 {
		return nil, parsererror.ErrNoUsableInput
	}

	assembled, err := ledger.NewAssembler(r.logger).Assemble(movements, ledger.Opening{
		Amount:      opts.OpeningBalance,
		CompanyRUT:  opts.CompanyRUT,
		CompanyName: opts.CompanyName,
		Period:      opts.Period,
	})
	if err != nil {
		return nil, err
	}

	result.Ledger = assembled
	result.Totals = ledger.ComputeTotals(assembled)
	result.Findings = validation.CheckLedger(assembled)

	log.Info("Ledger run complete",
		logging.Field{Key: logging.FieldRecords, Value: len(assembled.Records)},
		logging.Field{Key: logging.FieldWarnings, Value: len(result.Warnings)},
		logging.Field{Key: logging.FieldSkipped, Value: len(result.SkippedFiles)})

	return result, nil
}

// buildDeps loads the schema override tables and wires the parser
// dependencies for the selected period.
func (r *Runner) buildDeps(opts Options) (parser.Deps, error) {
	schemaStore := store.NewSchemaStore(opts.AliasesFile, opts.DocTypesFile)

	aliases, err := schemaStore.LoadAliases()
	if err != nil {
		return parser.Deps{}, fmt.Errorf("loading column aliases: %w", err)
	}
	names, err := schemaStore.LoadDocTypeNames()
	if err != nil {
		return parser.Deps{}, fmt.Errorf("loading document type names: %w", err)
	}

	return parser.Deps{
		Aliases:      aliases,
		DocTypeNames: names,
		Dates:        dateresolve.New(opts.Period),
	}, nil
}

// collectSources merges the explicitly routed files with the files found
// under Dir. An unroutable file under Dir is skipped with a warning.
func (r *Runner) collectSources(opts Options, result *Result) ([]source, error) {
	var sources []source
	for _, f := range opts.VentasFiles {
		sources = append(sources, source{factory.Ventas, f})
	}
	for _, f := range opts.ComprasFiles {
		sources = append(sources, source{factory.Compras, f})
	}
	for _, f := range opts.ResumenFiles {
		sources = append(sources, source{factory.Resumen, f})
	}

	if opts.Dir == "" {
		return sources, nil
	}

	files, err := fileutils.ListFilesWithExtension(opts.Dir, ".csv")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		name := filepath.Base(f)
		kind, ok := RouteFilename(name)
		if !ok {
			r.logger.Warn("Could not route directory file to a register",
				logging.Field{Key: logging.FieldFile, Value: f})
			result.SkippedFiles = append(result.SkippedFiles, name)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("No se pudo clasificar el archivo %s. Se omite.", name))
			continue
		}
		sources = append(sources, source{kind, f})
	}
	return sources, nil
}

// RouteFilename decides which register a file belongs to from its name.
// Summary names are checked first because they commonly contain "ventas"
// as well ("resumen_ventas_boletas.csv").
func RouteFilename(name string) (factory.ParserType, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "resumen") || strings.Contains(lower, "boleta"):
		return factory.Resumen, true
	case strings.Contains(lower, "compra"):
		return factory.Compras, true
	case strings.Contains(lower, "venta"):
		return factory.Ventas, true
	default:
		return "", false
	}
}

// parseFile reads and parses one register file. Any failure demotes the
// file to a skip with a user-facing warning so the batch keeps going.
func (r *Runner) parseFile(p parser.Parser, path string, result *Result) []models.CanonicalRecord {
	name := filepath.Base(path)

	data, err := fileutils.ReadFile(path)
	if err != nil {
		r.logger.WithError(err).Warn("Could not read input file",
			logging.Field{Key: logging.FieldFile, Value: path})
		result.SkippedFiles = append(result.SkippedFiles, name)
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No se pudo leer el archivo %s. Se omite.", name))
		return nil
	}

	out, err := p.Parse(data, parser.FileMeta{Path: path, Name: name})
	if err != nil {
		log := r.logger.WithError(err)
		var mappingErr *parsererror.MappingError
		switch {
		case errors.As(err, &mappingErr):
			log = log.WithField(logging.FieldSchema, mappingErr.Schema)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("No se reconocieron columnas en %s: faltan %s. Se omite.",
					name, strings.Join(mappingErr.Missing, ", ")))
		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("No se pudo leer el archivo %s. Se omite.", name))
		}
		log.Warn("Skipping input file",
			logging.Field{Key: logging.FieldFile, Value: path})
		result.SkippedFiles = append(result.SkippedFiles, name)
		return nil
	}

	result.Warnings = append(result.Warnings, out.Warnings...)
	return out.Records
}

// parseManual parses one pasted manual entry block. Its line warnings are
// prefixed with the block label so the user can tell the sources apart.
func (r *Runner) parseManual(text, label string, deps parser.Deps, result *Result) []models.CanonicalRecord {
	p, err := factory.GetParserWithLogger(factory.Manual, deps, r.logger)
	if err != nil {
		return nil
	}

	out, err := p.Parse([]byte(text), parser.FileMeta{Name: label})
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No se pudieron procesar las entradas de %s.", label))
		return nil
	}

	for _, w := range out.Warnings {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", label, w))
	}
	return out.Records
}
