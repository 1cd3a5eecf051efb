// Package process implements the command that builds the cash ledger.
package process

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cajapyme/libro-caja/cmd/root"
	"cajapyme/libro-caja/internal/common"
	"cajapyme/libro-caja/internal/config"
	"cajapyme/libro-caja/internal/currencyutils"
	"cajapyme/libro-caja/internal/fileutils"
	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/parsererror"
	"cajapyme/libro-caja/internal/pipeline"
	"cajapyme/libro-caja/internal/report"
	"cajapyme/libro-caja/internal/validation"
)

var (
	ventasFiles    []string
	comprasFiles   []string
	resumenFiles   []string
	inputDir       string
	pagosFile      string
	honorariosFile string
	periodo        string
	companyRUT     string
	companyName    string
	saldoInicial   string
	aliasesFile    string
	docTypesFile   string
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Build the cash ledger from register exports and manual entries",
	Long: `Build the period cash ledger from SII register exports (ventas, compras,
resumen de boletas), pasted manual payment and professional fee entries,
and the period opening balance. The ledger CSV is written to the output
file and the period report is printed.`,
	Run: processFunc,
}

func init() {
	Cmd.Flags().StringArrayVar(&ventasFiles, "ventas", nil, "Sales register export (repeatable)")
	Cmd.Flags().StringArrayVar(&comprasFiles, "compras", nil, "Purchase register export (repeatable)")
	Cmd.Flags().StringArrayVar(&resumenFiles, "resumen", nil, "Receipt summary export (repeatable)")
	Cmd.Flags().StringVar(&inputDir, "dir", "", "Directory scanned for register exports, routed by filename")
	Cmd.Flags().StringVar(&pagosFile, "pagos", "", "Text file with manual payment lines")
	Cmd.Flags().StringVar(&honorariosFile, "honorarios", "", "Text file with professional fee lines")
	Cmd.Flags().StringVar(&periodo, "periodo", "", "Tax period, e.g. 2024")
	Cmd.Flags().StringVar(&companyRUT, "rut", "", "Company RUT")
	Cmd.Flags().StringVar(&companyName, "razon-social", "", "Company name")
	Cmd.Flags().StringVar(&saldoInicial, "saldo-inicial", "", "Opening cash balance")
	Cmd.Flags().StringVar(&aliasesFile, "aliases", "", "Column alias override file")
	Cmd.Flags().StringVar(&docTypesFile, "doctypes", "", "Document type name override file")
}

func processFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Libro de caja process command called")

	opts, outputFile, format, err := resolveOptions()
	if err != nil {
		root.Log.Fatalf("%v", err)
	}

	reportBytes, result, err := Run(opts, outputFile, format, root.GetLogrusAdapter())
	if err != nil {
		root.Log.Fatalf("Error building the libro de caja: %v", err)
	}

	for _, w := range result.Warnings {
		root.Log.Warn(w)
	}
	for _, f := range result.Findings {
		root.Log.Warn(f)
	}

	fmt.Println(string(reportBytes))

	root.Log.WithFields(logrus.Fields{
		"output_file": outputFile,
		"records":     len(result.Ledger.Records),
	}).Info("Libro de caja generated successfully!")
}

// Run executes the build: ingestion pipeline, ledger CSV and period
// report. It is split from the cobra handler so it can be exercised
// directly.
func Run(opts pipeline.Options, outputFile, format string, log logging.Logger) ([]byte, *pipeline.Result, error) {
	result, err := pipeline.NewRunner(log).Run(opts)
	if err != nil {
		return nil, nil, err
	}

	if err := common.WriteLedgerToCSV(result.Ledger, outputFile); err != nil {
		return nil, nil, err
	}

	// The report carries both the parse warnings and the consistency
	// findings in its advertencias section.
	warnings := make([]string, 0, len(result.Warnings)+len(result.Findings))
	warnings = append(warnings, result.Warnings...)
	warnings = append(warnings, result.Findings...)

	reportBytes, err := report.NewReportGenerator().GenerateReport(result.Ledger, result.Totals, warnings, format)
	if err != nil {
		return nil, nil, err
	}

	return reportBytes, result, nil
}

// resolveOptions merges the command flags with the configuration defaults
// and loads the pasted entry files.
func resolveOptions() (pipeline.Options, string, string, error) {
	cfg := config.GetGlobalConfig()

	period := fallback(periodo, cfg.Ledger.Period)
	rut := fallback(companyRUT, cfg.Company.RUT)
	saldo := fallback(saldoInicial, cfg.Ledger.OpeningBalance)
	format := fallback(root.SharedFlags.Report, cfg.Report.Format)

	if err := validation.IsValidReportFormat(format); err != nil {
		return pipeline.Options{}, "", "", err
	}

	opening, err := currencyutils.ParseFlexibleAmount(saldo)
	if err != nil {
		return pipeline.Options{}, "", "", &parsererror.ParseError{
			Source: "saldo inicial",
			Field:  "monto",
			Value:  saldo,
			Err:    err,
		}
	}

	pagos, err := readEntryFile(pagosFile)
	if err != nil {
		return pipeline.Options{}, "", "", err
	}
	honorarios, err := readEntryFile(honorariosFile)
	if err != nil {
		return pipeline.Options{}, "", "", err
	}

	outputFile := root.SharedFlags.Output
	if outputFile == "" {
		outputFile = DefaultOutputName(rut, period)
	}

	opts := pipeline.Options{
		Period:         period,
		CompanyRUT:     rut,
		CompanyName:    fallback(companyName, cfg.Company.Name),
		OpeningBalance: opening,
		VentasFiles:    ventasFiles,
		ComprasFiles:   comprasFiles,
		ResumenFiles:   resumenFiles,
		Dir:            inputDir,
		PagosText:      pagos,
		HonorariosText: honorarios,
		AliasesFile:    fallback(aliasesFile, cfg.Paths.Aliases),
		DocTypesFile:   fallback(docTypesFile, cfg.Paths.DocTypes),
	}
	return opts, outputFile, format, nil
}

// DefaultOutputName derives the ledger filename from the company RUT and
// period, with the RUT punctuation stripped: LibroCaja_76543210K_2024.csv.
func DefaultOutputName(rut, period string) string {
	clean := strings.NewReplacer(".", "", "-", "").Replace(rut)
	return fmt.Sprintf("LibroCaja_%s_%s.csv", clean, period)
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}

func readEntryFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := fileutils.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading entries file: %w", err)
	}
	return string(data), nil
}
