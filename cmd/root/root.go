// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cajapyme/libro-caja/internal/common"
	"cajapyme/libro-caja/internal/config"
	"cajapyme/libro-caja/internal/fileutils"
	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/store"
)

// CommonFlags represents the flags that are shared by multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Report string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "libro-caja",
		Short: "A CLI tool to build the Libro de Caja for Pro Pyme taxpayers from SII register exports.",
		Long: `libro-caja ingests SII sales and purchase register exports, receipt
summaries and pasted manual entries, and produces the cash ledger kept by
taxpayers under Art. 14 D) N°3 and N°8(a) LIR together with a period report.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to libro-caja!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Set the configured logger for the packages that keep one
			common.SetLogger(Log)
			store.SetLogger(Log)
			fileutils.SetLogger(Log)

			// Ensure the ledger delimiter matches the configuration
			if delim := config.GetCSVDelimiter(); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting ledger CSV delimiter from configuration")
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input ledger CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output ledger CSV file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Report, "report", "", "Report format: text or json")
}

// GetLogrusAdapter wraps the shared command logger in the logging.Logger
// interface the parsers and the pipeline are written against.
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}
