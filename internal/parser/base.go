package parser

import (
	"github.com/shopspring/decimal"

	"cajapyme/libro-caja/internal/currencyutils"
	"cajapyme/libro-caja/internal/logging"
)

// BaseParser provides common functionality for all parser implementations.
//
// Parsers should embed BaseParser to inherit common functionality:
//
//	type MyParser struct {
//		BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a new BaseParser instance with the provided logger.
// If logger is nil, a default logger will be used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	return BaseParser{
		logger: logger,
	}
}

// SetLogger replaces the parser's logger. Nil loggers are ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// AmountOrZero parses a money cell, degrading to zero so a single bad
// cell does not sink the whole row. The row number is the 1-based line
// in the source file, for the log entry.
func (b *BaseParser) AmountOrZero(raw string, row int) decimal.Decimal {
	amount, err := currencyutils.ParseAmount(raw)
	if err != nil {
		b.logger.WithError(err).Warn("Failed to parse amount, using zero",
			logging.Field{Key: logging.FieldRow, Value: row})
		return decimal.Zero
	}
	return amount
}
