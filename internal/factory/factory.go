package factory

import (
	"fmt"

	"cajapyme/libro-caja/internal/logging"
	"cajapyme/libro-caja/internal/manualparser"
	"cajapyme/libro-caja/internal/parser"
	"cajapyme/libro-caja/internal/purchaseparser"
	"cajapyme/libro-caja/internal/salesparser"
	"cajapyme/libro-caja/internal/summaryparser"
)

// ParserType identifies one of the supported register layouts.
type ParserType string

const (
	Ventas  ParserType = "ventas"
	Compras ParserType = "compras"
	Resumen ParserType = "resumen"
	Manual  ParserType = "manual"
)

// GetParser returns a new instance of the appropriate parser for the given
// register type, wired with the provided lookup tables.
func GetParser(parserType ParserType, deps parser.Deps) (parser.Parser, error) {
	return GetParserWithLogger(parserType, deps, logging.Default())
}

// GetParserWithLogger returns a new instance of the appropriate parser for
// the given register type with the provided logger for dependency injection.
func GetParserWithLogger(parserType ParserType, deps parser.Deps, logger logging.Logger) (parser.Parser, error) {
	switch parserType {
	case Ventas:
		return salesparser.New(deps, logger), nil
	case Compras:
		return purchaseparser.New(deps, logger), nil
	case Resumen:
		return summaryparser.New(deps, logger), nil
	case Manual:
		return manualparser.New(logger), nil
	default:
		return nil, fmt.Errorf("unknown parser type: %s", parserType)
	}
}
