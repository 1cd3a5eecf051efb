// Package parser defines the contract shared by every fiscal-document
// parser and the dependencies the concrete parsers are wired with.
package parser

import (
	"time"

	"cajapyme/libro-caja/internal/classify"
	"cajapyme/libro-caja/internal/colmap"
	"cajapyme/libro-caja/internal/dateresolve"
	"cajapyme/libro-caja/internal/dateutils"
	"cajapyme/libro-caja/internal/decode"
	"cajapyme/libro-caja/internal/models"
)

// FileMeta carries the identity of the file being parsed. Name feeds the
// filename date fallback, Path is used in errors and log entries.
type FileMeta struct {
	Path string
	Name string
}

// Result is what a parser produces from one input file: the canonical
// records it could extract plus row-level warnings worth surfacing.
type Result struct {
	Records  []models.CanonicalRecord
	Warnings []string
}

// Deps bundles the shared lookup tables a parser needs. Aliases and
// DocTypeNames usually come from the schema store, Dates from the
// period the user selected.
type Deps struct {
	Aliases      map[colmap.Schema]colmap.Aliases
	DocTypeNames map[int]string
	Dates        *dateresolve.Resolver
}

// Normalize fills the zero-value gaps so concrete parsers can use the
// dependencies without nil checks.
func (d Deps) Normalize() Deps {
	if d.Dates == nil {
		d.Dates = dateresolve.New("")
	}
	if d.DocTypeNames == nil {
		d.DocTypeNames = classify.DefaultDocTypeNames()
	}
	return d
}

// SchemaAliases returns the alias table for one schema, falling back to
// the built-in defaults when the store did not supply a custom table.
func (d Deps) SchemaAliases(schema colmap.Schema) colmap.Aliases {
	if aliases, ok := d.Aliases[schema]; ok {
		return aliases
	}
	return colmap.DefaultAliases(schema)
}

type Parser interface {
	// Parse extracts canonical records from one decoded file.
	// It is responsible for understanding the specific register layout
	// (ventas, compras, resumen de boletas, manual entries) and
	// transforming rows into CanonicalRecord values.
	// Implementations return *parsererror.DecodeError when the bytes
	// cannot be read as a delimited table and *parsererror.MappingError
	// when required columns are missing.
	Parse(data []byte, meta FileMeta) (*Result, error)
}

// CollectFolioDates indexes the parseable dates of a table by folio so
// rows with a broken date cell can borrow the date of a sibling row
// that shares the document number. The first parsed date wins.
func CollectFolioDates(table *decode.Table, mapping colmap.Mapping) map[string]time.Time {
	dates := make(map[string]time.Time)
	for _, row := range table.Rows {
		folio := mapping.Cell(row, colmap.FieldFolio)
		if folio == "" {
			continue
		}
		if _, seen := dates[folio]; seen {
			continue
		}
		parsed, _, err := dateutils.ParseDate(mapping.Cell(row, colmap.FieldFecha))
		if err != nil {
			continue
		}
		dates[folio] = parsed
	}
	return dates
}
