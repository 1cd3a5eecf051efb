// Package parsererror defines the typed errors produced by the ingestion
// pipeline. File-level errors (DecodeError, MappingError) mean the file was
// skipped; row-level problems are handled in place and never surface here.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoUsableInput is returned when every supplied source failed or no
// source produced a single record.
var ErrNoUsableInput = errors.New("no usable input: every source was empty or skipped")

// DecodeError indicates that no encoding in the detection chain produced a
// non-empty row set for the file.
type DecodeError struct {
	FilePath string
	Tried    []string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode %s (tried %s): %v",
			e.FilePath, strings.Join(e.Tried, ", "), e.Err)
	}
	return fmt.Sprintf("cannot decode %s (tried %s)",
		e.FilePath, strings.Join(e.Tried, ", "))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MappingError indicates that the required canonical columns could not be
// resolved from the file headers.
type MappingError struct {
	FilePath string
	Schema   string
	Missing  []string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("unrecognized columns in %s (schema %s): missing %s",
		e.FilePath, e.Schema, strings.Join(e.Missing, ", "))
}

// ParseError represents a value-level parse failure. Parsers mostly degrade
// such values to zero instead of erroring; this type covers the places that
// must report the failure, like manual entry lines.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a consistency failure detected when re-reading
// a previously written ledger.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// NewDecodeError builds a DecodeError for the given file and attempted
// encodings.
func NewDecodeError(filePath string, tried []string, err error) *DecodeError {
	return &DecodeError{FilePath: filePath, Tried: tried, Err: err}
}

// NewMappingError builds a MappingError naming the canonical fields that
// could not be resolved.
func NewMappingError(filePath, schema string, missing []string) *MappingError {
	return &MappingError{FilePath: filePath, Schema: schema, Missing: missing}
}
