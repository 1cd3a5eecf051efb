package logging

// Standardized field names for structured logging.
// Using the same keys across packages keeps log output filterable.
const (
	FieldFile       = "file_path"
	FieldSource     = "source"
	FieldSchema     = "schema"
	FieldEncoding   = "encoding"
	FieldDelimiter  = "delimiter"
	FieldRow        = "row"
	FieldLine       = "line"
	FieldFolio      = "folio"
	FieldTypeCode   = "type_code"
	FieldPeriod     = "period"
	FieldRunID      = "run_id"
	FieldReason     = "reason"
	FieldCount      = "count"
	FieldRecords    = "records"
	FieldSkipped    = "skipped"
	FieldWarnings   = "warnings"
	FieldOutputFile = "output_file"
)
