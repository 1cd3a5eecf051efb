// Package colmap resolves the canonical fields of each export schema
// against the header spellings that occur in real SII files. Matching is
// case-insensitive on trimmed headers, and the first matching alias wins.
package colmap

import "strings"

// Schema identifies which alias table applies to a file.
type Schema string

const (
	SchemaVentas  Schema = "ventas"
	SchemaCompras Schema = "compras"
	SchemaResumen Schema = "resumen"
)

// Canonical field names shared by the alias tables and the parsers.
const (
	FieldTipoDoc = "tipo_doc"
	FieldFolio   = "folio"
	FieldFecha   = "fecha"
	FieldRUT     = "rut"
	FieldRazon   = "razon"
	FieldNeto    = "neto"
	FieldExento  = "exento"
	FieldTotal   = "total"

	// Purchase register adjustment columns.
	FieldNetoActivoFijo     = "neto_activo_fijo"
	FieldIVANoRecuperable   = "iva_no_recuperable"
	FieldTabacosPuros       = "tabacos_puros"
	FieldTabacosCigarrillos = "tabacos_cigarrillos"
	FieldTabacosElaborados  = "tabacos_elaborados"
	FieldImpuestoSinCredito = "impuesto_sin_credito"
	FieldOtroImpuesto       = "otro_impuesto"

	// Daily sales summary columns.
	FieldTipo     = "tipo"
	FieldFolioIni = "folio_ini"
	FieldFolioFin = "folio_fin"
)

// Aliases maps canonical field names to the header spellings that may
// carry them, in priority order.
type Aliases map[string][]string

// Mapping resolves canonical field names to column indexes for one file.
type Mapping map[string]int

var ventasAliases = Aliases{
	FieldTipoDoc: {"tipo doc", "tipo_doc", "tipodoc", "tipo documento"},
	FieldFolio:   {"folio", "n° folio", "numero folio"},
	FieldFecha:   {"fecha docto", "fecha_docto", "fechadocto", "fecha operación", "fecha"},
	FieldRUT:     {"rut cliente", "rut_cliente", "rutcliente", "rut proveedor", "rut"},
	FieldRazon:   {"razon social", "razón social", "razon_social"},
	FieldNeto:    {"monto neto", "monto_neto", "neto"},
	FieldExento:  {"monto exento", "monto_exento", "exento"},
	FieldTotal:   {"monto total", "monto_total", "total"},
}

var comprasAliases = Aliases{
	FieldTipoDoc: {"tipo doc", "tipo_doc", "tipodoc"},
	FieldFolio:   {"folio", "n° folio"},
	FieldFecha:   {"fecha docto", "fecha_docto", "fechadocto", "fecha recepcion", "fecha"},
	FieldRUT:     {"rut proveedor", "rut_proveedor", "rutproveedor"},
	FieldRazon:   {"razon social", "razón social", "razon_social"},
	FieldNeto:    {"monto neto", "monto_neto", "neto"},
	FieldExento:  {"monto exento", "monto_exento", "exento"},
	FieldTotal:   {"monto total", "monto_total", "total"},

	FieldNetoActivoFijo:     {"monto neto activo fijo", "monto_neto_activo_fijo", "neto activo fijo"},
	FieldIVANoRecuperable:   {"monto iva no recuperable", "monto_iva_no_recuperable", "iva no recuperable"},
	FieldTabacosPuros:       {"tabacos puros", "tabacos_puros"},
	FieldTabacosCigarrillos: {"tabacos cigarrillos", "tabacos_cigarrillos"},
	FieldTabacosElaborados:  {"tabacos elaborados", "tabacos_elaborados"},
	FieldImpuestoSinCredito: {"impto. sin derecho a credito", "impuesto sin derecho a credito", "impto sin derecho a credito"},
	FieldOtroImpuesto:       {"valor otro impuesto", "monto otro impuesto", "otro impuesto"},
}

var resumenAliases = Aliases{
	FieldFecha:    {"fecha", "fecha docto", "fecha_docto"},
	FieldTipo:     {"tipo documento", "tipo_documento", "tipodocumento"},
	FieldFolioIni: {"folio inicial", "folio_inicial", "desde"},
	FieldFolioFin: {"folio final", "folio_final", "hasta"},
	FieldNeto:     {"monto neto", "monto_neto", "neto"},
	FieldExento:   {"monto exento", "monto_exento", "exento"},
	FieldTotal:    {"monto total", "monto_total", "total"},
}

var requiredFields = map[Schema][]string{
	SchemaVentas:  {FieldTipoDoc, FieldFecha},
	SchemaCompras: {FieldTipoDoc, FieldFecha},
	SchemaResumen: {FieldTipo},
}

// DefaultAliases returns a copy of the built-in alias table for a schema.
// Callers may extend the copy with user-provided spellings.
func DefaultAliases(schema Schema) Aliases {
	var src Aliases
	switch schema {
	case SchemaVentas:
		src = ventasAliases
	case SchemaCompras:
		src = comprasAliases
	case SchemaResumen:
		src = resumenAliases
	default:
		return Aliases{}
	}
	out := make(Aliases, len(src))
	for field, names := range src {
		out[field] = append([]string(nil), names...)
	}
	return out
}

// RequiredFields lists the canonical fields a schema cannot work without.
func RequiredFields(schema Schema) []string {
	return append([]string(nil), requiredFields[schema]...)
}

// Resolve maps canonical fields to column indexes. When two headers
// normalize to the same spelling the first occurrence wins. The second
// return value names the required fields no header satisfied; a non-empty
// list means the file cannot be processed under this schema.
func Resolve(schema Schema, headers []string, aliases Aliases) (Mapping, []string) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	mapping := make(Mapping)
	for field, names := range aliases {
		for _, name := range names {
			if idx, ok := index[strings.ToLower(strings.TrimSpace(name))]; ok {
				mapping[field] = idx
				break
			}
		}
	}

	var missing []string
	for _, field := range requiredFields[schema] {
		if _, ok := mapping[field]; !ok {
			missing = append(missing, field)
		}
	}
	return mapping, missing
}

// Has reports whether the canonical field was resolved.
func (m Mapping) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// Cell returns the trimmed value of the canonical field in a row, or ""
// when the field is unmapped or the row is short.
func (m Mapping) Cell(row []string, field string) string {
	idx, ok := m[field]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
