// Package mapping provides the column mapping table, the output schema and
// the pure functions that keep them consistent.
//
// # Column mappings
//
// A Table holds exactly one ColumnMapping per distinct input header, in input
// column order. Each mapping names the catalog field the column feeds, its data
// type, an optional alphanumeric length and whether formatting masks are
// stripped before coercion.
//
// # Output schema
//
// An OutputConfig is an ordered list of OutputField descriptors. Every
// descriptor has a Source that is exactly one of:
//
//   - MappedSource: copies the value of the column mapped to a catalog field
//   - StaticSource: emits a constant
//   - CalculatedSource: derives the value with one of the calculation algorithms
//
// Layout properties (length, pad character, pad direction) and the date format
// only exist while the output format is fixed-width.
//
// # Job files
//
// A job file pins column overrides and the output layout in YAML (or JSON):
//
//	version: "1"
//	columns:
//	  - header: CPF do cliente
//	    fieldId: cpf
//	    dataType: CPF
//	    removeMask: true
//	output:
//	  name: Remessa banco
//	  format: fixedWidth
//	  encoding: ISO88591
//	  fields:
//	    - id: f1
//	      order: 0
//	      kind: mapped
//	      fieldId: cpf
//	      length: 11
//	      padChar: "0"
//	      padDirection: left
//	    - id: f2
//	      order: 1
//	      kind: static
//	      label: Filler
//	      value: "   "
//	      length: 3
//	      padChar: " "
//	      padDirection: right
//
// # Reconciliation
//
// Reconcile is called after every mapping or format change. It adds a mapped
// descriptor for every newly mapped field, drops descriptors whose inputs
// disappeared, fills or strips layout properties for the current format and
// renumbers the schema densely. Applying it twice yields the same schema.
package mapping
