package convert

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"layout-converter/internal/calc"
	"layout-converter/internal/coerce"
	"layout-converter/internal/diagnostic"
	"layout-converter/internal/ingest"
	"layout-converter/internal/layout"
	"layout-converter/internal/mapping"
)

// column is an output field prepared for a run: its column lookups and
// layout are resolved once instead of per row.
type column struct {
	field mapping.OutputField
	label string
	dt    mapping.DataType
	// header is the input header of a mapped field.
	header     string
	removeMask bool
	// inputs are the input headers of a calculated field's required ids, ""
	// for ids without a column.
	inputs []string
	spec   layout.Spec
}

// run holds the state of a single conversion.
type run struct {
	engine     *Engine
	cfg        mapping.OutputConfig
	columns    []column
	today      time.Time
	diags      diagnostic.Diagnostics
	recorded   int
	total      int
	suppressed int
	// codes counts every warning by code, including suppressed ones.
	codes map[string]int
}

// newRun prepares the columns of cfg. Warnings already raised by validation
// count towards the warning limit and the per-code totals.
func newRun(e *Engine, cfg mapping.OutputConfig, t *mapping.Table, validation *diagnostic.Diagnostics) *run {
	r := &run{
		engine:   e,
		cfg:      cfg,
		columns:  make([]column, 0, len(cfg.Fields)),
		today:    e.now(),
		recorded: len(validation.Warnings),
		total:    len(validation.Warnings),
		codes:    validation.WarningCount(),
	}

	for _, f := range cfg.Fields {
		c := column{
			field: f,
			label: f.Label(e.names),
			dt:    f.EffectiveDataType(t),
		}

		switch src := f.Source.(type) {
		case mapping.MappedSource:
			if m, ok := t.ByFieldID(src.FieldID); ok {
				c.header = m.OriginalHeader
				c.removeMask = e.policy.ShouldRemove(m.DataType, m.RemoveMask)
			}
		case mapping.CalculatedSource:
			c.inputs = make([]string, len(src.RequiredFieldIDs))

			for i, id := range src.RequiredFieldIDs {
				if m, ok := t.ByFieldID(id); ok {
					c.inputs[i] = m.OriginalHeader
				}
			}
		case mapping.StaticSource:
		}

		if cfg.Format == mapping.FormatFixedWidth && f.Layout != nil {
			c.spec = layout.SpecFor(*f.Layout, c.dt)
		}

		r.columns = append(r.columns, c)
	}

	return r
}

// headerLine renders the column titles of a delimited file.
func (r *run) headerLine() string {
	labels := make([]string, len(r.columns))
	for i, c := range r.columns {
		labels[i] = c.label
	}

	return layout.DelimitedLine(labels, r.cfg.Delimiter)
}

// line renders one input row. rowNum is 1-based.
func (r *run) line(rowNum int, row ingest.Row) string {
	values := make([]string, len(r.columns))

	for i := range r.columns {
		c := &r.columns[i]
		v := r.resolve(c, rowNum, row)

		switch r.cfg.Format {
		case mapping.FormatFixedWidth:
			v = layout.Pad(v, c.spec)
		case mapping.FormatDelimited:
			if c.field.Kind() == mapping.KindMapped && c.dt == mapping.DataTypeNumeric {
				v = layout.LocaleDecimal(v)
			}
		}

		values[i] = v
	}

	if r.cfg.Format == mapping.FormatDelimited {
		return layout.DelimitedLine(values, r.cfg.Delimiter)
	}

	return layout.FixedWidthLine(values)
}

// resolve produces the canonical value of one field for one row.
func (r *run) resolve(c *column, rowNum int, row ingest.Row) string {
	switch src := c.field.Source.(type) {
	case mapping.MappedSource:
		raw, ok := row[c.header]
		if c.header == "" || !ok {
			r.warn(diagnostic.ClassValueCoercion, CodeMissingColumn,
				fmt.Sprintf("no input column for field %q", src.FieldID), c.label, rowNum)

			return ""
		}

		v, err := coerce.Value(raw, c.dt, coerce.Options{
			RemoveMask: c.removeMask,
			DateFormat: c.field.DateFormat,
		})
		if err != nil {
			r.warn(diagnostic.ClassValueCoercion, coercionCode(err), err.Error(), c.label, rowNum)
		}

		return v
	case mapping.StaticSource:
		return src.Value
	case mapping.CalculatedSource:
		values := make([]string, len(c.inputs))
		for i, h := range c.inputs {
			if h != "" {
				values[i] = row[h]
			}
		}

		v, err := r.engine.registry.Evaluate(src.Algorithm, calc.Input{
			Values:     values,
			Parameters: src.Parameters,
			DateFormat: c.field.DateFormat,
			Today:      r.today,
		})
		if err != nil {
			r.warn(diagnostic.ClassCalculation, calculationCode(err), err.Error(), c.label, rowNum)
		}

		return v
	default:
		return ""
	}
}

// warn records a warning unless the run already holds the maximum.
func (r *run) warn(class diagnostic.Class, code, msg, field string, rowNum int) {
	r.total++
	r.codes[code]++

	r.engine.logger.Debug(msg,
		zap.String("code", code),
		zap.String("field", field),
		zap.Int("row", rowNum))

	if limit := r.engine.warningLimit; limit > 0 && r.recorded >= limit {
		r.suppressed++
		return
	}

	r.recorded++
	r.diags.AddWarning(class, code, msg, field, rowNum)
}

// finish notes suppressed warnings.
func (r *run) finish() {
	if r.suppressed == 0 {
		return
	}

	r.diags.AddInfo(CodeWarningsTruncated,
		fmt.Sprintf("%d more warnings were not recorded", r.suppressed))
}
