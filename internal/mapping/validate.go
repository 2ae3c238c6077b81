package mapping

import (
	"errors"
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"layout-converter/internal/diagnostic"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that cfg can be converted with the mapping table t. Errors
// block the conversion; warnings are reported but do not.
func Validate(cfg OutputConfig, t *Table) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	validateHeader(res, cfg)

	if len(cfg.Fields) == 0 {
		res.AddError("empty_schema", "output schema has no fields", "")
		return res
	}

	validateOrders(res, cfg.Fields)

	for _, f := range cfg.Fields {
		validateField(res, cfg.Format, f, t)
	}

	return res
}

func validateHeader(res *diagnostic.Diagnostics, cfg OutputConfig) {
	err := structValidator.Struct(cfg)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.AddError("invalid_config", err.Error(), "")
		return
	}

	for _, fe := range verrs {
		switch fe.Field() {
		case "Format":
			res.AddError("invalid_format", fmt.Sprintf("unknown output format %q", cfg.Format), "format")
		case "Encoding":
			res.AddError("invalid_encoding", fmt.Sprintf("unsupported encoding %q", cfg.Encoding), "encoding")
		case "Delimiter":
			res.AddError("missing_delimiter", "delimited output requires a delimiter", "delimiter")
		default:
			res.AddError("invalid_config", fe.Error(), fe.Field())
		}
	}
}

func validateOrders(res *diagnostic.Diagnostics, fields []OutputField) {
	orders := make([]int, len(fields))
	ids := make(map[string]bool, len(fields))

	for i, f := range fields {
		orders[i] = f.Order

		if f.ID == "" {
			res.AddError("missing_field_id", fmt.Sprintf("field at order %d has no id", f.Order), "")
		} else if ids[f.ID] {
			res.AddError("duplicate_field_id", fmt.Sprintf("field id %q is used more than once", f.ID), f.ID)
		}

		ids[f.ID] = true
	}

	slices.Sort(orders)

	for i, o := range orders {
		if o != i {
			res.AddError("order_not_dense", fmt.Sprintf("field orders must be 0..%d without gaps", len(fields)-1), "")
			return
		}
	}
}

func validateField(res *diagnostic.Diagnostics, format Format, f OutputField, t *Table) {
	name := f.Label(nil)

	switch src := f.Source.(type) {
	case nil:
		res.AddError("missing_source", fmt.Sprintf("field %q has no kind", f.ID), f.ID)
		return
	case MappedSource:
		c, ok := t.ByFieldID(src.FieldID)
		if !ok {
			res.AddError("dangling_mapped_field",
				fmt.Sprintf("field %q references %q, which no column is mapped to", f.ID, src.FieldID), f.ID)

			return
		}

		if !c.DataType.IsValid() {
			res.AddError("missing_data_type", fmt.Sprintf("column %q has no data type", c.OriginalHeader), f.ID)
		}
	case StaticSource:
	case CalculatedSource:
		validateCalculated(res, f.ID, src, t)
	}

	if format != FormatFixedWidth {
		return
	}

	validateLayout(res, f, name)

	if f.EffectiveDataType(t) == DataTypeDate {
		switch {
		case f.DateFormat == "":
			res.AddError("missing_date_format", fmt.Sprintf("date field %q needs a date format", name), f.ID)
		case !f.DateFormat.IsValid():
			res.AddError("invalid_date_format", fmt.Sprintf("unknown date format %q", f.DateFormat), f.ID)
		}
	}
}

func validateLayout(res *diagnostic.Diagnostics, f OutputField, name string) {
	l := f.Layout
	if l == nil {
		l = &Layout{}
	}

	if l.Length <= 0 {
		res.AddError("missing_length", fmt.Sprintf("field %q needs a positive length", name), f.ID)
	}

	if utf8.RuneCountInString(l.PadChar) != 1 {
		res.AddError("missing_pad_char", fmt.Sprintf("field %q needs exactly one pad character", name), f.ID)
	}

	if !l.PadDirection.IsValid() {
		res.AddError("invalid_pad_direction",
			fmt.Sprintf("field %q has pad direction %q, expected left or right", name, l.PadDirection), f.ID)
	}
}

func validateCalculated(res *diagnostic.Diagnostics, id string, src CalculatedSource, t *Table) {
	if !src.Algorithm.IsValid() {
		res.AddError("unknown_algorithm", fmt.Sprintf("unknown algorithm %q", src.Algorithm), id)
		return
	}

	if !src.Algorithm.AllowsFallback() {
		if len(src.RequiredFieldIDs) < src.Algorithm.MinInputs() {
			res.AddError("unmapped_required_field",
				fmt.Sprintf("%s needs %d mapped input(s)", src.Algorithm, src.Algorithm.MinInputs()), id)
		}

		active := t.ActiveFieldIDs()

		for _, req := range src.RequiredFieldIDs {
			if !slices.Contains(active, req) {
				res.AddError("unmapped_required_field",
					fmt.Sprintf("%s requires field %q, which no column is mapped to", src.Algorithm, req), id)
			}
		}
	}

	for _, key := range src.Algorithm.RequiredParams() {
		v, ok := src.Parameters[key]
		if !ok || v == "" {
			res.AddWarning(diagnostic.ClassCalculation, "invalid_parameter",
				fmt.Sprintf("%s parameter %q is missing", src.Algorithm, key), id, 0)

			continue
		}

		if key == ParamReferencePeriod {
			if _, err := time.Parse(ReferencePeriodLayout, v); err != nil {
				res.AddWarning(diagnostic.ClassCalculation, "invalid_parameter",
					fmt.Sprintf("%s parameter %q=%q is not a dd/mm/yyyy date", src.Algorithm, key, v), id, 0)
			}
		}
	}
}
