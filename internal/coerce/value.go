package coerce

import (
	"strings"

	"layout-converter/internal/common"
	"layout-converter/internal/mapping"
)

// Options controls Value.
type Options struct {
	// RemoveMask strips masks before coercion (see RemoveMask).
	RemoveMask bool
	// DateFormat is the output layout for dates; empty renders dd/mm/yyyy.
	DateFormat mapping.DateFormat
}

// Value coerces raw to the canonical form of dt. The returned string is always
// usable; a non-nil error reports a degraded value.
func Value(raw string, dt mapping.DataType, opts Options) (string, error) {
	v := strings.TrimSpace(raw)
	if dt == mapping.DataTypeDate {
		return date(v, opts)
	}

	if opts.RemoveMask {
		v = RemoveMask(v, dt)
	}

	switch dt {
	case mapping.DataTypeInteger, mapping.DataTypeCPF, mapping.DataTypeCNPJ:
		return common.Digits(v), nil
	case mapping.DataTypeNumeric:
		return Numeric(v)
	case mapping.DataTypeRG, mapping.DataTypeAlphanumeric, mapping.DataTypeUnset:
		return v, nil
	default:
		return v, nil
	}
}

// date parses the value as written before falling back to its unmasked form,
// so separators still tell ISO and day-first dates apart.
func date(v string, opts Options) (string, error) {
	if v == "" {
		return "", nil
	}

	t, err := ParseDate(v, opts.DateFormat)
	if err != nil && opts.RemoveMask {
		if stripped := RemoveMask(v, mapping.DataTypeDate); stripped != v {
			t, err = ParseDate(stripped, opts.DateFormat)
		}
	}

	if err != nil {
		return "", err
	}

	return FormatDate(t, opts.DateFormat), nil
}
