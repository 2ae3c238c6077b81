package mapping

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

// Source is the origin of an output field's value. It is implemented by
// MappedSource, StaticSource and CalculatedSource only; consumers switch on
// the concrete type.
type Source interface {
	Kind() FieldKind
	isSource()
}

// MappedSource copies the value of the column mapped to FieldID.
type MappedSource struct {
	FieldID string
}

// StaticSource emits Value for every row.
type StaticSource struct {
	Label string
	Value string
}

// CalculatedSource derives a value with Algorithm.
type CalculatedSource struct {
	Label            string
	Algorithm        Algorithm
	RequiredFieldIDs []string
	Parameters       map[string]string
}

func (MappedSource) Kind() FieldKind     { return KindMapped }
func (StaticSource) Kind() FieldKind     { return KindStatic }
func (CalculatedSource) Kind() FieldKind { return KindCalculated }

func (MappedSource) isSource()     {}
func (StaticSource) isSource()     {}
func (CalculatedSource) isSource() {}

// Layout holds the fixed-width properties of an output field.
type Layout struct {
	Length       int
	PadChar      string
	PadDirection PadDirection
}

// OutputField is one column of the generated file.
type OutputField struct {
	ID     string
	Order  int
	Layout *Layout
	// DateFormat applies to fixed-width fields whose effective type is Date.
	DateFormat DateFormat
	Source     Source
}

// OutputConfig is the complete description of an output file.
type OutputConfig struct {
	Name          string        `json:"name,omitempty" yaml:"name,omitempty"`
	Format        Format        `json:"format" yaml:"format" validate:"required,oneof=fixedWidth delimited"`
	Delimiter     string        `json:"delimiter,omitempty" yaml:"delimiter,omitempty" validate:"required_if=Format delimited"`
	Encoding      Encoding      `json:"encoding" yaml:"encoding" validate:"required,oneof=UTF8 ISO88591 Windows1252"`
	IncludeHeader bool          `json:"includeHeader,omitempty" yaml:"includeHeader,omitempty"`
	Fields        []OutputField `json:"fields" yaml:"fields"`
}

// NewOutputConfig returns an empty schema for the given format.
func NewOutputConfig(format Format) OutputConfig {
	cfg := OutputConfig{Format: format, Encoding: EncodingUTF8}
	if format == FormatDelimited {
		cfg.Delimiter = ";"
	}

	return cfg
}

// Clone returns a deep copy of the config.
func (c OutputConfig) Clone() OutputConfig {
	out := c
	out.Fields = make([]OutputField, len(c.Fields))

	for i, f := range c.Fields {
		out.Fields[i] = f.Clone()
	}

	return out
}

// Clone returns a deep copy of the field.
func (f OutputField) Clone() OutputField {
	out := f
	if f.Layout != nil {
		l := *f.Layout
		out.Layout = &l
	}

	if src, ok := f.Source.(CalculatedSource); ok {
		src.RequiredFieldIDs = slices.Clone(src.RequiredFieldIDs)
		src.Parameters = maps.Clone(src.Parameters)
		out.Source = src
	}

	return out
}

// Kind returns the kind of the field's source, or "" when it has none.
func (f OutputField) Kind() FieldKind {
	if f.Source == nil {
		return ""
	}

	return f.Source.Kind()
}

// Label returns the column title of the field. names resolves catalog field
// ids to display names and may be nil.
func (f OutputField) Label(names func(id string) string) string {
	switch src := f.Source.(type) {
	case MappedSource:
		if names != nil {
			if n := names(src.FieldID); n != "" {
				return n
			}
		}

		return src.FieldID
	case StaticSource:
		return src.Label
	case CalculatedSource:
		if src.Label != "" {
			return src.Label
		}

		return string(src.Algorithm)
	default:
		return f.ID
	}
}

// EffectiveDataType returns the type used to coerce and lay out the field's
// values. Mapped fields take the type of their column; a missing column
// yields DataTypeUnset.
func (f OutputField) EffectiveDataType(t *Table) DataType {
	switch src := f.Source.(type) {
	case MappedSource:
		c, ok := t.ByFieldID(src.FieldID)
		if !ok {
			return DataTypeUnset
		}

		return c.DataType
	case StaticSource:
		return staticDataType(src.Value)
	case CalculatedSource:
		return src.Algorithm.DataType()
	default:
		return DataTypeUnset
	}
}

var (
	integerPattern = regexp.MustCompile(`^-?\d+$`)
	decimalPattern = regexp.MustCompile(`^-?\d+[.,]\d+$`)
)

// LooksNumeric returns true if a constant value is a plain integer or decimal.
func LooksNumeric(value string) bool {
	v := strings.TrimSpace(value)

	return integerPattern.MatchString(v) || decimalPattern.MatchString(v)
}

func staticDataType(value string) DataType {
	v := strings.TrimSpace(value)

	switch {
	case integerPattern.MatchString(v):
		return DataTypeInteger
	case decimalPattern.MatchString(v):
		return DataTypeNumeric
	default:
		return DataTypeAlphanumeric
	}
}

// FieldByID returns the field with the given id.
func (c OutputConfig) FieldByID(id string) (OutputField, bool) {
	for _, f := range c.Fields {
		if f.ID == id {
			return f, true
		}
	}

	return OutputField{}, false
}

// LineLength returns the physical line length of a fixed-width config, or 0
// for delimited output.
func (c OutputConfig) LineLength() int {
	if c.Format != FormatFixedWidth {
		return 0
	}

	total := 0

	for _, f := range c.Fields {
		if f.Layout != nil {
			total += f.Layout.Length
		}
	}

	return total
}
