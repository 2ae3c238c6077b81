package mapping

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=DataType -trimprefix=DataType -output=datatype_string.go

// DataType is the logical type of an input column.
type DataType int

const (
	DataTypeUnset DataType = iota // no type chosen yet

	DataTypeAlphanumeric
	DataTypeInteger
	DataTypeNumeric
	DataTypeDate
	DataTypeCPF
	DataTypeCNPJ
	DataTypeRG
)

// DataTypes lists every selectable data type.
var DataTypes = []DataType{
	DataTypeAlphanumeric, DataTypeInteger, DataTypeNumeric, DataTypeDate,
	DataTypeCPF, DataTypeCNPJ, DataTypeRG,
}

// IsValid returns true for every type except DataTypeUnset.
func (d DataType) IsValid() bool {
	return d > DataTypeUnset && d <= DataTypeRG
}

// IsNumericLike returns true for types whose values are digit strings that
// carry a sign and keep their least significant digits on truncation.
func (d DataType) IsNumericLike() bool {
	switch d {
	default:
		return false
	case DataTypeInteger, DataTypeNumeric, DataTypeCPF, DataTypeCNPJ:
		return true
	}
}

// ParseDataType parses a data type name case-insensitively.
func ParseDataType(s string) (DataType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DataTypeUnset, nil
	}

	for _, d := range DataTypes {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}

	return DataTypeUnset, fmt.Errorf("unknown data type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d DataType) MarshalText() ([]byte, error) {
	if d == DataTypeUnset {
		return []byte{}, nil
	}

	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DataType) UnmarshalText(text []byte) error {
	v, err := ParseDataType(string(text))
	if err != nil {
		return err
	}

	*d = v

	return nil
}

// DateFormat is the compact date layout written to fixed-width output.
type DateFormat string

const (
	DateDDMMYYYY DateFormat = "DDMMYYYY"
	DateYYYYMMDD DateFormat = "YYYYMMDD"
)

// IsValid returns true if the format is a known layout.
func (f DateFormat) IsValid() bool {
	return f == DateDDMMYYYY || f == DateYYYYMMDD
}

// GoLayout returns the time layout for the format. Unknown formats render the
// locale date (dd/MM/yyyy).
func (f DateFormat) GoLayout() string {
	switch f {
	case DateDDMMYYYY:
		return "02012006"
	case DateYYYYMMDD:
		return "20060102"
	default:
		return LocaleDateLayout
	}
}

// LocaleDateLayout is how dates are written when no compact format applies.
const LocaleDateLayout = "02/01/2006"

// Format is the physical layout of the output file.
type Format string

const (
	FormatFixedWidth Format = "fixedWidth"
	FormatDelimited  Format = "delimited"
)

// IsValid returns true if the format is known.
func (f Format) IsValid() bool {
	return f == FormatFixedWidth || f == FormatDelimited
}

// Extension returns the file extension used for the format.
func (f Format) Extension() string {
	if f == FormatDelimited {
		return ".csv"
	}

	return ".txt"
}

// Encoding is the character encoding of the output file.
type Encoding string

const (
	EncodingUTF8        Encoding = "UTF8"
	EncodingISO88591    Encoding = "ISO88591"
	EncodingWindows1252 Encoding = "Windows1252"
)

// IsValid returns true if the encoding is supported.
func (e Encoding) IsValid() bool {
	switch e {
	case EncodingUTF8, EncodingISO88591, EncodingWindows1252:
		return true
	default:
		return false
	}
}

// PadDirection is the side on which fill characters are added.
type PadDirection string

const (
	PadLeft  PadDirection = "left"
	PadRight PadDirection = "right"
)

// IsValid returns true for left or right.
func (p PadDirection) IsValid() bool {
	return p == PadLeft || p == PadRight
}

// FieldKind discriminates the OutputField source variants.
type FieldKind string

const (
	KindMapped     FieldKind = "mapped"
	KindStatic     FieldKind = "static"
	KindCalculated FieldKind = "calculated"
)

// Algorithm names a calculated-field derivation.
type Algorithm string

const (
	// AlgorithmStartDate subtracts the installments paid from a reference period.
	AlgorithmStartDate Algorithm = "StartDate"
	// AlgorithmSituationCode emits "T" for a positive realized value, "R" otherwise.
	AlgorithmSituationCode Algorithm = "SituationCode"
	// AlgorithmPeriodMMYYYY emits the period (or today) as MMyyyy.
	AlgorithmPeriodMMYYYY Algorithm = "PeriodMMYYYY"
)

// Algorithms lists the known algorithms.
var Algorithms = []Algorithm{AlgorithmStartDate, AlgorithmSituationCode, AlgorithmPeriodMMYYYY}

// Calculation parameter keys.
const (
	// ParamReferencePeriod is the StartDate reference date, dd/MM/yyyy.
	ParamReferencePeriod = "referencePeriod"
	// ReferencePeriodLayout is the layout of ParamReferencePeriod.
	ReferencePeriodLayout = "02/01/2006"
)

// IsValid returns true if the algorithm is known.
func (a Algorithm) IsValid() bool {
	switch a {
	case AlgorithmStartDate, AlgorithmSituationCode, AlgorithmPeriodMMYYYY:
		return true
	default:
		return false
	}
}

// AllowsFallback returns true if the algorithm can run without its mapped inputs.
func (a Algorithm) AllowsFallback() bool {
	return a == AlgorithmPeriodMMYYYY
}

// MinInputs returns how many mapped inputs the algorithm needs.
func (a Algorithm) MinInputs() int {
	switch a {
	case AlgorithmStartDate, AlgorithmSituationCode:
		return 1
	default:
		return 0
	}
}

// RequiredParams returns the parameter keys the algorithm reads.
func (a Algorithm) RequiredParams() []string {
	if a == AlgorithmStartDate {
		return []string{ParamReferencePeriod}
	}

	return nil
}

// DataType returns the data type of the values the algorithm produces.
func (a Algorithm) DataType() DataType {
	switch a {
	case AlgorithmStartDate:
		return DataTypeDate
	case AlgorithmPeriodMMYYYY:
		return DataTypeInteger
	default:
		return DataTypeAlphanumeric
	}
}
