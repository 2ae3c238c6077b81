package mapping

import (
	"slices"
	"sort"

	"github.com/google/uuid"

	"layout-converter/internal/common"
)

// Default fixed-width lengths per data type.
const (
	DefaultAlphaLength   = 30
	DefaultIntegerLength = 10
	DefaultNumericLength = 15
	DefaultDateLength    = 8
	DefaultCPFLength     = 11
	DefaultCNPJLength    = 14
	DefaultRGLength      = 15
	DefaultUnsetLength   = 20
)

// ReconcileOptions tunes Reconcile.
type ReconcileOptions struct {
	// NewID generates ids for added descriptors. Defaults to uuid.NewString.
	NewID func() string
}

// Reconcile returns a copy of cfg made consistent with the mapping table and
// the current output format:
//
//   - every mapped catalog field has exactly one mapped descriptor
//   - descriptors whose column or required inputs disappeared are dropped
//   - layout properties exist only for fixed-width output, with defaults filled
//     in where a descriptor has none
//   - orders are dense, starting at zero
//
// Reconcile is pure and idempotent.
func Reconcile(cfg OutputConfig, t *Table, opts ReconcileOptions) OutputConfig {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	out := cfg.Clone()
	sort.SliceStable(out.Fields, func(i, j int) bool {
		return out.Fields[i].Order < out.Fields[j].Order
	})

	active := t.ActiveFieldIDs()
	seen := make(map[string]bool, len(active))
	fields := make([]OutputField, 0, len(out.Fields)+len(active))

	for _, f := range out.Fields {
		switch src := f.Source.(type) {
		case MappedSource:
			if !slices.Contains(active, src.FieldID) || seen[src.FieldID] {
				continue
			}

			seen[src.FieldID] = true
		case StaticSource:
		case CalculatedSource:
			if !src.Algorithm.AllowsFallback() && !containsAll(active, src.RequiredFieldIDs) {
				continue
			}
		}

		fields = append(fields, f)
	}

	for _, id := range active {
		if seen[id] {
			continue
		}

		fields = append(fields, OutputField{ID: opts.NewID(), Source: MappedSource{FieldID: id}})
	}

	for i := range fields {
		f := &fields[i]
		f.Order = i

		if out.Format != FormatFixedWidth {
			f.Layout = nil
			f.DateFormat = ""

			continue
		}

		if f.Layout == nil {
			f.Layout = DefaultLayout(*f, t)
		}

		switch {
		case f.EffectiveDataType(t) != DataTypeDate:
			f.DateFormat = ""
		case f.DateFormat == "":
			f.DateFormat = DateDDMMYYYY
		}
	}

	out.Fields = fields

	return out
}

// DefaultLayout returns the fixed-width layout a new descriptor starts with.
func DefaultLayout(f OutputField, t *Table) *Layout {
	switch src := f.Source.(type) {
	case StaticSource:
		length := max(common.RuneLen(src.Value), 1)
		if LooksNumeric(src.Value) {
			return &Layout{Length: length, PadChar: "0", PadDirection: PadLeft}
		}

		return &Layout{Length: length, PadChar: " ", PadDirection: PadRight}
	case CalculatedSource:
		switch src.Algorithm {
		case AlgorithmStartDate:
			return &Layout{Length: DefaultDateLength, PadChar: " ", PadDirection: PadRight}
		case AlgorithmSituationCode:
			return &Layout{Length: 1, PadChar: " ", PadDirection: PadRight}
		case AlgorithmPeriodMMYYYY:
			return &Layout{Length: 6, PadChar: "0", PadDirection: PadLeft}
		}
	case MappedSource:
		if c, ok := t.ByFieldID(src.FieldID); ok {
			return columnLayout(c)
		}
	}

	return &Layout{Length: DefaultUnsetLength, PadChar: " ", PadDirection: PadRight}
}

func columnLayout(c ColumnMapping) *Layout {
	length := DefaultUnsetLength

	switch c.DataType {
	case DataTypeAlphanumeric:
		length = DefaultAlphaLength
		if c.AlphaLength != nil {
			length = *c.AlphaLength
		}
	case DataTypeInteger:
		length = DefaultIntegerLength
	case DataTypeNumeric:
		length = DefaultNumericLength
	case DataTypeDate:
		length = DefaultDateLength
	case DataTypeCPF:
		length = DefaultCPFLength
	case DataTypeCNPJ:
		length = DefaultCNPJLength
	case DataTypeRG:
		length = DefaultRGLength
	case DataTypeUnset:
	}

	if c.DataType.IsNumericLike() {
		return &Layout{Length: length, PadChar: "0", PadDirection: PadLeft}
	}

	return &Layout{Length: length, PadChar: " ", PadDirection: PadRight}
}

func containsAll(set, ids []string) bool {
	for _, id := range ids {
		if !slices.Contains(set, id) {
			return false
		}
	}

	return true
}
