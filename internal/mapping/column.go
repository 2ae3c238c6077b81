package mapping

import (
	"errors"
	"fmt"

	"layout-converter/internal/common"
)

// ErrUnknownHeader is returned when a header is not part of the table.
var ErrUnknownHeader = errors.New("unknown column header")

// ColumnMapping associates one input header with a catalog field, a data type
// and a masking rule.
type ColumnMapping struct {
	OriginalHeader string   `json:"originalHeader" yaml:"originalHeader"`
	FieldID        string   `json:"fieldId,omitempty" yaml:"fieldId,omitempty"`
	DataType       DataType `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	// AlphaLength is only meaningful for DataTypeAlphanumeric.
	AlphaLength *int `json:"alphaLength,omitempty" yaml:"alphaLength,omitempty"`
	RemoveMask  bool `json:"removeMask" yaml:"removeMask"`
}

// IsMapped returns true if the column feeds a catalog field.
func (c ColumnMapping) IsMapped() bool {
	return c.FieldID != ""
}

// Guesser proposes a catalog field and a data type for a column.
type Guesser interface {
	GuessField(header string) string
	GuessDataType(header, sample string) DataType
}

// Table holds one ColumnMapping per distinct input header, in input order.
type Table struct {
	columns []ColumnMapping
	index   map[string]int
}

// NewTable builds the mapping table for the given headers. Repeated headers are
// collapsed. When g is non-nil every column receives an initial guess; sample
// holds the first data row keyed by header and may be nil.
func NewTable(headers []string, sample map[string]string, g Guesser) *Table {
	t := &Table{index: make(map[string]int, len(headers))}

	for _, h := range headers {
		if _, ok := t.index[h]; ok {
			continue
		}

		t.index[h] = len(t.columns)
		t.columns = append(t.columns, ColumnMapping{OriginalHeader: h})
	}

	if g != nil {
		t.Reguess(g, sample)
	}

	return t
}

// Reguess replaces every column's field, type and mask flag with fresh guesses.
// A field already claimed by an earlier column is left unassigned.
func (t *Table) Reguess(g Guesser, sample map[string]string) {
	claimed := make(map[string]bool)

	for i := range t.columns {
		c := &t.columns[i]

		fieldID := g.GuessField(c.OriginalHeader)
		if claimed[fieldID] {
			fieldID = ""
		}

		if fieldID != "" {
			claimed[fieldID] = true
		}

		c.FieldID = fieldID
		c.DataType = g.GuessDataType(c.OriginalHeader, sample[c.OriginalHeader])
		c.AlphaLength = nil
		c.RemoveMask = defaultRemoveMask(c.DataType)
	}
}

func defaultRemoveMask(dt DataType) bool {
	return dt == DataTypeCPF || dt == DataTypeCNPJ || dt == DataTypeRG
}

// Len returns the number of columns.
func (t *Table) Len() int {
	return len(t.columns)
}

// Columns returns a copy of the column mappings in input order.
func (t *Table) Columns() []ColumnMapping {
	out := make([]ColumnMapping, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.clone()
	}

	return out
}

// Headers returns the headers in input order.
func (t *Table) Headers() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.OriginalHeader
	}

	return out
}

// Lookup returns the mapping for a header.
func (t *Table) Lookup(header string) (ColumnMapping, bool) {
	i, ok := t.index[header]
	if !ok {
		return ColumnMapping{}, false
	}

	return t.columns[i].clone(), true
}

// ByFieldID returns the first column mapped to the given field.
func (t *Table) ByFieldID(fieldID string) (ColumnMapping, bool) {
	if t == nil || fieldID == "" {
		return ColumnMapping{}, false
	}

	for _, c := range t.columns {
		if c.FieldID == fieldID {
			return c.clone(), true
		}
	}

	return ColumnMapping{}, false
}

// ActiveFieldIDs returns the mapped field ids in column order.
func (t *Table) ActiveFieldIDs() []string {
	if t == nil {
		return nil
	}

	var ids []string

	for _, c := range t.columns {
		if c.FieldID != "" {
			ids = append(ids, c.FieldID)
		}
	}

	return common.Dedupe(ids)
}

// Assign maps a header onto a field. The field is removed from any other
// column that held it. An empty fieldID unmaps the column.
func (t *Table) Assign(header, fieldID string) error {
	i, err := t.position(header)
	if err != nil {
		return err
	}

	if fieldID != "" {
		for j := range t.columns {
			if j != i && t.columns[j].FieldID == fieldID {
				t.columns[j].FieldID = ""
			}
		}
	}

	t.columns[i].FieldID = fieldID

	return nil
}

// SetDataType changes the data type of a column. The alphanumeric length is
// dropped when the new type is not alphanumeric.
func (t *Table) SetDataType(header string, dt DataType) error {
	i, err := t.position(header)
	if err != nil {
		return err
	}

	t.columns[i].DataType = dt
	if dt != DataTypeAlphanumeric {
		t.columns[i].AlphaLength = nil
	}

	return nil
}

// SetAlphaLength sets or clears (nil) the fixed length of an alphanumeric column.
func (t *Table) SetAlphaLength(header string, length *int) error {
	i, err := t.position(header)
	if err != nil {
		return err
	}

	if length == nil {
		t.columns[i].AlphaLength = nil
		return nil
	}

	if t.columns[i].DataType != DataTypeAlphanumeric {
		return fmt.Errorf("column %q: length only applies to %s columns", header, DataTypeAlphanumeric)
	}

	if *length <= 0 {
		return fmt.Errorf("column %q: length must be positive, got %d", header, *length)
	}

	n := *length
	t.columns[i].AlphaLength = &n

	return nil
}

// SetRemoveMask toggles mask removal for a column.
func (t *Table) SetRemoveMask(header string, remove bool) error {
	i, err := t.position(header)
	if err != nil {
		return err
	}

	t.columns[i].RemoveMask = remove

	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		columns: t.Columns(),
		index:   make(map[string]int, len(t.index)),
	}

	for k, v := range t.index {
		out.index[k] = v
	}

	return out
}

func (t *Table) position(header string) (int, error) {
	i, ok := t.index[header]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownHeader, header)
	}

	return i, nil
}

func (c ColumnMapping) clone() ColumnMapping {
	if c.AlphaLength != nil {
		n := *c.AlphaLength
		c.AlphaLength = &n
	}

	return c
}
