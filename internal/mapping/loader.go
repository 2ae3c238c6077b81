package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// JobFile pins column overrides and the output layout for a conversion.
type JobFile struct {
	Version string       `yaml:"version" json:"version"`
	Columns []ColumnSpec `yaml:"columns,omitempty" json:"columns,omitempty"`
	Output  OutputConfig `yaml:"output" json:"output"`
}

// ColumnSpec overrides the guesses made for one input column. Nil members
// keep the guessed value; an empty FieldID unmaps the column.
type ColumnSpec struct {
	Header      string    `yaml:"header" json:"header"`
	FieldID     *string   `yaml:"fieldId,omitempty" json:"fieldId,omitempty"`
	DataType    *DataType `yaml:"dataType,omitempty" json:"dataType,omitempty"`
	AlphaLength *int      `yaml:"alphaLength,omitempty" json:"alphaLength,omitempty"`
	RemoveMask  *bool     `yaml:"removeMask,omitempty" json:"removeMask,omitempty"`
}

// LoadFile loads and parses a YAML (or JSON) job file from the given path.
func LoadFile(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a JobFile. JSON is accepted as well.
func Parse(data []byte) (*JobFile, error) {
	var jf JobFile

	err := yaml.Unmarshal(data, &jf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}

	applyDefaults(&jf)

	return &jf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(jf *JobFile) {
	if jf.Version == "" {
		jf.Version = "1"
	}

	if jf.Output.Format == "" {
		jf.Output.Format = FormatFixedWidth
	}

	if jf.Output.Encoding == "" {
		jf.Output.Encoding = EncodingUTF8
	}
}

// Marshal serializes a JobFile to YAML.
func Marshal(jf *JobFile) ([]byte, error) {
	return yaml.Marshal(jf)
}

// WriteFile writes a JobFile to the given path.
func WriteFile(jf *JobFile, path string) error {
	data, err := Marshal(jf)
	if err != nil {
		return fmt.Errorf("failed to marshal job file: %w", err)
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write job file %s: %w", path, err)
	}

	return nil
}

// ApplyColumns applies column overrides to t in order.
func ApplyColumns(t *Table, specs []ColumnSpec) error {
	for _, s := range specs {
		if _, ok := t.Lookup(s.Header); !ok {
			return fmt.Errorf("column override: %w: %q", ErrUnknownHeader, s.Header)
		}

		if s.DataType != nil {
			if err := t.SetDataType(s.Header, *s.DataType); err != nil {
				return err
			}
		}

		if s.AlphaLength != nil {
			if err := t.SetAlphaLength(s.Header, s.AlphaLength); err != nil {
				return err
			}
		}

		if s.FieldID != nil {
			if err := t.Assign(s.Header, *s.FieldID); err != nil {
				return err
			}
		}

		if s.RemoveMask != nil {
			if err := t.SetRemoveMask(s.Header, *s.RemoveMask); err != nil {
				return err
			}
		}
	}

	return nil
}

// ColumnSpecs pins every column of t, so that ApplyColumns on a fresh guess
// reproduces t.
func ColumnSpecs(t *Table) []ColumnSpec {
	cols := t.Columns()
	specs := make([]ColumnSpec, len(cols))

	for i, c := range cols {
		fieldID, dt, removeMask := c.FieldID, c.DataType, c.RemoveMask
		specs[i] = ColumnSpec{
			Header:      c.OriginalHeader,
			FieldID:     &fieldID,
			DataType:    &dt,
			AlphaLength: c.AlphaLength,
			RemoveMask:  &removeMask,
		}
	}

	return specs
}
