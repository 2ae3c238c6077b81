package mapping

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"

	"layout-converter/internal/common"
)

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// UnmarshalJSON accepts a string or an array of strings.
func (s *StringOrArray) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil
	}

	var arr []string

	err := json.Unmarshal(data, &arr)
	if err != nil {
		return fmt.Errorf("expected string or array: %w", err)
	}

	*s = arr

	return nil
}

// fieldDoc is the flat document form of an OutputField.
type fieldDoc struct {
	ID    string    `json:"id" yaml:"id"`
	Order int       `json:"order" yaml:"order"`
	Kind  FieldKind `json:"kind" yaml:"kind"`

	FieldID          string            `json:"fieldId,omitempty" yaml:"fieldId,omitempty"`
	Label            string            `json:"label,omitempty" yaml:"label,omitempty"`
	Value            *string           `json:"value,omitempty" yaml:"value,omitempty"`
	Algorithm        Algorithm         `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	RequiredFieldIDs StringOrArray     `json:"requiredFieldIds,omitempty" yaml:"requiredFieldIds,omitempty"`
	Parameters       map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	Length       int          `json:"length,omitempty" yaml:"length,omitempty"`
	PadChar      string       `json:"padChar,omitempty" yaml:"padChar,omitempty"`
	PadDirection PadDirection `json:"padDirection,omitempty" yaml:"padDirection,omitempty"`
	DateFormat   DateFormat   `json:"dateFormat,omitempty" yaml:"dateFormat,omitempty"`
}

var errMissingKind = errors.New("output field has no kind")

func (f OutputField) toDoc() (fieldDoc, error) {
	doc := fieldDoc{ID: f.ID, Order: f.Order, DateFormat: f.DateFormat}

	if f.Layout != nil {
		doc.Length = f.Layout.Length
		doc.PadChar = f.Layout.PadChar
		doc.PadDirection = f.Layout.PadDirection
	}

	switch src := f.Source.(type) {
	case MappedSource:
		doc.Kind = KindMapped
		doc.FieldID = src.FieldID
	case StaticSource:
		v := src.Value
		doc.Kind = KindStatic
		doc.Label = src.Label
		doc.Value = &v
	case CalculatedSource:
		doc.Kind = KindCalculated
		doc.Label = src.Label
		doc.Algorithm = src.Algorithm
		doc.RequiredFieldIDs = StringOrArray(src.RequiredFieldIDs)
		doc.Parameters = maps.Clone(src.Parameters)
	default:
		return fieldDoc{}, fmt.Errorf("field %q: %w", f.ID, errMissingKind)
	}

	return doc, nil
}

func (doc fieldDoc) toField() (OutputField, error) {
	f := OutputField{ID: doc.ID, Order: doc.Order, DateFormat: doc.DateFormat}

	if doc.Length != 0 || doc.PadChar != "" || doc.PadDirection != "" {
		f.Layout = &Layout{Length: doc.Length, PadChar: doc.PadChar, PadDirection: doc.PadDirection}
	}

	switch doc.Kind {
	case KindMapped:
		f.Source = MappedSource{FieldID: doc.FieldID}
	case KindStatic:
		src := StaticSource{Label: doc.Label}
		if doc.Value != nil {
			src.Value = *doc.Value
		}

		f.Source = src
	case KindCalculated:
		f.Source = CalculatedSource{
			Label:            doc.Label,
			Algorithm:        doc.Algorithm,
			RequiredFieldIDs: []string(doc.RequiredFieldIDs),
			Parameters:       doc.Parameters,
		}
	case "":
		return OutputField{}, fmt.Errorf("field %q: %w", doc.ID, errMissingKind)
	default:
		return OutputField{}, fmt.Errorf("field %q: unknown kind %q", doc.ID, doc.Kind)
	}

	return f, nil
}

// MarshalJSON implements json.Marshaler.
func (f OutputField) MarshalJSON() ([]byte, error) {
	doc, err := f.toDoc()
	if err != nil {
		return nil, err
	}

	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *OutputField) UnmarshalJSON(data []byte) error {
	var doc fieldDoc

	err := json.Unmarshal(data, &doc)
	if err != nil {
		return err
	}

	out, err := doc.toField()
	if err != nil {
		return err
	}

	*f = out

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (f OutputField) MarshalYAML() (any, error) {
	return f.toDoc()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *OutputField) UnmarshalYAML(node *yaml.Node) error {
	var doc fieldDoc

	err := node.Decode(&doc)
	if err != nil {
		return err
	}

	out, err := doc.toField()
	if err != nil {
		return err
	}

	*f = out

	return nil
}

// MarshalYAML writes a DataType by name.
func (d DataType) MarshalYAML() (any, error) {
	b, err := d.MarshalText()
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

// UnmarshalYAML reads a DataType by name.
func (d *DataType) UnmarshalYAML(node *yaml.Node) error {
	var s string

	err := node.Decode(&s)
	if err != nil {
		return err
	}

	return d.UnmarshalText([]byte(s))
}
