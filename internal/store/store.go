package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"layout-converter/internal/catalog"
	"layout-converter/internal/mapping"
)

var (
	// ErrNotFound is returned when no config has the requested name.
	ErrNotFound = errors.New("config not found")
	// ErrInvalidDocument is returned for documents failing ValidateDocument.
	ErrInvalidDocument = errors.New("invalid config document")
	// ErrInvalidName is returned for config names that cannot be stored.
	ErrInvalidName = errors.New("invalid config name")
)

// Document is a stored config. Its JSON form is the config itself plus the
// version and save time.
type Document struct {
	mapping.OutputConfig
	Version int       `json:"version"`
	SavedAt time.Time `json:"savedAt"`
}

// Summary describes a stored config without its fields.
type Summary struct {
	Name    string         `json:"name"`
	Version int            `json:"version"`
	SavedAt time.Time      `json:"savedAt"`
	Format  mapping.Format `json:"format"`
	Fields  int            `json:"fields"`
}

// ConfigStore persists named output configs.
type ConfigStore interface {
	Save(ctx context.Context, cfg mapping.OutputConfig) (*Document, error)
	Load(ctx context.Context, name string) (*Document, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, name string) error
}

// CatalogStore persists the retained custom catalog fields.
type CatalogStore interface {
	LoadCustomFields(ctx context.Context) ([]catalog.Field, error)
	// SaveCustomFields replaces the stored fields with the retained custom
	// ones among fields.
	SaveCustomFields(ctx context.Context, fields []catalog.Field) error
}

// Store is a complete storage backend.
type Store interface {
	ConfigStore
	CatalogStore
	Close() error
}

// Option configures a backend.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the source of SavedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// documentProbe is the minimal shape every stored document must have.
type documentProbe struct {
	Name   *string            `json:"name" validate:"required"`
	Fields *[]json.RawMessage `json:"fields" validate:"required"`
}

var probeValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateDocument checks that raw is a JSON object with a string name and a
// fields array.
func ValidateDocument(raw []byte) error {
	var p documentProbe
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if err := probeValidator.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDocument)
	}

	return nil
}

// DecodeDocument validates and decodes a stored document.
func DecodeDocument(raw []byte) (*Document, error) {
	if err := ValidateDocument(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return &doc, nil
}

// Summary returns the document's summary.
func (d *Document) Summary() Summary {
	return Summary{
		Name:    d.Name,
		Version: d.Version,
		SavedAt: d.SavedAt,
		Format:  d.Format,
		Fields:  len(d.Fields),
	}
}

func checkName(name string) error {
	switch strings.TrimSpace(name) {
	case "", ".", "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// nextDocument builds the document replacing prev, which may be nil.
func nextDocument(prev *Document, cfg mapping.OutputConfig, now time.Time) *Document {
	doc := &Document{OutputConfig: cfg.Clone(), Version: 1, SavedAt: now.UTC()}
	if doc.Fields == nil {
		doc.Fields = []mapping.OutputField{}
	}

	if prev != nil {
		doc.Version = prev.Version + 1
	}

	return doc
}

func encodeDocument(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode config %q: %w", doc.Name, err)
	}

	return data, nil
}

// retained keeps the custom fields marked for retention.
func retained(fields []catalog.Field) []catalog.Field {
	out := make([]catalog.Field, 0, len(fields))
	for _, f := range fields {
		if !f.Core && f.Retained {
			out = append(out, f)
		}
	}

	return out
}

func sortSummaries(s []Summary) {
	slices.SortFunc(s, func(a, b Summary) int { return strings.Compare(a.Name, b.Name) })
}
