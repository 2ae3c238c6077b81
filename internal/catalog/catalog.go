package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"layout-converter/internal/common"
)

var (
	// ErrDuplicateField is returned when a field id is already registered.
	ErrDuplicateField = errors.New("field already exists")
	// ErrFieldNotFound is returned when a field id is not registered.
	ErrFieldNotFound = errors.New("field not found")
	// ErrCoreField is returned when trying to change or remove a core field.
	ErrCoreField = errors.New("core fields are immutable")
	// ErrInvalidField is returned when a field definition is malformed.
	ErrInvalidField = errors.New("invalid field")
)

var idPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Field is a named logical target (e.g. "CPF") that input columns can be mapped onto.
type Field struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Group    string `json:"group" yaml:"group"`
	Comment  string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Core     bool   `json:"isCore" yaml:"isCore"`
	Retained bool   `json:"retained" yaml:"retained"`
}

// Catalog is an ordered registry of fields. It is not safe for concurrent
// mutation; conversions only read it.
type Catalog struct {
	fields []Field
	index  map[string]int
}

// New returns a catalog seeded with the core fields.
func New() *Catalog {
	c := &Catalog{index: make(map[string]int)}
	for _, f := range coreFields {
		f.Core = true
		f.Retained = true
		c.insert(f)
	}

	return c
}

func (c *Catalog) insert(f Field) {
	c.index[f.ID] = len(c.fields)
	c.fields = append(c.fields, f)
}

func (c *Catalog) reindex() {
	c.index = make(map[string]int, len(c.fields))
	for i, f := range c.fields {
		c.index[f.ID] = i
	}
}

// Get returns the field with the given id.
func (c *Catalog) Get(id string) (Field, bool) {
	i, ok := c.index[id]
	if !ok {
		return Field{}, false
	}

	return c.fields[i], true
}

// Has returns true if a field with the given id exists.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Name returns the display name of a field, or the id itself when unknown.
func (c *Catalog) Name(id string) string {
	if f, ok := c.Get(id); ok {
		return f.Name
	}

	return id
}

// All returns every field: core fields in seed order, then custom fields in
// insertion order.
func (c *Catalog) All() []Field {
	return slices.Clone(c.fields)
}

// Custom returns the custom (non-core) fields.
func (c *Catalog) Custom() []Field {
	var out []Field

	for _, f := range c.fields {
		if !f.Core {
			out = append(out, f)
		}
	}

	return out
}

// Retained returns the custom fields that must be persisted.
func (c *Catalog) Retained() []Field {
	var out []Field

	for _, f := range c.fields {
		if !f.Core && f.Retained {
			out = append(out, f)
		}
	}

	return out
}

// Groups returns the distinct group names in first-seen order.
func (c *Catalog) Groups() []string {
	groups := make([]string, 0, len(c.fields))
	for _, f := range c.fields {
		groups = append(groups, f.Group)
	}

	return common.Dedupe(groups)
}

// Add registers a custom field.
func (c *Catalog) Add(f Field) error {
	f, err := normalize(f)
	if err != nil {
		return err
	}

	if c.Has(f.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateField, f.ID)
	}

	f.Core = false
	c.insert(f)

	return nil
}

// Update replaces the definition of a custom field.
func (c *Catalog) Update(f Field) error {
	f, err := normalize(f)
	if err != nil {
		return err
	}

	i, ok := c.index[f.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, f.ID)
	}

	if c.fields[i].Core {
		return fmt.Errorf("%w: %s", ErrCoreField, f.ID)
	}

	f.Core = false
	c.fields[i] = f

	return nil
}

// Remove deletes a custom field.
func (c *Catalog) Remove(id string) error {
	i, ok := c.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}

	if c.fields[i].Core {
		return fmt.Errorf("%w: %s", ErrCoreField, id)
	}

	c.fields = slices.Delete(c.fields, i, i+1)
	c.reindex()

	return nil
}

// LoadCustom registers persisted custom fields, skipping ids that collide with
// fields already present. It returns the ids that were skipped.
func (c *Catalog) LoadCustom(fields []Field) []string {
	var skipped []string

	for _, f := range fields {
		f.Retained = true
		if err := c.Add(f); err != nil {
			skipped = append(skipped, f.ID)
		}
	}

	return skipped
}

func normalize(f Field) (Field, error) {
	f.ID = strings.TrimSpace(f.ID)
	f.Name = strings.TrimSpace(f.Name)
	f.Group = strings.TrimSpace(f.Group)

	if !idPattern.MatchString(f.ID) {
		return f, fmt.Errorf("%w: id %q must match %s", ErrInvalidField, f.ID, idPattern)
	}

	if f.Name == "" {
		return f, fmt.Errorf("%w: field %s has no name", ErrInvalidField, f.ID)
	}

	if f.Group == "" {
		f.Group = GroupCustom
	}

	return f, nil
}

// Slug turns a display name into a valid field id ("Código Órgão" -> "codigo_orgao").
func Slug(name string) string {
	var b strings.Builder

	lastUnderscore := true

	for _, r := range strings.ToLower(common.FoldAccents(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)

			lastUnderscore = false
		case !lastUnderscore:
			b.WriteRune('_')

			lastUnderscore = true
		}
	}

	s := strings.Trim(b.String(), "_")
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		s = "f_" + s
	}

	return s
}
