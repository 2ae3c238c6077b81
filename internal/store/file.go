package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"layout-converter/internal/catalog"
	"layout-converter/internal/mapping"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	configsDir       = "configs"
	customFieldsFile = "custom_fields.json"
	documentExt      = ".json"
)

// FileStore keeps one JSON file per config under dir/configs and the custom
// fields in dir/custom_fields.json.
type FileStore struct {
	dir string
	opt options
	mu  sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates the directory layout if needed.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, configsDir), dirPerm); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	return &FileStore{dir: dir, opt: buildOptions(opts)}, nil
}

func (s *FileStore) configPath(name string) string {
	return filepath.Join(s.dir, configsDir, url.PathEscape(name)+documentExt)
}

// writeFile writes through a temporary file so readers never see a partial
// document.
func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// Save implements ConfigStore.
func (s *FileStore) Save(ctx context.Context, cfg mapping.OutputConfig) (*Document, error) {
	if err := checkName(cfg.Name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.Load(ctx, cfg.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	doc := nextDocument(prev, cfg, s.opt.now())

	data, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}

	if err := writeFile(s.configPath(cfg.Name), data); err != nil {
		return nil, fmt.Errorf("writing config %q: %w", cfg.Name, err)
	}

	return doc, nil
}

// Load implements ConfigStore.
func (s *FileStore) Load(_ context.Context, name string) (*Document, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.configPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", name, err)
	}

	return DecodeDocument(data)
}

// List implements ConfigStore.
func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, configsDir))
	if err != nil {
		return nil, fmt.Errorf("listing configs: %w", err)
	}

	out := make([]Summary, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), documentExt) {
			continue
		}

		name, err := url.PathUnescape(strings.TrimSuffix(e.Name(), documentExt))
		if err != nil {
			continue
		}

		doc, err := s.Load(ctx, name)
		if err != nil {
			return nil, err
		}

		out = append(out, doc.Summary())
	}

	sortSummaries(out)

	return out, nil
}

// Delete implements ConfigStore.
func (s *FileStore) Delete(_ context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.configPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return err
}

// LoadCustomFields implements CatalogStore.
func (s *FileStore) LoadCustomFields(_ context.Context) ([]catalog.Field, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, customFieldsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading custom fields: %w", err)
	}

	var fields []catalog.Field
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decoding custom fields: %w", err)
	}

	return fields, nil
}

// SaveCustomFields implements CatalogStore.
func (s *FileStore) SaveCustomFields(_ context.Context, fields []catalog.Field) error {
	data, err := json.MarshalIndent(retained(fields), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding custom fields: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFile(filepath.Join(s.dir, customFieldsFile), data); err != nil {
		return fmt.Errorf("writing custom fields: %w", err)
	}

	return nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}
