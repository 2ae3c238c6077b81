package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration

	"layout-converter/internal/catalog"
	"layout-converter/internal/mapping"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS configs (
	name     TEXT PRIMARY KEY,
	version  INTEGER NOT NULL,
	saved_at TEXT NOT NULL,
	document TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS custom_fields (
	id       TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	document TEXT NOT NULL
);`

// SQLiteStore keeps configs and custom fields in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	opt options
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (and creates if needed) the database at path.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %s: %w", path, err)
	}

	// One connection serializes writers, avoiding SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db, opt: buildOptions(opts)}, nil
}

// Save implements ConfigStore.
func (s *SQLiteStore) Save(ctx context.Context, cfg mapping.OutputConfig) (*Document, error) {
	if err := checkName(cfg.Name); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("saving config %q: %w", cfg.Name, err)
	}
	defer func() { _ = tx.Rollback() }()

	var prev *Document

	var version int

	err = tx.QueryRowContext(ctx, `SELECT version FROM configs WHERE name = ?`, cfg.Name).Scan(&version)

	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("saving config %q: %w", cfg.Name, err)
	default:
		prev = &Document{Version: version}
	}

	doc := nextDocument(prev, cfg, s.opt.now())

	data, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO configs (name, version, saved_at, document) VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	version = excluded.version,
	saved_at = excluded.saved_at,
	document = excluded.document`,
		doc.Name, doc.Version, doc.SavedAt.Format(time.RFC3339Nano), string(data))
	if err != nil {
		return nil, fmt.Errorf("saving config %q: %w", cfg.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("saving config %q: %w", cfg.Name, err)
	}

	return doc, nil
}

// Load implements ConfigStore.
func (s *SQLiteStore) Load(ctx context.Context, name string) (*Document, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	var raw string

	err := s.db.QueryRowContext(ctx, `SELECT document FROM configs WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if err != nil {
		return nil, fmt.Errorf("loading config %q: %w", name, err)
	}

	return DecodeDocument([]byte(raw))
}

// List implements ConfigStore.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT document FROM configs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing configs: %w", err)
	}
	defer rows.Close()

	var out []Summary

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("listing configs: %w", err)
		}

		doc, err := DecodeDocument([]byte(raw))
		if err != nil {
			return nil, err
		}

		out = append(out, doc.Summary())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing configs: %w", err)
	}

	sortSummaries(out)

	return out, nil
}

// Delete implements ConfigStore.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM configs WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting config %q: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting config %q: %w", name, err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return nil
}

// LoadCustomFields implements CatalogStore.
func (s *SQLiteStore) LoadCustomFields(ctx context.Context) ([]catalog.Field, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT document FROM custom_fields ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("loading custom fields: %w", err)
	}
	defer rows.Close()

	var fields []catalog.Field

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("loading custom fields: %w", err)
		}

		var f catalog.Field
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			return nil, fmt.Errorf("decoding custom field: %w", err)
		}

		fields = append(fields, f)
	}

	return fields, rows.Err()
}

// SaveCustomFields implements CatalogStore.
func (s *SQLiteStore) SaveCustomFields(ctx context.Context, fields []catalog.Field) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving custom fields: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM custom_fields`); err != nil {
		return fmt.Errorf("saving custom fields: %w", err)
	}

	for i, f := range retained(fields) {
		data, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("encoding custom field %q: %w", f.ID, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO custom_fields (id, position, document) VALUES (?, ?, ?)`, f.ID, i, string(data))
		if err != nil {
			return fmt.Errorf("saving custom field %q: %w", f.ID, err)
		}
	}

	return tx.Commit()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
