package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"layout-converter/internal/catalog"
	"layout-converter/internal/diagnostic"
	"layout-converter/internal/ingest"
	"layout-converter/internal/mapping"
	"layout-converter/internal/match"
	"layout-converter/internal/store"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

func openStore(ctx context.Context) (store.Store, error) {
	s, err := store.Open(ctx, settings.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", settings.Storage.Backend, err)
	}

	return s, nil
}

// loadCatalog returns the core catalog plus the stored custom fields.
func loadCatalog(ctx context.Context, s store.CatalogStore) (*catalog.Catalog, error) {
	cat := catalog.New()

	fields, err := s.LoadCustomFields(ctx)
	if err != nil {
		return nil, err
	}

	for _, id := range cat.LoadCustom(fields) {
		logger.Warn("skipping stored custom field", zap.String("id", id))
	}

	return cat, nil
}

func readInput(path string) (*ingest.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	t, err := ingest.Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	logger.Debug("input parsed",
		zap.String("path", path),
		zap.Int("columns", len(t.Headers)),
		zap.Int("rows", len(t.Rows)),
		zap.String("charset", t.Charset))

	return t, nil
}

// buildMapping guesses a mapping for the headers and applies the job's
// column overrides on top.
func buildMapping(headers []string, sample map[string]string, cat *catalog.Catalog, specs []mapping.ColumnSpec) (*mapping.Table, error) {
	t := mapping.NewTable(headers, sample, match.NewEngine(cat))

	if err := mapping.ApplyColumns(t, specs); err != nil {
		return nil, err
	}

	return t, nil
}

// jobHeaders returns the headers declared by a job file.
func jobHeaders(job *mapping.JobFile) []string {
	headers := make([]string, len(job.Columns))
	for i, c := range job.Columns {
		headers[i] = c.Header
	}

	return headers
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...)

	fmt.Fprintln(w, t.Render())
}

func printDiagnostics(w io.Writer, d *diagnostic.Diagnostics) {
	for _, e := range d.Errors {
		fmt.Fprintln(w, errorStyle.Render("error:"), e.String())
	}

	for _, wn := range d.Warnings {
		fmt.Fprintln(w, warningStyle.Render("warning:"), wn.String())
	}

	for _, i := range d.Infos {
		fmt.Fprintln(w, mutedStyle.Render("note:"), i.String())
	}
}
