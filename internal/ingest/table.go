package ingest

import (
	"errors"
	"fmt"
	"strings"

	"layout-converter/internal/common"
)

var (
	// ErrEmptyTable is returned when the input holds no header row.
	ErrEmptyTable = errors.New("input has no header row")
	// ErrUnsupportedFormat is returned for containers that cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// LineColumn is the pseudo-column of fixed-line records.
const LineColumn = "LINHA"

// Row maps headers to cell values.
type Row map[string]string

// Table is an ingested input file.
type Table struct {
	Headers []string
	Rows    []Row
	// Charset is the detected text encoding; empty for workbooks.
	Charset string
}

// Sample returns the first row, or nil for an empty table.
func (t *Table) Sample() Row {
	if len(t.Rows) == 0 {
		return nil
	}

	return t.Rows[0]
}

// distinctHeaders trims headers, names blank ones after their position and
// suffixes repeats.
func distinctHeaders(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))

	for i, h := range raw {
		h = common.CollapseSpaces(h)
		if h == "" {
			h = fmt.Sprintf("Coluna %d", i+1)
		}

		base := h
		for seen[h] > 0 {
			seen[base]++
			h = fmt.Sprintf("%s (%d)", base, seen[base])
		}

		seen[h]++
		out[i] = h
	}

	return out
}

// buildRows turns records into rows keyed by header. Missing cells are empty,
// extra cells are dropped and blank records are skipped.
func buildRows(headers []string, records [][]string) []Row {
	rows := make([]Row, 0, len(records))

	for _, rec := range records {
		if isBlank(rec) {
			continue
		}

		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}

		rows = append(rows, row)
	}

	return rows
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
