package ingest

import (
	"fmt"
	"strings"
)

// ReadFixedLines reads legacy fixed-position records. Every non-blank line
// becomes one row holding the whole line under LineColumn.
func ReadFixedLines(data []byte) (*Table, error) {
	text, charset, err := DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}

	t := &Table{Headers: []string{LineColumn}, Charset: charset}

	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		t.Rows = append(t.Rows, Row{LineColumn: line})
	}

	if len(t.Rows) == 0 {
		return nil, ErrEmptyTable
	}

	return t, nil
}
