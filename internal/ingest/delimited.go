package ingest

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// Separators lists the candidates considered by SniffSeparator, in
// tie-breaking order.
var Separators = []rune{';', ',', '\t', '|'}

// SniffSeparator picks the separator occurring most often in the header line.
// It reports false when none of the candidates occurs.
func SniffSeparator(line string) (rune, bool) {
	var (
		best  rune
		count int
	)

	for _, sep := range Separators {
		if n := strings.Count(line, string(sep)); n > count {
			best, count = sep, n
		}
	}

	return best, count > 0
}

// ReadDelimited parses delimited text. The first record is the header row.
func ReadDelimited(data []byte) (*Table, error) {
	text, charset, err := DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}

	lines := splitLines(text)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, ErrEmptyTable
	}

	sep, ok := SniffSeparator(lines[0])
	if !ok {
		sep = Separators[0]
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sep
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited input: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	headers := distinctHeaders(records[0])

	return &Table{
		Headers: headers,
		Rows:    buildRows(headers, records[1:]),
		Charset: charset,
	}, nil
}
