package ingest

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads the first sheet of an XLSX workbook. The first row is
// the header row.
func ReadWorkbook(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmptyTable
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	// Skip blank rows above the header.
	for len(records) > 0 && isBlank(records[0]) {
		records = records[1:]
	}

	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	headers := distinctHeaders(records[0])

	return &Table{
		Headers: headers,
		Rows:    buildRows(headers, records[1:]),
	}, nil
}
