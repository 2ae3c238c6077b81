package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	return buf.Bytes()
}

func TestReadWorkbook(t *testing.T) {
	data := workbookBytes(t, [][]any{
		{"CPF", "", "Nome", "Nome"},
		{"12345678909", "x", "Maria", "Silva"},
		{"98765432100", "y", "João"},
	})

	tbl, err := ReadWorkbook(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"CPF", "Coluna 2", "Nome", "Nome (2)"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, Row{"CPF": "12345678909", "Coluna 2": "x", "Nome": "Maria", "Nome (2)": "Silva"}, tbl.Rows[0])
	assert.Equal(t, "", tbl.Rows[1]["Nome (2)"])
	assert.Empty(t, tbl.Charset)
}

func TestReadWorkbook_Empty(t *testing.T) {
	_, err := ReadWorkbook(workbookBytes(t, nil))
	require.ErrorIs(t, err, ErrEmptyTable)
}

func TestReadWorkbook_NotAWorkbook(t *testing.T) {
	_, err := ReadWorkbook([]byte("PK\x03\x04garbage"))
	require.Error(t, err)
}
