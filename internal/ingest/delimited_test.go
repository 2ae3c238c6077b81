package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniffSeparator(t *testing.T) {
	tests := []struct {
		line   string
		want   rune
		wantOK bool
	}{
		{"CPF;Nome;Valor", ';', true},
		{"CPF,Nome,Valor", ',', true},
		{"CPF\tNome\tValor", '\t', true},
		{"CPF|Nome|Valor", '|', true},
		{"Nome, Sobrenome;Valor;Data", ';', true},
		{"a;b,c", ';', true},
		{"ONLYONECOLUMN", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := SniffSeparator(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadDelimited(t *testing.T) {
	t.Run("semicolon with quotes and CRLF", func(t *testing.T) {
		data := []byte("CPF;Nome;Valor\r\n123.456.789-09;\"Silva; Maria\";1.234,56\r\n\r\n987;João;10\r\n")

		tbl, err := ReadDelimited(data)
		require.NoError(t, err)

		assert.Equal(t, []string{"CPF", "Nome", "Valor"}, tbl.Headers)
		require.Len(t, tbl.Rows, 2)
		assert.Equal(t, "Silva; Maria", tbl.Rows[0]["Nome"])
		assert.Equal(t, "João", tbl.Rows[1]["Nome"])
		assert.Equal(t, CharsetUTF8, tbl.Charset)
	})

	t.Run("ragged rows", func(t *testing.T) {
		tbl, err := ReadDelimited([]byte("a,b,c\n1,2\n3,4,5,6\n"))
		require.NoError(t, err)

		assert.Equal(t, []Row{
			{"a": "1", "b": "2", "c": ""},
			{"a": "3", "b": "4", "c": "5"},
		}, tbl.Rows)
	})

	t.Run("windows-1252", func(t *testing.T) {
		data := []byte("Nome;Cidade\nJo\xe3o;S\xe3o Paulo\n")

		tbl, err := ReadDelimited(data)
		require.NoError(t, err)

		assert.Equal(t, CharsetWindows1252, tbl.Charset)
		assert.Equal(t, "João", tbl.Rows[0]["Nome"])
		assert.Equal(t, "São Paulo", tbl.Rows[0]["Cidade"])
	})

	t.Run("bom is stripped", func(t *testing.T) {
		tbl, err := ReadDelimited([]byte("\xef\xbb\xbfCPF;Nome\n1;A\n"))
		require.NoError(t, err)

		assert.Equal(t, []string{"CPF", "Nome"}, tbl.Headers)
	})

	t.Run("header only", func(t *testing.T) {
		tbl, err := ReadDelimited([]byte("CPF;Nome\n"))
		require.NoError(t, err)

		assert.Equal(t, []string{"CPF", "Nome"}, tbl.Headers)
		assert.Empty(t, tbl.Rows)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ReadDelimited(nil)
		require.ErrorIs(t, err, ErrEmptyTable)
	})
}

func TestReadFixedLines(t *testing.T) {
	tbl, err := ReadFixedLines([]byte("0001ABC  \r\n\r\n0002DEF  \r\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{LineColumn}, tbl.Headers)
	assert.Equal(t, []Row{
		{LineColumn: "0001ABC  "},
		{LineColumn: "0002DEF  "},
	}, tbl.Rows)

	_, err = ReadFixedLines([]byte("\n  \n"))
	require.ErrorIs(t, err, ErrEmptyTable)
}
