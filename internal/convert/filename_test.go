package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layout-converter/internal/mapping"
)

func TestProposedFilename(t *testing.T) {
	tests := []struct {
		name   string
		config string
		source string
		format mapping.Format
		want   string
	}{
		{"config name", "Remessa Órgão 01", "x.csv", mapping.FormatFixedWidth, "Remessa_Orgao_01.txt"},
		{"source name", "", "/data/base-clientes.xlsx", mapping.FormatDelimited, "base-clientes.csv"},
		{"punctuation collapses", " a / b ", "", mapping.FormatDelimited, "a_b.csv"},
		{"fallback", "", "", mapping.FormatFixedWidth, "saida.txt"},
		{"nothing usable", "???", "***.csv", mapping.FormatFixedWidth, "saida.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProposedFilename(tt.config, tt.source, tt.format))
		})
	}
}

func TestWriteResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res := &Result{Data: []byte("abc"), Filename: "remessa.txt"}

	path, err := WriteResult(res, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "remessa.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}
