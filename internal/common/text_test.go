package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123.456.789-09", "12345678909"},
		{"R$ 1.234,56", "123456"},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Digits(tt.input))
		})
	}
}

func TestIsDigits(t *testing.T) {
	assert.True(t, IsDigits("0123"))
	assert.False(t, IsDigits(""))
	assert.False(t, IsDigits("12a"))
	assert.False(t, IsDigits("-1"))
}

func TestStripRunes(t *testing.T) {
	assert.Equal(t, "12345678", StripRunes("12.345.678-", ".-"))
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "valor da parcela", CollapseSpaces("  valor \t da  parcela "))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Dedupe([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, Dedupe([]string{}))
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "Orgao", FoldAccents("Órgão"))
	assert.Equal(t, "Periodo de competencia", FoldAccents("Período de competência"))
	assert.Equal(t, "plain", FoldAccents("plain"))
}
