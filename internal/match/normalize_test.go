package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Basic cases
		{"CPF", "cpf"},
		{"  Nome  ", "nome"},
		{"Valor da Parcela", "valor da parcela"},

		// Diacritics
		{"Órgão", "orgao"},
		{"Data de Início", "data de inicio"},
		{"Situação", "situacao"},

		// CamelCase variations
		{"valorParcela", "valor parcela"},
		{"DtNasc", "dt nasc"},
		{"CPFCliente", "cpf cliente"},

		// Separators
		{"data_nascimento", "data nascimento"},
		{"e-mail", "e mail"},
		{"vlr.parcela", "vlr parcela"},
		{"Valor (R$)", "valor r"},
		{"mes/ano", "mes ano"},

		// Edge cases
		{"", ""},
		{"   ", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeHeader(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Data Admissão", "dataadmissao"},
		{"data_admissao", "dataadmissao"},
		{"DataAdmissao", "dataadmissao"},
		{"DATA-ADMISSAO", "dataadmissao"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestTokenizeCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"ValorParcela", []string{"Valor", "Parcela"}},
		{"dtNasc", []string{"dt", "Nasc"}},
		{"CPFCliente", []string{"CPF", "Cliente"}},
		{"numeroCPF", []string{"numero", "CPF"}},
		{"data_inicio", []string{"data", "inicio"}},
		{"ALLCAPS", []string{"ALLCAPS"}},
		{"lowercase", []string{"lowercase"}},
		{"", nil},
		{"a", []string{"a"}},
		{"AB", []string{"AB"}},
		{"AbC", []string{"Ab", "C"}},
		{"ABcD", []string{"A", "Bc", "D"}},
		{"Cód. Órgão", []string{"Cód", "Órgão"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenizeCamelCase(tt.input))
		})
	}
}

func TestHeaderTokens(t *testing.T) {
	assert.Equal(t, []string{"qtd", "parcelas", "pagas"}, HeaderTokens("QtdParcelas Pagas"))
	assert.Empty(t, HeaderTokens(""))
}
