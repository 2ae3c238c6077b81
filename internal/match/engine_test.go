package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layout-converter/internal/catalog"
	"layout-converter/internal/mapping"
)

// partialCatalog hides some core fields.
type partialCatalog struct {
	*catalog.Catalog
	hidden map[string]bool
}

func (p partialCatalog) Has(id string) bool {
	return !p.hidden[id] && p.Catalog.Has(id)
}

func TestEngine_GuessField(t *testing.T) {
	e := NewEngine(catalog.New())

	tests := []struct {
		header   string
		expected string
	}{
		{"CPF", catalog.FieldCPF},
		{"cpfCliente", catalog.FieldCPF},
		{"CNPJ Empresa", catalog.FieldCNPJ},
		{"Nome do Servidor", catalog.FieldName},
		{"Matrícula", catalog.FieldRegistration},
		{"Data de Nascimento", catalog.FieldBirthDate},
		{"DtNasc", catalog.FieldBirthDate},
		{"Valor", catalog.FieldRealizedValue},
		{"Valor da Parcela", catalog.FieldInstallment},
		{"VLR_PARCELA", catalog.FieldInstallment},
		{"Valor Liberado", catalog.FieldReleasedValue},
		{"Valor Margem", catalog.FieldMargin},
		{"Qtd Parcelas Pagas", catalog.FieldInstallmentsPd},
		{"Qtd Parcelas", catalog.FieldTerm},
		{"Data Início Contrato", catalog.FieldStartDate},
		{"Número do Contrato", catalog.FieldContract},
		{"Competência", catalog.FieldPeriod},
		{"E-mail", catalog.FieldEmail},
		{"Órgão", catalog.FieldAgency},
		{"UF", catalog.FieldState},
		{"Agência", catalog.FieldBranch},
		{"Conta Corrente", catalog.FieldAccount},
		{"Contato", ""},
		{"Observação", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.GuessField(tt.header))
		})
	}
}

func TestEngine_GuessFieldMissingFromCatalog(t *testing.T) {
	cat := partialCatalog{Catalog: catalog.New(), hidden: map[string]bool{catalog.FieldInstallment: true}}
	e := NewEngine(cat)

	// The most specific rule decides even when its field is unavailable.
	g := e.Guess("Valor da Parcela", "")
	assert.Empty(t, g.FieldID)
	assert.Contains(t, g.FieldReason, "not in the catalog")

	assert.Equal(t, catalog.FieldRealizedValue, e.GuessField("Valor"))
}

func TestEngine_GuessFieldCustom(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.Add(catalog.Field{ID: "codigo_beneficio", Name: "Código do benefício"}))

	e := NewEngine(cat)

	assert.Equal(t, "codigo_beneficio", e.GuessField("Codigo do Beneficio"))
	assert.Equal(t, "codigo_beneficio", e.GuessField("CODIGO_BENEFICIO"))
	assert.Empty(t, e.GuessField("Código"))

	strict := NewEngine(cat, WithSimilarityThreshold(1.01))
	assert.Empty(t, strict.GuessField("Codigo do Beneficio"))
}

func TestEngine_WithRules(t *testing.T) {
	e := NewEngine(catalog.New(), WithRules([]Rule{
		{FieldID: catalog.FieldName, Keywords: []string{"servidor"}},
		{FieldID: catalog.FieldRegistration, Keywords: []string{"cod", "servidor"}},
	}))

	assert.Equal(t, catalog.FieldRegistration, e.GuessField("Cod Servidor"))
	assert.Equal(t, catalog.FieldName, e.GuessField("Servidor"))
	assert.Empty(t, e.GuessField("CPF"))
}

func TestEngine_Deterministic(t *testing.T) {
	e := NewEngine(catalog.New())

	first := e.Guess("Valor da Parcela", "1.234,56")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Guess("Valor da Parcela", "1.234,56"))
	}

	assert.Equal(t, catalog.FieldInstallment, first.FieldID)
	assert.Equal(t, mapping.DataTypeNumeric, first.DataType)
}

func TestEngine_NilCatalog(t *testing.T) {
	e := NewEngine(nil)

	assert.Empty(t, e.GuessField("CPF"))
	assert.Empty(t, e.GuessField("whatever"))
}

func TestRule_Specificity(t *testing.T) {
	ranked := rankRules([]Rule{
		rule("a", "valor"),
		rule("b", "valor", "parcela"),
		rule("c", "cpf"),
		rule("d", "nome"),
	})

	var ids []string
	for _, r := range ranked {
		ids = append(ids, r.FieldID)
	}

	assert.Equal(t, []string{"b", "a", "d", "c"}, ids)
	assert.False(t, Rule{FieldID: "x"}.Matches([]string{"x"}, "x"), "rules without keywords never match")
}
