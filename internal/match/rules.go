package match

import (
	"sort"
	"strings"

	"layout-converter/internal/catalog"
)

// shortKeywordLen is the longest keyword that must start a token to match.
// Longer keywords match anywhere in the normalized header.
const shortKeywordLen = 3

// Rule proposes FieldID for headers containing every keyword and none of the
// excluded ones.
type Rule struct {
	FieldID  string
	Keywords []string
	Exclude  []string
}

// Specificity ranks rules: the combined keyword length.
func (r Rule) Specificity() int {
	n := 0
	for _, kw := range r.Keywords {
		n += len(kw)
	}

	return n
}

// Matches reports whether a normalized header satisfies every keyword.
func (r Rule) Matches(tokens []string, normalized string) bool {
	if len(r.Keywords) == 0 {
		return false
	}

	for _, kw := range r.Keywords {
		if !keywordMatches(kw, tokens, normalized) {
			return false
		}
	}

	for _, kw := range r.Exclude {
		if keywordMatches(kw, tokens, normalized) {
			return false
		}
	}

	return true
}

func keywordMatches(kw string, tokens []string, normalized string) bool {
	if len(kw) > shortKeywordLen {
		return strings.Contains(normalized, kw)
	}

	for _, t := range tokens {
		if strings.HasPrefix(t, kw) {
			return true
		}
	}

	return false
}

// rankRules orders rules by descending specificity, keeping table order for ties.
func rankRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Specificity() > out[j].Specificity()
	})

	return out
}

func rule(fieldID string, keywords ...string) Rule {
	return Rule{FieldID: fieldID, Keywords: keywords}
}

// DefaultRules is the keyword table for the core catalog fields. Keywords are
// written in normalized form (lower case, no diacritics).
var DefaultRules = []Rule{
	rule(catalog.FieldInstallmentsPd, "parcelas", "pagas"),
	rule(catalog.FieldInstallmentsPd, "parcela", "paga"),
	rule(catalog.FieldInstallment, "valor", "parcela"),
	rule(catalog.FieldInstallment, "vlr", "parcela"),
	rule(catalog.FieldInstallment, "prestacao"),
	rule(catalog.FieldReleasedValue, "valor", "liberado"),
	rule(catalog.FieldReleasedValue, "vlr", "liberado"),
	rule(catalog.FieldRealizedValue, "valor", "realizado"),
	rule(catalog.FieldRealizedValue, "vlr", "realizado"),
	rule(catalog.FieldRealizedValue, "realizado"),
	rule(catalog.FieldRealizedValue, "valor"),
	rule(catalog.FieldMargin, "margem"),
	rule(catalog.FieldTerm, "prazo"),
	rule(catalog.FieldTerm, "qtd", "parcelas"),
	rule(catalog.FieldBirthDate, "data", "nascimento"),
	rule(catalog.FieldBirthDate, "nascimento"),
	rule(catalog.FieldBirthDate, "dt", "nasc"),
	rule(catalog.FieldBirthDate, "nasc"),
	rule(catalog.FieldStartDate, "data", "inicio"),
	rule(catalog.FieldStartDate, "dt", "inicio"),
	rule(catalog.FieldStartDate, "inicio"),
	rule(catalog.FieldPeriod, "periodo"),
	rule(catalog.FieldPeriod, "competencia"),
	rule(catalog.FieldPeriod, "mes", "referencia"),
	rule(catalog.FieldCNPJ, "cnpj"),
	rule(catalog.FieldCPF, "cpf"),
	rule(catalog.FieldRG, "identidade"),
	rule(catalog.FieldRG, "rg"),
	rule(catalog.FieldRegistration, "matricula"),
	rule(catalog.FieldName, "nome"),
	rule(catalog.FieldGender, "sexo"),
	rule(catalog.FieldGender, "genero"),
	rule(catalog.FieldEmail, "mail"),
	rule(catalog.FieldPhone, "telefone"),
	rule(catalog.FieldPhone, "celular"),
	rule(catalog.FieldPhone, "fone"),
	rule(catalog.FieldAddress, "endereco"),
	rule(catalog.FieldAddress, "logradouro"),
	rule(catalog.FieldCity, "cidade"),
	rule(catalog.FieldCity, "municipio"),
	rule(catalog.FieldState, "uf"),
	rule(catalog.FieldState, "estado"),
	rule(catalog.FieldZip, "cep"),
	rule(catalog.FieldContract, "contrato"),
	rule(catalog.FieldAgency, "orgao"),
	rule(catalog.FieldAgency, "convenio"),
	rule(catalog.FieldBank, "banco"),
	rule(catalog.FieldBranch, "agencia"),
	{FieldID: catalog.FieldAccount, Keywords: []string{"conta"}, Exclude: []string{"contato", "contab"}},
}
