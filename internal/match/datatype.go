package match

import (
	"regexp"
	"strings"

	"layout-converter/internal/mapping"
)

// typeRule assigns DataType to headers with a token starting with any prefix.
type typeRule struct {
	DataType mapping.DataType
	Prefixes []string
}

// headerTypeRules are checked in order; the first hit wins.
var headerTypeRules = []typeRule{
	{mapping.DataTypeCPF, []string{"cpf"}},
	{mapping.DataTypeCNPJ, []string{"cnpj"}},
	{mapping.DataTypeRG, []string{"rg", "identidade"}},
	{mapping.DataTypeDate, []string{"data", "dt", "nasc", "vencimento", "admissao"}},
	{mapping.DataTypeNumeric, []string{"margem", "valor", "vlr", "salario", "saldo", "total"}},
	{mapping.DataTypeInteger, []string{"qtd", "quantidade", "prazo", "parcelas", "idade"}},
}

type samplePattern struct {
	DataType mapping.DataType
	Pattern  *regexp.Regexp
}

// samplePatterns are checked in order when no header rule applies.
var samplePatterns = []samplePattern{
	{mapping.DataTypeDate, regexp.MustCompile(`^\d{1,2}[/.-]\d{1,2}[/.-](\d{2}|\d{4})$`)},
	{mapping.DataTypeDate, regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}([ T].*)?$`)},
	{mapping.DataTypeCPF, regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)},
	{mapping.DataTypeCNPJ, regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)},
	{mapping.DataTypeNumeric, regexp.MustCompile(`^(R\$|\$|€)\s*-?[\d.,]*\d$`)},
	{mapping.DataTypeNumeric, regexp.MustCompile(`^-?\d{1,3}(\.\d{3})*,\d+$`)},
	{mapping.DataTypeNumeric, regexp.MustCompile(`^-?\d{1,3}(,\d{3})*\.\d+$`)},
	{mapping.DataTypeNumeric, regexp.MustCompile(`^-?\d+[.,]\d+$`)},
	{mapping.DataTypeInteger, regexp.MustCompile(`^-?\d+$`)},
}

// GuessDataType proposes a data type from header keywords, then from the shape
// of the sample value, defaulting to alphanumeric.
func GuessDataType(header, sample string) mapping.DataType {
	dt, _ := guessDataType(header, sample)

	return dt
}

func guessDataType(header, sample string) (mapping.DataType, string) {
	tokens := HeaderTokens(header)

	for _, r := range headerTypeRules {
		for _, p := range r.Prefixes {
			if hasTokenPrefix(tokens, p) {
				return r.DataType, "header keyword " + p
			}
		}
	}

	s := strings.TrimSpace(sample)
	if s != "" {
		for _, p := range samplePatterns {
			if p.Pattern.MatchString(s) {
				return p.DataType, "sample matches " + p.DataType.String()
			}
		}
	}

	return mapping.DataTypeAlphanumeric, "default"
}

func hasTokenPrefix(tokens []string, prefix string) bool {
	for _, t := range tokens {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}

	return false
}
