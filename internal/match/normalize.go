package match

import (
	"strings"
	"unicode"

	"layout-converter/internal/common"
)

// NormalizeHeader normalizes a column header for keyword matching.
// The normalization pipeline:
// 1. Trim and strip diacritics.
// 2. Tokenize CamelCase and split on anything that is not a letter or digit.
// 3. Case-fold to lower.
// 4. Join tokens with a single space.
//
// Examples:
//   - "Valor da Parcela (R$)" -> "valor da parcela r"
//   - "dtNascimento" -> "dt nascimento"
//   - "CPF_CLIENTE" -> "cpf cliente"
func NormalizeHeader(s string) string {
	return strings.Join(HeaderTokens(s), " ")
}

// HeaderTokens splits a header into normalized lowercase tokens.
func HeaderTokens(s string) []string {
	tokens := tokenizeCamelCase(common.FoldAccents(strings.TrimSpace(s)))
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// NormalizeIdent normalizes a name for fuzzy matching: tokens are joined
// without separators, so "Data Admissão" and "data_admissao" compare equal.
func NormalizeIdent(s string) string {
	return strings.Join(HeaderTokens(s), "")
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "ValorParcela" -> ["Valor", "Parcela"]
//   - "dtNasc" -> ["dt", "Nasc"]
//   - "CPFCliente" -> ["CPF", "Cliente"]
//   - "data-inicio" -> ["data", "inicio"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator returns true for every rune that is neither a letter nor a digit.
func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)
	isPrevSep := isSeparator(prevRune)

	// "valorParcela" -> split before 'P'
	if isUpper && !isPrevUpper && !isPrevSep {
		return true
	}

	// "CPFCliente" -> "CPF" + "Cliente", split before 'C'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
	if isUpper && isPrevUpper && hasNextLower {
		return true
	}

	return false
}
