package layout

import (
	"strings"
)

// FixedWidthLine concatenates already padded values.
func FixedWidthLine(values []string) string {
	return strings.Join(values, "")
}

// Quote wraps v in double quotes, doubling embedded quotes, when it contains
// the delimiter, a quote or a line break. Other values are returned as is.
func Quote(v, delimiter string) string {
	needs := strings.ContainsAny(v, "\"\r\n") || (delimiter != "" && strings.Contains(v, delimiter))
	if !needs {
		return v
	}

	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// DelimitedLine quotes every value and joins them with the delimiter.
func DelimitedLine(values []string, delimiter string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = Quote(v, delimiter)
	}

	return strings.Join(quoted, delimiter)
}

// Join terminates every line with a newline and trims the final one.
func Join(lines []string) string {
	var b strings.Builder

	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// LocaleDecimal renders a canonical decimal ("1234.50") with a decimal comma.
func LocaleDecimal(v string) string {
	return strings.Replace(v, ".", ",", 1)
}
