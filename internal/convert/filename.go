package convert

import (
	"path/filepath"
	"strings"

	"layout-converter/internal/common"
	"layout-converter/internal/mapping"
)

const defaultBaseName = "saida"

// ProposedFilename suggests the output file name: the config name, else the
// input file's base name, made filesystem safe, plus the format's extension.
func ProposedFilename(configName, sourceName string, format mapping.Format) string {
	base := sanitizeName(configName)
	if base == "" {
		src := filepath.Base(sourceName)
		base = sanitizeName(strings.TrimSuffix(src, filepath.Ext(src)))
	}

	if base == "" {
		base = defaultBaseName
	}

	return base + format.Extension()
}

// sanitizeName keeps ASCII letters, digits, dashes and underscores. Runs of
// anything else become a single underscore.
func sanitizeName(s string) string {
	var b strings.Builder

	gap := false

	for _, r := range common.FoldAccents(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			if gap && b.Len() > 0 {
				b.WriteByte('_')
			}

			b.WriteRune(r)

			gap = false
		default:
			gap = true
		}
	}

	return b.String()
}
