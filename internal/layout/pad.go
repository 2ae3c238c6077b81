package layout

import (
	"regexp"
	"strings"

	"layout-converter/internal/mapping"
)

// Spec is the fixed-width layout of one field.
type Spec struct {
	Length    int
	PadChar   rune
	Direction mapping.PadDirection
	// NumericLike enables sign handling and keeps the least significant digits
	// when a left-padded value is truncated.
	NumericLike bool
}

// SpecFor builds the spec of a field from its layout and effective data type.
func SpecFor(l mapping.Layout, dt mapping.DataType) Spec {
	s := Spec{Length: l.Length, PadChar: ' ', Direction: l.PadDirection, NumericLike: dt.IsNumericLike()}
	if r := []rune(l.PadChar); len(r) > 0 {
		s.PadChar = r[0]
	}

	return s
}

var twoDecimals = regexp.MustCompile(`^\d+\.\d{2}$`)

// Pad fits value into exactly spec.Length runes.
//
// Values that are too long are truncated, keeping the trailing runes for
// left-padded numeric values and the leading runes otherwise. Short values
// are filled with the pad character on the configured side. A negative
// number padded with '0' keeps its sign first ("-000123"), and a two-decimal
// number padded with '0' only grows its integer part ("0012.50").
func Pad(value string, spec Spec) string {
	if spec.Length <= 0 {
		return ""
	}

	if spec.PadChar == 0 {
		spec.PadChar = ' '
	}

	sign, core := "", []rune(value)
	if spec.NumericLike && spec.Length > 1 && strings.HasPrefix(value, "-") {
		sign, core = "-", core[1:]
	}

	keepTrailing := spec.NumericLike && spec.Direction == mapping.PadLeft
	avail := spec.Length - len(sign)
	core = clamp(core, avail, keepTrailing)

	var out string

	fill := strings.Repeat(string(spec.PadChar), avail-len(core))

	switch {
	case fill == "":
		out = sign + string(core)
	case spec.PadChar == '0' && spec.NumericLike && twoDecimals.MatchString(string(core)):
		out = sign + fill + string(core)
	case spec.Direction == mapping.PadLeft && spec.PadChar == '0':
		out = sign + fill + string(core)
	case spec.Direction == mapping.PadLeft:
		out = fill + sign + string(core)
	default:
		out = sign + string(core) + fill
	}

	runes := clamp([]rune(out), spec.Length, keepTrailing)
	for len(runes) < spec.Length {
		runes = append(runes, spec.PadChar)
	}

	return string(runes)
}

func clamp(r []rune, n int, keepTrailing bool) []rune {
	if len(r) <= n {
		return r
	}

	if keepTrailing {
		return r[len(r)-n:]
	}

	return r[:n]
}
