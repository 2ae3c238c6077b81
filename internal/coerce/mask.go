package coerce

import (
	"fmt"
	"strings"

	"layout-converter/internal/common"
	"layout-converter/internal/mapping"
)

// MaskRule decides whether masks are removed for a data type.
type MaskRule string

const (
	// MaskUser follows the column's removeMask flag.
	MaskUser MaskRule = "user"
	// MaskKeep never removes masks.
	MaskKeep MaskRule = "keep"
	// MaskRemove always removes masks.
	MaskRemove MaskRule = "remove"
)

// ParseMaskRule parses a rule name case-insensitively; "" is MaskUser.
func ParseMaskRule(s string) (MaskRule, error) {
	switch MaskRule(strings.ToLower(strings.TrimSpace(s))) {
	case "", MaskUser:
		return MaskUser, nil
	case MaskKeep:
		return MaskKeep, nil
	case MaskRemove:
		return MaskRemove, nil
	default:
		return "", fmt.Errorf("unknown mask rule %q (want user, keep or remove)", s)
	}
}

// MaskPolicy maps data types to mask rules. Types without an entry follow the
// user's choice.
type MaskPolicy map[mapping.DataType]MaskRule

// DefaultMaskPolicy keeps masks on numeric columns: removing every non-digit
// would also remove the decimal separator.
func DefaultMaskPolicy() MaskPolicy {
	return MaskPolicy{mapping.DataTypeNumeric: MaskKeep}
}

// ParseMaskPolicy builds a policy from data type names to rule names, on top
// of DefaultMaskPolicy.
func ParseMaskPolicy(rules map[string]string) (MaskPolicy, error) {
	p := DefaultMaskPolicy()

	for name, ruleName := range rules {
		dt, err := mapping.ParseDataType(name)
		if err != nil {
			return nil, fmt.Errorf("mask policy: %w", err)
		}

		rule, err := ParseMaskRule(ruleName)
		if err != nil {
			return nil, fmt.Errorf("mask policy for %s: %w", name, err)
		}

		p[dt] = rule
	}

	return p, nil
}

// ShouldRemove resolves the effective mask removal flag for a column.
func (p MaskPolicy) ShouldRemove(dt mapping.DataType, user bool) bool {
	switch p[dt] {
	case MaskKeep:
		return false
	case MaskRemove:
		return true
	default:
		return user
	}
}

// RemoveMask strips formatting punctuation: every non-digit for CPF, CNPJ,
// Integer, Numeric and Date values, dots and dashes for RG values. Other types
// are returned unchanged.
func RemoveMask(value string, dt mapping.DataType) string {
	switch dt {
	case mapping.DataTypeCPF, mapping.DataTypeCNPJ, mapping.DataTypeInteger,
		mapping.DataTypeNumeric, mapping.DataTypeDate:
		return common.Digits(value)
	case mapping.DataTypeRG:
		return common.StripRunes(value, ".-")
	default:
		return value
	}
}
