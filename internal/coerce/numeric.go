package coerce

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrUnparseableNumber is returned when a value is not a decimal number.
	ErrUnparseableNumber = errors.New("unparseable number")
	// ErrUnparseableDate is returned when a value matches no known date layout.
	ErrUnparseableDate = errors.New("unparseable date")
)

// ZeroDecimal is the fallback for numeric values that cannot be parsed.
const ZeroDecimal = "0.00"

var (
	currencyNoise  = strings.NewReplacer("R$", "", "$", "", "€", "", " ", "", "\u00a0", "", "\t", "")
	decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)
)

// ParseDecimal parses a number written with any mix of thousands and decimal
// separators. Commas are read as dots and only the last dot is kept as the
// decimal point.
//
// Examples:
//   - "R$ 1.234,56" -> 1234.56
//   - "1,234.56" -> 1234.56
//   - "-150" -> -150
func ParseDecimal(raw string) (float64, error) {
	s := currencyNoise.Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrUnparseableNumber)
	}

	s = strings.ReplaceAll(s, ",", ".")
	if last := strings.LastIndexByte(s, '.'); last >= 0 {
		s = strings.ReplaceAll(s[:last], ".", "") + s[last:]
	}

	if !decimalPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableNumber, raw)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableNumber, raw)
	}

	return v, nil
}

// Numeric coerces raw into a decimal with exactly two places. Empty input is
// "0.00" without error; unparseable input is "0.00" with an error.
func Numeric(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return ZeroDecimal, nil
	}

	v, err := ParseDecimal(raw)
	if err != nil {
		return ZeroDecimal, err
	}

	return FormatDecimal(v), nil
}

// FormatDecimal formats v with two decimal places, never as "-0.00".
func FormatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return ZeroDecimal
	}

	return s
}
