package calc

import (
	"fmt"
	"strings"
	"time"

	"layout-converter/internal/coerce"
	"layout-converter/internal/mapping"
)

// Situation codes.
const (
	SituationActive   = "T"
	SituationRejected = "R"
)

const maxInstallments = 12 * 1000

// periodLayouts are the month-only layouts accepted for the period column,
// tried after the full date layouts.
var periodLayouts = []string{"1/2006", "1-2006", "012006", "2006-01", "2006/01", "200601"}

// StartDate subtracts the installments paid (first input) from the
// referencePeriod parameter, in calendar months. A missing, non-numeric or
// negative count is treated as 0.
func StartDate(in Input) (string, error) {
	ref, err := time.Parse(mapping.ReferencePeriodLayout, strings.TrimSpace(in.Parameters[mapping.ParamReferencePeriod]))
	if err != nil {
		return "", fmt.Errorf("%w: %s=%q", ErrInvalidParameter, mapping.ParamReferencePeriod,
			in.Parameters[mapping.ParamReferencePeriod])
	}

	months, warn := installments(in.Value(0))

	return coerce.FormatDate(SubtractMonths(ref, months), in.DateFormat), warn
}

func installments(raw string) (int, error) {
	v, err := coerce.ParseDecimal(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: installments paid %q is not a number", ErrInvalidInput, raw)
	}

	if v < 0 {
		return 0, fmt.Errorf("%w: installments paid %q is negative", ErrInvalidInput, raw)
	}

	if v > maxInstallments {
		return 0, fmt.Errorf("%w: installments paid %q is out of range", ErrInvalidInput, raw)
	}

	return int(v), nil
}

// SubtractMonths moves t back by n calendar months. The day is clamped to the
// last day of the target month, so 31 Dec minus 6 months is 30 Jun.
func SubtractMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()-time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()

	return time.Date(first.Year(), first.Month(), min(t.Day(), lastDay), 0, 0, 0, 0, t.Location())
}

// SituationCode returns "T" when the realized value (first input) is strictly
// positive and "R" otherwise.
func SituationCode(in Input) (string, error) {
	raw := in.Value(0)

	v, err := coerce.ParseDecimal(raw)
	if err != nil {
		return SituationRejected, fmt.Errorf("%w: realized value %q is not a number", ErrInvalidInput, raw)
	}

	if v > 0 {
		return SituationActive, nil
	}

	return SituationRejected, nil
}

// PeriodMMYYYY renders the period (first input) as MMyyyy, falling back to
// Today when the input is empty or unparseable.
func PeriodMMYYYY(in Input) (string, error) {
	const layout = "012006"

	raw := strings.TrimSpace(in.Value(0))
	if raw == "" {
		return in.Today.Format(layout), nil
	}

	if t, ok := parsePeriod(raw); ok {
		return t.Format(layout), nil
	}

	return in.Today.Format(layout), fmt.Errorf("%w: period %q is not a date, using today", ErrInvalidInput, raw)
}

func parsePeriod(raw string) (time.Time, bool) {
	if t, err := coerce.ParseDate(raw, mapping.DateDDMMYYYY); err == nil {
		return t, true
	}

	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
