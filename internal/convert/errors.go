package convert

import (
	"errors"
	"fmt"

	"layout-converter/internal/calc"
	"layout-converter/internal/coerce"
	"layout-converter/internal/diagnostic"
)

// ErrNoInput is returned when Convert is called without an input table.
var ErrNoInput = errors.New("no input table")

// ValidationError reports a config that failed validation. No row was
// processed.
type ValidationError struct {
	Diagnostics diagnostic.Diagnostics
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid output config: %v", e.Diagnostics.Error())
}

// Warning codes produced while converting rows.
const (
	CodeMissingColumn     = "missing_column"
	CodeUnparseableNumber = "unparseable_number"
	CodeUnparseableDate   = "unparseable_date"
	CodeCoercionFailed    = "coercion_failed"
	CodeInvalidParameter  = "invalid_parameter"
	CodeInvalidInput      = "invalid_input"
	CodeEvaluatorFailed   = "evaluator_failed"
	CodeUnencodable       = "unencodable_character"
	CodeWarningsTruncated = "warnings_truncated"
)

func coercionCode(err error) string {
	switch {
	case errors.Is(err, coerce.ErrUnparseableNumber):
		return CodeUnparseableNumber
	case errors.Is(err, coerce.ErrUnparseableDate):
		return CodeUnparseableDate
	default:
		return CodeCoercionFailed
	}
}

func calculationCode(err error) string {
	switch {
	case errors.Is(err, calc.ErrInvalidParameter):
		return CodeInvalidParameter
	case errors.Is(err, calc.ErrInvalidInput):
		return CodeInvalidInput
	default:
		return CodeEvaluatorFailed
	}
}
