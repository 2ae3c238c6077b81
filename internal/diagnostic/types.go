package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"layout-converter/internal/common"
)

// Diagnostics holds all diagnostic information from validation and conversion.
type Diagnostics struct {
	Errors   []Diagnostic `json:"errors,omitempty"`
	Warnings []Diagnostic `json:"warnings,omitempty"`
	Infos    []Diagnostic `json:"infos,omitempty"`
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity `json:"severity"`
	// Class groups diagnostics by the stage that produced them.
	Class Class `json:"class"`
	// Code is a unique identifier for this type of diagnostic.
	Code string `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Field identifies the output field (id or label) this relates to (if any).
	Field string `json:"field,omitempty"`
	// Row is the 1-based input row number, 0 when not row specific.
	Row int `json:"row,omitempty"`
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Class identifies the failure taxonomy a diagnostic belongs to.
type Class string

const (
	// ClassConfigValidation is a blocking, pre-conversion problem with the layout.
	ClassConfigValidation Class = "config_validation"
	// ClassValueCoercion is a per-cell problem degraded to a safe default.
	ClassValueCoercion Class = "value_coercion"
	// ClassCalculation is a per-row calculated field problem degraded to a safe default.
	ClassCalculation Class = "calculation"
	// ClassRun carries run level notes.
	ClassRun Class = "run"
)

// AddError adds a blocking configuration error.
func (d *Diagnostics) AddError(code, message, field string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Class:    ClassConfigValidation,
		Code:     code,
		Message:  message,
		Field:    field,
	})
}

// AddWarning adds a non-blocking warning.
func (d *Diagnostics) AddWarning(class Class, code, message, field string, row int) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Class:    class,
		Code:     code,
		Message:  message,
		Field:    field,
		Row:      row,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Class:    ClassRun,
		Code:     code,
		Message:  message,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Codes returns the codes of all error diagnostics, in order.
func (d *Diagnostics) Codes() []string {
	codes := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		codes = append(codes, e.Code)
	}

	return codes
}

// WarningCount returns the number of warnings per code.
func (d *Diagnostics) WarningCount() map[string]int {
	counts := make(map[string]int)
	for _, w := range d.Warnings {
		counts[w.Code]++
	}

	return counts
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Row > 0 {
		prefix = append(prefix, fmt.Sprintf("row %d", d.Row))
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
