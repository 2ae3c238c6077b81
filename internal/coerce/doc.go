// Package coerce turns raw cell text into the canonical string form of a data
// type.
//
// Coercion never fails hard: every function returns a usable value together
// with an error describing what was degraded. Callers keep the value and
// report the error as a warning.
//
// Key functions:
//   - RemoveMask: strips formatting punctuation per data type
//   - Numeric: normalizes a decimal to exactly two places
//   - ParseDate / FormatDate: multi-format date parsing and compact output
//   - Value: applies mask removal and type coercion in one step
package coerce
