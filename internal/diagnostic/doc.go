// Package diagnostic provides structured errors, warnings and infos produced
// while validating an output layout and converting a table.
//
// Key capabilities:
//   - Blocking configuration errors (missing lengths, pad characters, delimiter...)
//   - Non-blocking per-cell value coercion warnings
//   - Non-blocking per-row calculation warnings
//   - A combined error view for callers that only need pass/fail
package diagnostic
