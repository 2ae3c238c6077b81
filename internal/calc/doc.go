// Package calc implements the calculated-field algorithms and the registry
// that dispatches on the algorithm name.
//
// Evaluators are pure functions of their Input. They never panic and always
// return a usable value; a non-nil error describes a degraded result.
//
// Key functions:
//   - DefaultRegistry: registry with StartDate, SituationCode and PeriodMMYYYY
//   - Registry.Evaluate: looks up and runs an evaluator
//   - SubtractMonths: calendar month arithmetic clamped to the month's last day
package calc
