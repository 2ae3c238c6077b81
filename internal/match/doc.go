// Package match provides header normalization, Levenshtein distance
// calculation and the mapping inference engine that proposes a catalog field
// and a data type for every input column.
//
// Key functions:
//   - NormalizeHeader: normalizes headers for keyword matching
//   - Levenshtein: computes edit distance between strings
//   - Engine.GuessField: ranks keyword rules by specificity, first match wins
//   - GuessDataType: header keyword chain, then sample value patterns
package match
