package match

import (
	"layout-converter/internal/catalog"
	"layout-converter/internal/mapping"
)

// DefaultSimilarityThreshold is the minimum normalized Levenshtein similarity
// for a header to match a custom field by name.
const DefaultSimilarityThreshold = 0.85

// FieldSource is the part of the field catalog the engine reads.
type FieldSource interface {
	Has(id string) bool
	Custom() []catalog.Field
}

// Guess is the proposal for one column.
type Guess struct {
	FieldID     string
	DataType    mapping.DataType
	FieldReason string
	TypeReason  string
}

// Engine proposes catalog fields and data types for input columns. It holds no
// mutable state: the same header and sample always yield the same guess.
type Engine struct {
	fields    FieldSource
	rules     []Rule
	threshold float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the keyword table.
func WithRules(rules []Rule) Option {
	return func(e *Engine) {
		e.rules = rankRules(rules)
	}
}

// WithSimilarityThreshold sets the custom field name similarity threshold.
func WithSimilarityThreshold(threshold float64) Option {
	return func(e *Engine) {
		e.threshold = threshold
	}
}

// NewEngine creates an engine over the given catalog.
func NewEngine(fields FieldSource, opts ...Option) *Engine {
	e := &Engine{
		fields:    fields,
		rules:     rankRules(DefaultRules),
		threshold: DefaultSimilarityThreshold,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

var _ mapping.Guesser = (*Engine)(nil)

// Guess proposes a field and a data type for a column.
func (e *Engine) Guess(header, sample string) Guess {
	fieldID, fieldReason := e.guessField(header)
	dt, typeReason := guessDataType(header, sample)

	return Guess{FieldID: fieldID, DataType: dt, FieldReason: fieldReason, TypeReason: typeReason}
}

// GuessField returns the catalog field id proposed for a header, or "".
func (e *Engine) GuessField(header string) string {
	id, _ := e.guessField(header)

	return id
}

// GuessDataType returns the data type proposed for a header and sample value.
func (e *Engine) GuessDataType(header, sample string) mapping.DataType {
	return GuessDataType(header, sample)
}

func (e *Engine) guessField(header string) (string, string) {
	tokens := HeaderTokens(header)
	if len(tokens) == 0 {
		return "", "empty header"
	}

	normalized := NormalizeHeader(header)

	for _, r := range e.rules {
		if !r.Matches(tokens, normalized) {
			continue
		}

		if e.fields == nil || !e.fields.Has(r.FieldID) {
			return "", "rule " + r.FieldID + " matched but the field is not in the catalog"
		}

		return r.FieldID, "rule " + r.FieldID
	}

	if e.fields == nil {
		return "", "no rule matched"
	}

	bestID, bestScore := "", 0.0

	for _, f := range e.fields.Custom() {
		score := max(NormalizedLevenshteinScore(header, f.Name), NormalizedLevenshteinScore(header, f.ID))
		if score >= e.threshold && score > bestScore {
			bestID, bestScore = f.ID, score
		}
	}

	if bestID != "" {
		return bestID, "similar to custom field " + bestID
	}

	return "", "no rule matched"
}
