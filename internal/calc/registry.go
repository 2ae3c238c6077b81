package calc

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"layout-converter/internal/mapping"
)

var (
	// ErrUnknownAlgorithm is returned for algorithms missing from the registry.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrInvalidParameter is returned when a parameter is missing or malformed.
	ErrInvalidParameter = errors.New("invalid calculation parameter")
	// ErrInvalidInput is returned when a required input value is missing or malformed.
	ErrInvalidInput = errors.New("invalid calculation input")
	// ErrPanic is returned when an evaluator panicked.
	ErrPanic = errors.New("evaluator panicked")
)

// Input is everything an evaluator may read.
type Input struct {
	// Values holds the raw row values of the required fields, in the order of
	// CalculatedSource.RequiredFieldIDs. Unmapped fields are "".
	Values []string
	// Parameters are the descriptor's static parameters.
	Parameters map[string]string
	// DateFormat is the descriptor's output date format; empty renders dd/mm/yyyy.
	DateFormat mapping.DateFormat
	// Today is the conversion date.
	Today time.Time
}

// Value returns the i-th input value, or "" when absent.
func (in Input) Value(i int) string {
	if i < 0 || i >= len(in.Values) {
		return ""
	}

	return in.Values[i]
}

// Evaluator computes a calculated value.
type Evaluator func(in Input) (string, error)

// Definition describes one algorithm.
type Definition struct {
	Algorithm   mapping.Algorithm
	Description string
	Evaluate    Evaluator
}

// Registry holds the algorithm strategy table.
type Registry struct {
	defs map[mapping.Algorithm]*Definition
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[mapping.Algorithm]*Definition)}
}

// DefaultRegistry returns a registry with every built-in algorithm.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Add(&Definition{
		Algorithm:   mapping.AlgorithmStartDate,
		Description: "reference period minus the installments paid, in months",
		Evaluate:    StartDate,
	})
	r.Add(&Definition{
		Algorithm:   mapping.AlgorithmSituationCode,
		Description: `"T" when the realized value is positive, "R" otherwise`,
		Evaluate:    SituationCode,
	})
	r.Add(&Definition{
		Algorithm:   mapping.AlgorithmPeriodMMYYYY,
		Description: "period column (or today) as MMyyyy",
		Evaluate:    PeriodMMYYYY,
	})

	return r
}

// Add adds or replaces a definition.
func (r *Registry) Add(def *Definition) {
	r.defs[def.Algorithm] = def
}

// Get returns a definition by algorithm, or nil if not found.
func (r *Registry) Get(alg mapping.Algorithm) *Definition {
	return r.defs[alg]
}

// Has returns true if the algorithm is registered.
func (r *Registry) Has(alg mapping.Algorithm) bool {
	_, ok := r.defs[alg]
	return ok
}

// Algorithms returns the registered algorithms, sorted.
func (r *Registry) Algorithms() []mapping.Algorithm {
	out := make([]mapping.Algorithm, 0, len(r.defs))
	for alg := range r.defs {
		out = append(out, alg)
	}

	slices.Sort(out)

	return out
}

// Evaluate runs the algorithm. Unknown algorithms and panics resolve to "".
func (r *Registry) Evaluate(alg mapping.Algorithm, in Input) (out string, err error) {
	def := r.Get(alg)
	if def == nil || def.Evaluate == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}

	defer func() {
		if p := recover(); p != nil {
			out = ""
			err = fmt.Errorf("%w: %s: %v", ErrPanic, alg, p)
		}
	}()

	return def.Evaluate(in)
}
