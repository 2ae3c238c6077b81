package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layout-converter/internal/mapping"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []mapping.Algorithm{
		mapping.AlgorithmPeriodMMYYYY, mapping.AlgorithmSituationCode, mapping.AlgorithmStartDate,
	}, r.Algorithms())

	for _, alg := range mapping.Algorithms {
		assert.True(t, r.Has(alg), alg)
		assert.NotEmpty(t, r.Get(alg).Description)
	}

	got, err := r.Evaluate(mapping.AlgorithmSituationCode, Input{Values: []string{"150.00"}})
	require.NoError(t, err)
	assert.Equal(t, "T", got)
}

func TestRegistry_Evaluate_Unknown(t *testing.T) {
	got, err := NewRegistry().Evaluate(mapping.AlgorithmStartDate, Input{})
	assert.Empty(t, got)
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestRegistry_Evaluate_RecoversPanics(t *testing.T) {
	r := NewRegistry()
	r.Add(&Definition{
		Algorithm: "Boom",
		Evaluate: func(in Input) (string, error) {
			return in.Values[5], nil
		},
	})

	got, err := r.Evaluate("Boom", Input{})
	assert.Empty(t, got)
	require.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "Boom")
}

func TestInput_Value(t *testing.T) {
	in := Input{Values: []string{"a"}}

	assert.Equal(t, "a", in.Value(0))
	assert.Empty(t, in.Value(1))
	assert.Empty(t, in.Value(-1))
}
