package coerce

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numericShape = regexp.MustCompile(`^-?\d+\.\d{2}$`)

func TestNumeric(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"150", "150.00", false},
		{"150.5", "150.50", false},
		{"1.234,56", "1234.56", false},
		{"1,234.56", "1234.56", false},
		{"R$ 1.234.567,89", "1234567.89", false},
		{"R$ -12,3", "-12.30", false},
		{"€ 9", "9.00", false},
		{"-0", "0.00", false},
		{"0,001", "0.00", false},
		{",5", "0.50", false},
		{"", "0.00", false},
		{"   ", "0.00", false},
		{"abc", "0.00", true},
		{"12a", "0.00", true},
		{"--1", "0.00", true},
		{"R$", "0.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Numeric(tt.input)
			assert.Equal(t, tt.expected, got)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnparseableNumber)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseDecimal(t *testing.T) {
	v, err := ParseDecimal("R$ 1.234,56")
	require.NoError(t, err)
	assert.InDelta(t, 1234.56, v, 1e-9)

	v, err = ParseDecimal("-150")
	require.NoError(t, err)
	assert.InDelta(t, -150.0, v, 1e-9)

	_, err = ParseDecimal("")
	require.ErrorIs(t, err, ErrUnparseableNumber)

	_, err = ParseDecimal("1e309")
	require.ErrorIs(t, err, ErrUnparseableNumber)
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "0.00", FormatDecimal(-0.001))
	assert.Equal(t, "-0.01", FormatDecimal(-0.01))
	assert.Equal(t, "1234.57", FormatDecimal(1234.567))
}

func TestProperty_NumericShape(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("numeric coercion always has two decimals", prop.ForAll(
		func(raw string) bool {
			got, _ := Numeric(raw)
			return numericShape.MatchString(got)
		},
		gen.AnyString(),
	))

	properties.Property("formatted numbers survive a second coercion", prop.ForAll(
		func(cents int64, comma bool) bool {
			raw := fmt.Sprintf("%d.%02d", cents/100, abs(cents%100))
			if cents < 0 && cents > -100 {
				raw = "-" + raw
			}

			if comma {
				raw = fmt.Sprintf("R$ %d,%02d", cents/100, abs(cents%100))
				if cents < 0 && cents > -100 {
					raw = "R$ -" + raw[3:]
				}
			}

			first, err := Numeric(raw)
			if err != nil {
				return false
			}

			second, err := Numeric(first)

			return err == nil && first == second && numericShape.MatchString(first)
		},
		gen.Int64Range(-1_000_000_00, 1_000_000_00),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}
