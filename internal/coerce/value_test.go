package coerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layout-converter/internal/mapping"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		dt       mapping.DataType
		opts     Options
		expected string
		wantErr  error
	}{
		{"cpf keeps digits", "123.456.789-09", mapping.DataTypeCPF, Options{}, "12345678909", nil},
		{"cnpj keeps digits", "12.345.678/0001-95", mapping.DataTypeCNPJ, Options{RemoveMask: true}, "12345678000195", nil},
		{"integer", " 1.200 un ", mapping.DataTypeInteger, Options{}, "1200", nil},
		{"numeric", "R$ 1.234,5", mapping.DataTypeNumeric, Options{}, "1234.50", nil},
		{"numeric bad", "n/a", mapping.DataTypeNumeric, Options{}, "0.00", ErrUnparseableNumber},
		{"numeric mask removed", "1.234,56", mapping.DataTypeNumeric, Options{RemoveMask: true}, "123456.00", nil},
		{"date to ddmmyyyy", "15/03/2024", mapping.DataTypeDate, Options{DateFormat: mapping.DateDDMMYYYY}, "15032024", nil},
		{"date to yyyymmdd", "15/03/2024", mapping.DataTypeDate, Options{DateFormat: mapping.DateYYYYMMDD}, "20240315", nil},
		{"date masked", "15/03/2024", mapping.DataTypeDate, Options{RemoveMask: true, DateFormat: mapping.DateYYYYMMDD}, "20240315", nil},
		{"iso date masked", "2010-05-06", mapping.DataTypeDate, Options{RemoveMask: true, DateFormat: mapping.DateDDMMYYYY}, "06052010", nil},
		{"iso date masked delimited", "2012-03-10", mapping.DataTypeDate, Options{RemoveMask: true}, "10/03/2012", nil},
		{"compact year first", "20100506", mapping.DataTypeDate, Options{RemoveMask: true, DateFormat: mapping.DateDDMMYYYY}, "06052010", nil},
		{"date delimited", "2024-03-15", mapping.DataTypeDate, Options{}, "15/03/2024", nil},
		{"date empty", "  ", mapping.DataTypeDate, Options{DateFormat: mapping.DateDDMMYYYY}, "", nil},
		{"date bad", "ontem", mapping.DataTypeDate, Options{DateFormat: mapping.DateDDMMYYYY}, "", ErrUnparseableDate},
		{"rg mask", "12.345.678-X", mapping.DataTypeRG, Options{RemoveMask: true}, "12345678X", nil},
		{"rg kept", "12.345.678-X", mapping.DataTypeRG, Options{}, "12.345.678-X", nil},
		{"alphanumeric trimmed", "  Maria da Silva ", mapping.DataTypeAlphanumeric, Options{RemoveMask: true}, "Maria da Silva", nil},
		{"unset passthrough", " x ", mapping.DataTypeUnset, Options{}, "x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Value(tt.raw, tt.dt, tt.opts)
			assert.Equal(t, tt.expected, got)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRemoveMask(t *testing.T) {
	assert.Equal(t, "12345678909", RemoveMask("123.456.789-09", mapping.DataTypeCPF))
	assert.Equal(t, "15032024", RemoveMask("15/03/2024", mapping.DataTypeDate))
	assert.Equal(t, "12345678X", RemoveMask("12.345.678-X", mapping.DataTypeRG))
	assert.Equal(t, "a.b-c", RemoveMask("a.b-c", mapping.DataTypeAlphanumeric))
}

func TestMaskPolicy(t *testing.T) {
	p := DefaultMaskPolicy()

	assert.False(t, p.ShouldRemove(mapping.DataTypeNumeric, true))
	assert.True(t, p.ShouldRemove(mapping.DataTypeCPF, true))
	assert.False(t, p.ShouldRemove(mapping.DataTypeCPF, false))

	custom, err := ParseMaskPolicy(map[string]string{"cpf": "remove", "Numeric": "user"})
	require.NoError(t, err)
	assert.True(t, custom.ShouldRemove(mapping.DataTypeCPF, false))
	assert.True(t, custom.ShouldRemove(mapping.DataTypeNumeric, true))

	_, err = ParseMaskPolicy(map[string]string{"money": "keep"})
	require.Error(t, err)

	_, err = ParseMaskPolicy(map[string]string{"cpf": "sometimes"})
	require.Error(t, err)
}
