package mapping

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJob = `
version: "1"
columns:
  - header: CPF do cliente
    fieldId: cpf
    dataType: CPF
    removeMask: true
  - header: Observacao
    fieldId: ""
output:
  name: Remessa banco
  format: fixedWidth
  encoding: ISO88591
  fields:
    - id: f1
      order: 0
      kind: mapped
      fieldId: cpf
      length: 11
      padChar: "0"
      padDirection: left
    - id: f2
      order: 1
      kind: static
      label: Filler
      value: ""
      length: 3
      padChar: " "
      padDirection: right
    - id: f3
      order: 2
      kind: calculated
      label: Inicio
      algorithm: StartDate
      requiredFieldIds: parcelas_pagas
      parameters:
        referencePeriod: 31/12/2024
      length: 8
      padChar: " "
      padDirection: right
      dateFormat: YYYYMMDD
`

func TestParse(t *testing.T) {
	jf, err := Parse([]byte(sampleJob))
	require.NoError(t, err)
	require.NotNil(t, jf)

	assert.Equal(t, "1", jf.Version)
	require.Len(t, jf.Columns, 2)

	cpf := jf.Columns[0]
	assert.Equal(t, "CPF do cliente", cpf.Header)
	require.NotNil(t, cpf.FieldID)
	assert.Equal(t, "cpf", *cpf.FieldID)
	require.NotNil(t, cpf.DataType)
	assert.Equal(t, DataTypeCPF, *cpf.DataType)
	require.NotNil(t, cpf.RemoveMask)
	assert.True(t, *cpf.RemoveMask)
	assert.Nil(t, cpf.AlphaLength)

	obs := jf.Columns[1]
	require.NotNil(t, obs.FieldID)
	assert.Empty(t, *obs.FieldID)
	assert.Nil(t, obs.DataType)

	out := jf.Output
	assert.Equal(t, "Remessa banco", out.Name)
	assert.Equal(t, FormatFixedWidth, out.Format)
	assert.Equal(t, EncodingISO88591, out.Encoding)
	require.Len(t, out.Fields, 3)

	assert.Equal(t, MappedSource{FieldID: "cpf"}, out.Fields[0].Source)
	assert.Equal(t, &Layout{Length: 11, PadChar: "0", PadDirection: PadLeft}, out.Fields[0].Layout)

	assert.Equal(t, StaticSource{Label: "Filler", Value: ""}, out.Fields[1].Source)

	calc, ok := out.Fields[2].Source.(CalculatedSource)
	require.True(t, ok)
	assert.Equal(t, AlgorithmStartDate, calc.Algorithm)
	assert.Equal(t, []string{"parcelas_pagas"}, calc.RequiredFieldIDs)
	assert.Equal(t, "31/12/2024", calc.Parameters[ParamReferencePeriod])
	assert.Equal(t, DateYYYYMMDD, out.Fields[2].DateFormat)
}

func TestParse_Defaults(t *testing.T) {
	jf, err := Parse([]byte("output:\n  fields: []\n"))
	require.NoError(t, err)

	assert.Equal(t, "1", jf.Version)
	assert.Equal(t, FormatFixedWidth, jf.Output.Format)
	assert.Equal(t, EncodingUTF8, jf.Output.Encoding)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "output: [", "failed to parse job file"},
		{"unknown kind", "output:\n  fields:\n    - id: a\n      kind: formula\n", "unknown kind"},
		{"missing kind", "output:\n  fields:\n    - id: a\n", "no kind"},
		{"bad data type", "columns:\n  - header: a\n    dataType: Money\n", "unknown data type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteFileLoadFile(t *testing.T) {
	jf, err := Parse([]byte(sampleJob))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, WriteFile(jf, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)

	if diff := cmp.Diff(jf, loaded); diff != "" {
		t.Errorf("job file changed on disk (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read job file")
}

func TestOutputConfig_JSON(t *testing.T) {
	jf, err := Parse([]byte(sampleJob))
	require.NoError(t, err)

	data, err := json.Marshal(jf.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"static","label":"Filler","value":""`)
	assert.Contains(t, string(data), `"requiredFieldIds":["parcelas_pagas"]`)

	var back OutputConfig
	require.NoError(t, json.Unmarshal(data, &back))

	if diff := cmp.Diff(jf.Output, back); diff != "" {
		t.Errorf("json changed the config (-want +got):\n%s", diff)
	}
}

func TestApplyColumns(t *testing.T) {
	jf, err := Parse([]byte(sampleJob))
	require.NoError(t, err)

	tbl := NewTable([]string{"CPF do cliente", "Observacao"}, nil, stubGuesser{
		fields: map[string]string{"Observacao": "nome"},
	})

	require.NoError(t, ApplyColumns(tbl, jf.Columns))

	assert.Equal(t, []string{"cpf"}, tbl.ActiveFieldIDs())

	c, _ := tbl.Lookup("CPF do cliente")
	assert.Equal(t, DataTypeCPF, c.DataType)
	assert.True(t, c.RemoveMask)

	err = ApplyColumns(tbl, []ColumnSpec{{Header: "Idade"}})
	require.ErrorIs(t, err, ErrUnknownHeader)
}

func TestColumnSpecs_RoundTrip(t *testing.T) {
	tbl := contractTable(t)
	length := 40
	require.NoError(t, tbl.SetAlphaLength("Nome", &length))
	require.NoError(t, tbl.SetRemoveMask("CPF", true))

	fresh := NewTable(tbl.Headers(), nil, nil)
	require.NoError(t, ApplyColumns(fresh, ColumnSpecs(tbl)))

	if diff := cmp.Diff(tbl.Columns(), fresh.Columns()); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}
