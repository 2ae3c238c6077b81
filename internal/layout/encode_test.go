package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layout-converter/internal/mapping"
)

func TestCharmapEncoder(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		enc      mapping.Encoding
		expected []byte
		replaced int
	}{
		{"utf8 passthrough", "João", mapping.EncodingUTF8, []byte("João"), 0},
		{"latin1", "João", mapping.EncodingISO88591, []byte{'J', 'o', 0xE3, 'o'}, 0},
		{"decomposed input", "Joa\u0303o", mapping.EncodingWindows1252, []byte{'J', 'o', 0xE3, 'o'}, 0},
		{"windows1252 euro", "€5", mapping.EncodingWindows1252, []byte{0x80, '5'}, 0},
		{"latin1 has no euro", "€5", mapping.EncodingISO88591, []byte{'?', '5'}, 1},
		{"accent folded", "Erdős", mapping.EncodingISO88591, []byte("Erdos"), 1},
		{"no fold available", "ł", mapping.EncodingISO88591, []byte("?"), 1},
		{"emoji", "ok\U0001F44D", mapping.EncodingWindows1252, []byte{'o', 'k', '?'}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, replaced, err := CharmapEncoder{}.Encode(tt.text, tt.enc)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.replaced, replaced)
		})
	}
}

func TestCharmapEncoder_Unsupported(t *testing.T) {
	_, _, err := CharmapEncoder{}.Encode("x", "EBCDIC")
	require.ErrorIs(t, err, ErrUnsupportedEncoding)
}
