package layout

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"layout-converter/internal/common"
	"layout-converter/internal/mapping"
)

// ErrUnsupportedEncoding is returned for encodings the encoder cannot produce.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// Replacement is written for characters the target charset cannot represent.
const Replacement = '?'

// Encoder converts finished output text into bytes.
type Encoder interface {
	// Encode returns the encoded text and how many characters were replaced.
	Encode(text string, enc mapping.Encoding) ([]byte, int, error)
}

// CharmapEncoder encodes with the single-byte charmaps of golang.org/x/text.
// Characters outside the charset lose their accents when that makes them
// representable and become Replacement otherwise.
type CharmapEncoder struct{}

var _ Encoder = CharmapEncoder{}

// Encode implements Encoder.
func (CharmapEncoder) Encode(text string, enc mapping.Encoding) ([]byte, int, error) {
	var cm *charmap.Charmap

	switch enc {
	case mapping.EncodingUTF8:
		return []byte(text), 0, nil
	case mapping.EncodingISO88591:
		cm = charmap.ISO8859_1
	case mapping.EncodingWindows1252:
		cm = charmap.Windows1252
	default:
		return nil, 0, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, enc)
	}

	text = norm.NFC.String(text)
	out := make([]byte, 0, len(text))
	replaced := 0

	for _, r := range text {
		if b, ok := cm.EncodeRune(r); ok {
			out = append(out, b)
			continue
		}

		if folded, size := utf8.DecodeRuneInString(common.FoldAccents(string(r))); size > 0 {
			if b, ok := cm.EncodeRune(folded); ok {
				out = append(out, b)
				replaced++

				continue
			}
		}

		out = append(out, Replacement)
		replaced++
	}

	return out, replaced, nil
}
