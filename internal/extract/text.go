package extract

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// decodeText accepts UTF-8 (with or without BOM) and BOM-marked UTF-16.
// Anything else that is not valid UTF-8 is a decode error.
func decodeText(b []byte) (string, error) {
	utf16 := bytes.HasPrefix(b, bomUTF16BE) || bytes.HasPrefix(b, bomUTF16LE)
	if !utf16 && !utf8.Valid(b) {
		return "", fmt.Errorf("%w: input is not valid UTF-8 text", ErrDecode)
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return string(out), nil
}
