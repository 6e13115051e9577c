// Package encoding provides the byte-level primitives that the rest of the
// marc21 packages build on: fixed-width ASCII decimal encoding and
// space-padded string framing, the numeric counterpart of what ISO 2709
// calls out as "digits" in the leader and directory.
package encoding

import (
	"fmt"
	"strings"
)

// PadString truncates or right-pads s with spaces to exactly padToLength
// bytes, the framing MARC21 uses for fixed-width leader and directory
// fields whose content is itself textual (e.g. a tag).
func PadString(s string, padToLength int) []byte {
	if len(s) > padToLength {
		s = s[:padToLength]
	}
	missingPadding := padToLength - len(s)
	s = s + strings.Repeat(" ", missingPadding)
	return []byte(s)
}

// EncodeDigits renders n as a left-zero-padded ASCII decimal string of
// exactly width bytes. It fails if n does not fit in width digits.
func EncodeDigits(n, width int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("value %d is negative", n)
	}
	s := fmt.Sprintf("%0*d", width, n)
	if len(s) != width {
		return nil, fmt.Errorf("value %d does not fit in %d digits", n, width)
	}
	return []byte(s), nil
}

// DecodeDigits parses an ASCII decimal integer from data. It fails unless
// every byte is an ASCII digit ('0'-'9').
func DecodeDigits(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty digit field")
	}
	result := 0
	for i, b := range data {
		if b < '0' || b > '9' {
			return 0, fmt.Errorf("byte %d (0x%02x) at position %d is not an ASCII digit", b, b, i)
		}
		result = result*10 + int(b-'0')
	}
	return result, nil
}

// EncodeDigits5 is EncodeDigits with width 5, the size of the leader's
// record-length and data-base-address fields and a directory entry's offset.
func EncodeDigits5(n int) ([]byte, error) {
	return EncodeDigits(n, 5)
}

// EncodeDigits4 is EncodeDigits with width 4, the size of a directory
// entry's field length.
func EncodeDigits4(n int) ([]byte, error) {
	return EncodeDigits(n, 4)
}
