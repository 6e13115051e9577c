// Package marc8 implements the MARC-8 <-> UTF-8 transcoder: a state
// machine over ISO 2022 style escape sequences that designate and
// invoke G0/G1 character sets, built as small, pure, allocation-light
// transforms over byte slices, using golang.org/x/text/unicode/norm for
// Unicode composition.
package marc8

import "github.com/dchud/marc21/pkg/consts"

// DecodeField transcodes a single field or subfield value according to
// the record's declared character coding (leader position 9).
func DecodeField(data []byte, characterCoding byte) (string, []error) {
	if characterCoding == consts.MarcEncodingUtf8 {
		s, err := DecodeUtf8OrError(data)
		if err != nil {
			return "", []error{err}
		}
		return s, nil
	}
	return Decode(data)
}

// EncodeField transcodes a Unicode string back to the record's declared
// character coding. In strict mode ("lenient" false) an unmappable rune
// fails the whole call with *marcerr.EncodingError.
func EncodeField(s string, characterCoding byte, lenient bool) ([]byte, error) {
	if characterCoding == consts.MarcEncodingUtf8 {
		return EncodeUtf8(s)
	}
	return Encode(s, lenient)
}
