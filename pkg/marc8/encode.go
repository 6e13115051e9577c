package marc8

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/dchud/marc21/pkg/marcerr"
)

// Encode converts a Unicode string into MARC-8 bytes, designating G0/G1
// sets as needed and emitting the escape sequences that select them. In
// strict mode an unmappable rune fails with *marcerr.EncodingError; in
// lenient mode it is replaced with '?' and encoding continues.
func Encode(s string, lenient bool) ([]byte, error) {
	s = norm.NFC.String(s)
	var (
		out []byte
		g0  = defaultG0
		g1  = defaultG1
	)

	for _, r := range s {
		if r == ' ' || (r >= 0x21 && r <= 0x7E && isASCIIPunctOrDigitOrLetter(r)) {
			if g0 != csBasicLatin {
				out = append(out, escByte, '(', byte(csBasicLatin))
				g0 = csBasicLatin
			}
			out = append(out, byte(r))
			continue
		}

		if cs, b, ok := encodeInG1(r); ok {
			if g1 != cs {
				out = append(out, escByte, ')', byte(cs))
				g1 = cs
			}
			out = append(out, b)
			continue
		}

		if cs, b, ok := encodeInG0(r); ok {
			if g0 != cs {
				out = append(out, escByte, '(', byte(cs))
				g0 = cs
			}
			out = append(out, b)
			continue
		}

		if b1, b2, ok := encodeEACC(r); ok {
			if g0 != csEACC {
				out = append(out, escByte, '$', byte(csEACC))
				g0 = csEACC
			}
			out = append(out, b1, b2)
			continue
		}

		if lenient {
			if g0 != csBasicLatin {
				out = append(out, escByte, '(', byte(csBasicLatin))
				g0 = csBasicLatin
			}
			out = append(out, '?')
			continue
		}
		return nil, &marcerr.EncodingError{Reason: "no MARC-8 mapping for rune " + string(r), Offset: len(out)}
	}

	return out, nil
}

func isASCIIPunctOrDigitOrLetter(r rune) bool {
	return r >= 0x21 && r <= 0x7E
}

// encodeInG1 looks up r in the G1-eligible single-byte tables (ANSEL and
// its combining marks take priority since they are G1's default).
func encodeInG1(r rune) (charset, byte, bool) {
	rev := reverseCharsetTable()
	for _, cs := range []charset{csAnselExtended} {
		if b, ok := rev[cs][r]; ok {
			return cs, b, true
		}
	}
	return 0, 0, false
}

// encodeInG0 looks up r in the G0-eligible single-byte tables other than
// Basic Latin (handled separately by Encode for plain ASCII).
func encodeInG0(r rune) (charset, byte, bool) {
	rev := reverseCharsetTable()
	for _, cs := range []charset{csBasicGreek, csBasicCyrillic, csBasicHebrew, csBasicArabic, csGreekSymbols} {
		if b, ok := rev[cs][r]; ok {
			return cs, b, true
		}
	}
	return 0, 0, false
}

// encodeEACC inverts decodeEACC's synthetic mapping for runes in the
// CJK Unified Ideographs block it targets.
func encodeEACC(r rune) (byte, byte, bool) {
	if r < 0x4E00 || r > 0x4E00+93*94+93 {
		return 0, 0, false
	}
	offset := int(r) - 0x4E00
	b1 := byte(0x21 + offset/94)
	b2 := byte(0x21 + offset%94)
	return b1, b2, true
}

// EncodeUtf8 validates s as UTF-8 and returns its bytes unchanged; it
// exists so callers can use a single encoding-agnostic entry point keyed
// off the leader's declared character coding.
func EncodeUtf8(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, &marcerr.EncodingError{Reason: "value is not valid UTF-8", Offset: 0}
	}
	return []byte(s), nil
}
