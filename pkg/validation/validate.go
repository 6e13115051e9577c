// Package validation holds the structural checks ISO 2709 requires of a
// tag, indicator or subfield code, independent of any particular field's
// content.
package validation

import (
	"regexp"

	"github.com/dchud/marc21/pkg/consts"
)

// tagPattern matches a 3-digit field tag.
var tagPattern = regexp.MustCompile(`^[0-9]{3}$`)

// ValidTag reports whether tag is exactly three ASCII digits.
func ValidTag(tag string) bool {
	return tagPattern.MatchString(tag)
}

// IsControlFieldTag reports whether tag (already known to be a valid tag)
// names a control field, i.e. its numeric value is below
// consts.ControlFieldTagLimit.
func IsControlFieldTag(tag string) bool {
	return tag[0] == '0' && tag[1] == '0'
}

// ValidIndicator reports whether b is a legal indicator byte: any
// printable ASCII character in [0x20, 0x7E].
func ValidIndicator(b byte) bool {
	return b >= 0x20 && b <= 0x7E
}

// ValidSubfieldCode reports whether b is a legal subfield code: a single
// visible ASCII byte that is not one of the three structural terminators.
func ValidSubfieldCode(b byte) bool {
	if b == consts.SubfieldDelimiter || b == consts.FieldTerminator || b == consts.RecordTerminator {
		return false
	}
	return b > 0x20 && b < 0x7F
}

// ContainsTerminator reports whether s contains a codepoint that collides
// with one of the three ISO 2709 structural terminators, which is
// forbidden in field and subfield values.
func ContainsTerminator(s string) bool {
	for _, r := range s {
		switch r {
		case consts.SubfieldDelimiter, consts.FieldTerminator, consts.RecordTerminator:
			return true
		}
	}
	return false
}

// ValidLeaderByte reports whether the byte at the given leader offset is
// one of the legal values from consts.LeaderPositionValues. Offsets not
// covered by that table are unconstrained and always valid.
func ValidLeaderByte(offset int, b byte) bool {
	for _, entry := range consts.LeaderPositionValues {
		if entry.Offset != offset {
			continue
		}
		for i := 0; i < len(entry.Values); i++ {
			if entry.Values[i] == b {
				return true
			}
		}
		return false
	}
	return true
}
