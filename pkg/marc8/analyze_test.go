package marc8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeConsistentUtf8(t *testing.T) {
	// "à" (C3 A0) and "ï" (C3 AF) contain bytes with no ANSEL mapping, so
	// the 245 value is valid UTF-8 but not cleanly MARC-8; "ü" (C3 BC)
	// decodes under both and casts no vote.
	values := []FieldValue{
		{Tag: "245", Offset: 0, Value: []byte("voilà naïve")},
		{Tag: "100", Offset: 20, Value: []byte("Müller, Hans")},
	}
	r := Analyze(values)
	assert.Equal(t, ClassConsistentUtf8, r.Classification)
}

func TestAnalyzeAmbiguousAsciiIsUndetermined(t *testing.T) {
	values := []FieldValue{
		{Tag: "001", Offset: 0, Value: []byte("123456")},
	}
	r := Analyze(values)
	assert.Equal(t, ClassUndetermined, r.Classification)
}

func TestAnalyzeMixedReportsCounterexample(t *testing.T) {
	values := []FieldValue{
		{Tag: "245", Offset: 0, Value: []byte("héllo wörld")},
		{Tag: "500", Offset: 40, Value: []byte{0xFF, 0xFE}},
	}
	r := Analyze(values)
	assert.Equal(t, ClassMixed, r.Classification)

	require.Len(t, r.Counterexamples, 1)
	assert.Equal(t, "500", r.Counterexamples[0].FieldTag)
}

func TestAnalyzeClassificationString(t *testing.T) {
	assert.Equal(t, "Consistent(Marc8)", ClassConsistentMarc8.String())
	assert.Equal(t, "Mixed", ClassMixed.String())
}
