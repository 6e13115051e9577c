package record

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dchud/marc21/pkg/field"
	"github.com/dchud/marc21/pkg/leader"
)

func buildSample(t *testing.T) *Record {
	t.Helper()
	l := leader.New(logr.Discard())
	title, _ := field.NewSubfield('a', "The Go Programming Language /")
	author, _ := field.NewSubfield('a', "Donovan, Alan, ")
	subject, _ := field.NewSubfield('a', "Go (Computer program language)")
	isbn, _ := field.NewSubfield('a', "9780134190440")

	b := NewBuilder(l)
	b.AddControlField("001", "ocn123456789")
	b.AddDataField("020", ' ', ' ', []field.Subfield{isbn})
	b.AddDataField("100", '1', ' ', []field.Subfield{author})
	b.AddDataField("245", '0', '0', []field.Subfield{title})
	b.AddDataField("650", ' ', '0', []field.Subfield{subject})
	rec, err := b.Build()
	require.NoError(t, err)
	return rec
}

func TestRecordAccessors(t *testing.T) {
	rec := buildSample(t)
	assert.Equal(t, "The Go Programming Language", rec.Title())
	assert.Equal(t, "Donovan, Alan", rec.Author())

	isbns := rec.Isbns()
	require.Len(t, isbns, 1)
	assert.Equal(t, "9780134190440", isbns[0])

	subjects := rec.Subjects()
	require.Len(t, subjects, 1)
	assert.Equal(t, "Go (Computer program language)", subjects[0])
}

func TestRecordFirstAndAllWithTag(t *testing.T) {
	rec := buildSample(t)
	_, ok := rec.FirstWithTag("245")
	assert.True(t, ok, "expected a 245 field")

	fields := rec.AllWithTag("650")
	assert.Len(t, fields, 1)
}

func TestRecordInTagRange(t *testing.T) {
	rec := buildSample(t)
	assert.Len(t, rec.InTagRange("600", "699"), 1)
	assert.Len(t, rec.InTagRange("700", "799"), 0)
}

func TestBuilderRejectsInvalidField(t *testing.T) {
	l := leader.New(logr.Discard())
	b := NewBuilder(l)
	b.AddDataField("245", '0', '0', nil)
	_, err := b.Build()
	assert.Error(t, err, "expected error for a data field with no subfields")
}

func TestEqual(t *testing.T) {
	a := buildSample(t)
	b := buildSample(t)
	assert.True(t, Equal(a, b), "expected two identically built records to be Equal")

	b.ControlFields[0].Value = "different"
	assert.False(t, Equal(a, b), "expected differing control field values to break equality")
}
