package marc21

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dchud/marc21/pkg/field"
)

func buildSampleRecord(t *testing.T) *Record {
	t.Helper()
	l := NewLeader()
	require.NoError(t, l.SetCharacterCoding('a'))
	require.NoError(t, l.SetStatus('n'))
	require.NoError(t, l.SetType('a'))
	require.NoError(t, l.SetBibLevel('m'))
	require.NoError(t, l.SetControlType(' '))
	require.NoError(t, l.SetEncodingLevel(' '))
	require.NoError(t, l.SetCatalogingForm('a'))
	require.NoError(t, l.SetMultipartLevel(' '))

	sf, err := field.NewSubfield('a', "Idiomatic Go")
	require.NoError(t, err)

	b := NewBuilder(l)
	b.AddControlField("001", "ocn999")
	b.AddDataField("245", '0', '0', []Subfield{sf})
	rec, err := b.Build()
	require.NoError(t, err)
	return rec
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	rec := buildSampleRecord(t)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write(rec))

	r := NewReader(&buf)
	got, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "Idiomatic Go", got.Title())
}

func TestPipelineRoundTrip(t *testing.T) {
	rec := buildSampleRecord(t)
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for i := 0; i < 3; i++ {
		require.NoError(t, w.Write(rec))
	}

	p := NewPipeline(context.Background(), &buf)
	count := 0
	for item := range p.Results() {
		require.NoError(t, item.Err)
		count++
	}
	assert.Equal(t, 3, count)
}

func TestNewConsoleLoggerWritesReadableLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, 1, false)
	logger.Info("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestQueryComposition(t *testing.T) {
	rec := buildSampleRecord(t)
	f, ok := rec.FirstWithTag("245")
	require.True(t, ok, "expected a 245 field")
	assert.True(t, MatchAll(f, TagEquals{Tag: "245"}, SubfieldValue{Code: 'a', Target: "Go", Contains: true}))
}
