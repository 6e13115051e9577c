package directory

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRoundTrip(t *testing.T) {
	e := Entry{Tag: "245", Length: 42, Offset: 100}
	b, err := e.Marshal()
	require.NoError(t, err)
	require.Len(t, b, EntrySize)

	var got Entry
	require.NoError(t, got.Unmarshal(b))
	assert.Equal(t, e, got)
}

func TestEntryUnmarshalRejectsBadTag(t *testing.T) {
	var e Entry
	err := e.Unmarshal([]byte("24X004200100"))
	assert.Error(t, err, "expected error for non-digit tag")
}

func TestParseDirectory(t *testing.T) {
	e1, _ := Entry{Tag: "001", Length: 10, Offset: 0}.Marshal()
	e2, _ := Entry{Tag: "245", Length: 20, Offset: 10}.Marshal()
	raw := append(append([]byte{}, e1...), e2...)

	d, err := Parse(raw, 0x1E, logr.Discard())
	require.NoError(t, err)
	require.Len(t, d.Entries, 2)
	assert.Equal(t, "245", d.Entries[1].Tag)
	assert.Equal(t, 10, d.Entries[1].Offset)
}

func TestParseDirectoryRejectsWrongTerminator(t *testing.T) {
	e1, _ := Entry{Tag: "001", Length: 10, Offset: 0}.Marshal()
	_, err := Parse(e1, 'X', logr.Discard())
	assert.Error(t, err, "expected error for wrong terminator byte")
}

func TestParseDirectoryRejectsMisalignedLength(t *testing.T) {
	_, err := Parse(make([]byte, 13), 0x1E, logr.Discard())
	assert.Error(t, err, "expected error for a region length not a multiple of 12")
}

func TestMarshalDirectoryIncludesTerminator(t *testing.T) {
	d := New(logr.Discard())
	d.Entries = []Entry{{Tag: "001", Length: 10, Offset: 0}}
	b, err := d.Marshal()
	require.NoError(t, err)
	assert.Equal(t, byte(0x1E), b[len(b)-1])
}

func TestMarshalFieldTooLong(t *testing.T) {
	e := Entry{Tag: "245", Length: 99999, Offset: 0}
	_, err := e.Marshal()
	assert.Error(t, err, "expected FieldTooLong for a length exceeding 9999")
}
