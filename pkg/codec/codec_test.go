package codec

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dchud/marc21/internal/testhelpers"
	"github.com/dchud/marc21/pkg/marcopt"
	"github.com/dchud/marc21/pkg/record"
)

func sampleRecord(t *testing.T) *record.Record {
	return testhelpers.MinimalBibRecord(t, "Test Title")
}

func TestEncodeThenReadRoundTrip(t *testing.T) {
	rec := sampleRecord(t)
	frame, err := EncodeRecord(rec)
	require.NoError(t, err)

	rd := NewReader(bytes.NewReader(frame))
	got, err := rd.Next()
	require.NoError(t, err)
	assert.True(t, record.Equal(rec, got), "round trip mismatch:\nwant %+v\ngot  %+v", rec, got)

	_, err = rd.Next()
	assert.Equal(t, io.EOF, err, "expected io.EOF after the only record")
}

func TestWriterWritesReadableFrame(t *testing.T) {
	rec := sampleRecord(t)
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write(rec))

	rd := NewReader(&buf)
	got, err := rd.Next()
	require.NoError(t, err)
	assert.True(t, record.Equal(rec, got), "round trip mismatch")
}

func TestReaderRejectsShortLeader(t *testing.T) {
	rd := NewReader(bytes.NewReader([]byte("tooshort")))
	_, err := rd.Next()
	assert.Error(t, err, "expected error for a truncated leader")
}

func TestReaderStrictRejectsMissingTerminator(t *testing.T) {
	rec := sampleRecord(t)
	frame, err := EncodeRecord(rec)
	require.NoError(t, err)
	frame[len(frame)-1] = 'X'

	rd := NewReader(bytes.NewReader(frame), marcopt.WithStrict(true))
	_, err = rd.Next()
	assert.Error(t, err, "expected strict mode to reject a missing record terminator")
}

func TestReaderLenientRecoversMissingTerminator(t *testing.T) {
	rec := sampleRecord(t)
	frame, err := EncodeRecord(rec)
	require.NoError(t, err)
	frame[len(frame)-1] = 'X'

	rd := NewReader(bytes.NewReader(frame), marcopt.WithStrict(false))
	_, err = rd.Next()
	assert.NoError(t, err, "expected lenient mode to recover")
}

func TestEmittedFrameHasExactTerminatorCounts(t *testing.T) {
	rec := sampleRecord(t)
	frame, err := EncodeRecord(rec)
	require.NoError(t, err)

	var recordTerminators, fieldTerminators int
	for i, b := range frame {
		switch b {
		case 0x1D:
			recordTerminators++
			assert.Equal(t, len(frame)-1, i, "record terminator should be the last byte")
		case 0x1E:
			fieldTerminators++
		}
	}
	assert.Equal(t, 1, recordTerminators)
	// One field terminator ends the directory, plus one per field.
	assert.Equal(t, 1+len(rec.ControlFields)+len(rec.DataFields), fieldTerminators)
}

func TestControlFieldTrailingSpacesSurviveRoundTrip(t *testing.T) {
	l := testhelpers.MinimalBibRecord(t, "Title").Leader
	b := record.NewBuilder(l)
	b.AddControlField("008", "040520s2023    xxu           000 0 eng  ")
	rec, err := b.Build()
	require.NoError(t, err)

	frame, err := EncodeRecord(rec)
	require.NoError(t, err)
	got, err := NewReader(bytes.NewReader(frame)).Next()
	require.NoError(t, err)

	cf, ok := got.FirstControlField("008")
	require.True(t, ok, "expected a 008 control field")
	assert.Equal(t, "040520s2023    xxu           000 0 eng  ", cf.Value)
}

func TestReaderRejectsMisstampedLength(t *testing.T) {
	rec := sampleRecord(t)
	frame, err := EncodeRecord(rec)
	require.NoError(t, err)
	// Understate the leader's declared record length by 10 so the
	// reader truncates the data area before its terminator, the same
	// shape of corruption as a leader that declares 300 when the
	// buffer actually holds 310 bytes.
	trueLength := len(frame)
	understated := trueLength - 10
	copy(frame[0:5], []byte(itoa5(understated)))

	rd := NewReader(bytes.NewReader(frame), marcopt.WithStrict(true))
	_, err = rd.Next()
	assert.Error(t, err, "expected an error from a leader that understates the record length")
}

func itoa5(n int) string {
	s := []byte{'0', '0', '0', '0', '0'}
	for i := 4; i >= 0 && n > 0; i-- {
		s[i] = byte('0' + n%10)
		n /= 10
	}
	return string(s)
}

func TestMultipleRecordsInStream(t *testing.T) {
	rec := sampleRecord(t)
	frame, err := EncodeRecord(rec)
	require.NoError(t, err)
	var buf bytes.Buffer
	buf.Write(frame)
	buf.Write(frame)

	rd := NewReader(&buf)
	count := 0
	for {
		_, err := rd.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 2, count)
}
