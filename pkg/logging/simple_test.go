package logging

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
)

// Test that if writer is nil, the sink defaults to os.Stdout.
func TestDefaultWriter(t *testing.T) {
	s := NewSimpleLogSink(nil, 1, true)
	assert.NotNil(t, s.writer)
}

// Test that Enabled returns true only for levels less than or equal to
// minVerbosity, the gate used when a reader or pipeline logs at DEBUG
// or TRACE.
func TestEnabled(t *testing.T) {
	s := NewSimpleLogSink(&bytes.Buffer{}, DEBUG, true)
	assert.True(t, s.Enabled(INFO))
	assert.True(t, s.Enabled(DEBUG))
	assert.False(t, s.Enabled(TRACE))
}

// Test that Info writes a properly formatted (and colored) log message,
// as a codec.Reader would when recovering from a lenient framing issue.
func TestInfoLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, DEBUG, true)
	s.Info(INFO, "lenient recovery: missing record terminator", "sequence", 7)
	output := buf.String()

	assert.Contains(t, output, "lenient recovery: missing record terminator")
	assert.Contains(t, output, "sequence: 7")
	assert.Contains(t, output, "[INFO]")
}

// Test that a log at a level higher than minVerbosity is not written.
func TestInfoNotLoggedWhenDisabled(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, INFO, true) // Only INFO enabled.
	s.Info(DEBUG, "parsed directory", "entryCount", 12)
	assert.Zero(t, buf.Len())
}

// Test that Error writes an error log with the proper label and
// key/value output, as pkg/codec would on a failed parse.
func TestErrorLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, INFO, true)
	err := errors.New("directory lengths do not sum to the data area length")
	s.Error(err, "record failed to parse", "sequence", 50)
	output := buf.String()

	assert.Contains(t, output, "[ERROR]")
	assert.Contains(t, output, "record failed to parse")
	assert.Contains(t, output, "sequence: 50")
	assert.Contains(t, output, "error: directory lengths do not sum to the data area length")
}

// Test that WithName returns a new logger whose messages include the
// name prefix, the mechanism a Reader/Writer/Pipeline would use to tag
// its diagnostics.
func TestWithName(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, DEBUG, true)
	named := s.WithName("codec")
	named.Info(INFO, "opened stream")
	assert.Contains(t, buf.String(), "[codec]")
}

// Test that chaining WithName produces a combined name.
func TestChainedWithName(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, DEBUG, true)
	chain := s.WithName("pipeline").WithName("worker").(*SimpleLogSink)
	chain.Info(INFO, "started")
	assert.Contains(t, buf.String(), "[pipeline.worker]")
}

// Test that the sink returned by V still writes, and that a log at the
// DEBUG level is labeled accordingly.
func TestVMethod(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, DEBUG, true)
	v := s.V(DEBUG)
	v.Info(DEBUG, "decoding MARC-8 field")
	assert.Contains(t, buf.String(), "[DEBUG]")
}

// Test that a non-string key is replaced with a formatted placeholder.
func TestNonStringKey(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, DEBUG, true)
	s.Info(INFO, "non-string key", 123, "value")
	assert.Contains(t, buf.String(), "key0: value")
}

// Test that Init sets the callDepth field (via reflection, since it is
// unexported).
func TestInitSetsCallDepth(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSimpleLogSink(buf, DEBUG, true)
	s.Init(logr.RuntimeInfo{CallDepth: 5})

	cd := reflect.ValueOf(s).Elem().FieldByName("callDepth").Int()
	assert.EqualValues(t, 5, cd)
}

// Test that NewSimpleLogger, the constructor marc21.NewConsoleLogger
// re-exports, returns a logr.Logger that writes readable output.
func TestNewSimpleLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSimpleLogger(buf, DEBUG, true)
	logger.Info("reader ready", "strict", false)
	assert.Contains(t, buf.String(), "reader ready")
}
