// Package marc21 is the top-level facade over a MARC21/ISO 2709
// bibliographic record library: leader and field value types, a
// streaming reader/writer, a MARC-8 transcoder, a composable query
// surface, and a parallel streaming pipeline. It re-exports
// constructors and option types from its subpackages rather than
// duplicating their logic.
package marc21

import (
	"context"
	"io"

	"github.com/go-logr/logr"

	"github.com/dchud/marc21/pkg/codec"
	"github.com/dchud/marc21/pkg/field"
	"github.com/dchud/marc21/pkg/leader"
	"github.com/dchud/marc21/pkg/logging"
	"github.com/dchud/marc21/pkg/marc8"
	"github.com/dchud/marc21/pkg/marcopt"
	"github.com/dchud/marc21/pkg/pipeline"
	"github.com/dchud/marc21/pkg/query"
	"github.com/dchud/marc21/pkg/record"
)

// Record, Subfield, ControlField and DataField are re-exported from
// pkg/record and pkg/field so callers need only import this package for
// the common case.
type (
	Record       = record.Record
	Subfield     = field.Subfield
	ControlField = field.ControlField
	DataField    = field.DataField
	Leader       = leader.Leader
)

// Reader and Writer are re-exported from pkg/codec.
type (
	Reader = codec.Reader
	Writer = codec.Writer
)

// ReaderOption, WriterOption and PipelineOption are re-exported from
// pkg/marcopt, along with their With* constructors, below.
type (
	ReaderOption   = marcopt.ReaderOption
	WriterOption   = marcopt.WriterOption
	PipelineOption = marcopt.PipelineOption
)

var (
	WithStrict         = marcopt.WithStrict
	WithReaderLogger   = marcopt.WithReaderLogger
	WithWriterLogger   = marcopt.WithWriterLogger
	WithWorkers        = marcopt.WithWorkers
	WithQueueDepth     = marcopt.WithQueueDepth
	WithReorderWindow  = marcopt.WithReorderWindow
	WithPipelineStrict = marcopt.WithPipelineStrict
	WithPipelineLogger = marcopt.WithPipelineLogger
)

// NewReader constructs a streaming ISO 2709 reader over r. A Reader is
// not safe to share across goroutines; construct one per goroutine for
// concurrent reads of distinct inputs.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	return codec.NewReader(r, opts...)
}

// NewWriter constructs an ISO 2709 writer over w.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	return codec.NewWriter(w, opts...)
}

// NewBuilder starts a Record builder over the given leader.
func NewBuilder(l *Leader) *record.Builder {
	return record.NewBuilder(l)
}

// NewLeader returns an empty Leader for use with a Builder.
func NewLeader() *Leader {
	return leader.New(logr.Discard())
}

// NewConsoleLogger returns a logr.Logger that writes human-readable
// lines to w, for callers that want to see reader/writer/pipeline
// diagnostics without wiring in their own logr backend. Whether labels
// are colorized is decided by fatih/color's own terminal detection; the
// useColor argument does not change the output.
func NewConsoleLogger(w io.Writer, verbosity int, useColor bool) logr.Logger {
	return logging.NewSimpleLogger(w, verbosity, useColor)
}

// Pipeline is the parallel streaming engine re-exported from
// pkg/pipeline.
type Pipeline = pipeline.Pipeline

// ResultItem is one outcome from a Pipeline's ordered Results channel.
type ResultItem = pipeline.ResultItem

// NewPipeline starts a parallel streaming read of r, returning a
// Pipeline whose Results channel yields records in input order.
// Calling Close, or cancelling ctx, stops the producer and workers
// without losing or duplicating any already-emitted record; ceasing to
// drain Results without doing either leaves the pipeline's goroutines
// blocked.
func NewPipeline(ctx context.Context, r io.Reader, opts ...PipelineOption) *Pipeline {
	return pipeline.Run(ctx, r, opts...)
}

// Query re-exports the composable constraint surface of pkg/query.
type (
	TagEquals        = query.TagEquals
	TagRange         = query.TagRange
	Indicator        = query.Indicator
	SubfieldPresence = query.SubfieldPresence
	SubfieldValue    = query.SubfieldValue
	SubfieldPattern  = query.SubfieldPattern
)

// MatchAll and MatchAny compose query constraints over a single field.
var (
	MatchAll  = query.MatchAll
	MatchAny  = query.MatchAny
	FindAll   = query.FindAll
	FindFirst = query.FindFirst
)

// DecodeField and EncodeField are the transcoder entry points external
// serializers (JSON/XML/MODS/Dublin Core/BIBFRAME projections) use to
// move field values between a record's declared character coding and
// Unicode.
var (
	DecodeField = marc8.DecodeField
	EncodeField = marc8.EncodeField
)

// AnalyzeEncoding classifies a record's field bytes as UTF-8, MARC-8,
// ambiguous, or mixed.
var AnalyzeEncoding = marc8.Analyze

// EncodingClassification and EncodingCounterexample are re-exported from
// pkg/marc8 for callers of AnalyzeEncoding.
type (
	EncodingClassification = marc8.Classification
	EncodingCounterexample = marc8.Counterexample
	EncodingFieldValue     = marc8.FieldValue
)
