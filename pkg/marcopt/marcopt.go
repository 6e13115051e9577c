// Package marcopt holds the functional options accepted by the reader,
// writer and pipeline constructors: an Options struct per constructor
// plus a matching set of With* closures.
package marcopt

import "github.com/go-logr/logr"

// ReaderOptions configures NewReader. Strict controls whether a
// recoverable framing violation fails the read or is surfaced as a
// warning and skipped over.
type ReaderOptions struct {
	Strict bool
	Logger logr.Logger
}

// ReaderOption mutates a ReaderOptions.
type ReaderOption func(*ReaderOptions)

// WithStrict sets strict mode: a recoverable framing violation fails the
// read instead of being recovered from with a warning.
func WithStrict(strict bool) ReaderOption {
	return func(o *ReaderOptions) {
		o.Strict = strict
	}
}

// WithReaderLogger attaches a logger to the reader.
func WithReaderLogger(logger logr.Logger) ReaderOption {
	return func(o *ReaderOptions) {
		o.Logger = logger
	}
}

// NewReaderOptions applies opts over a zero-value ReaderOptions
// (lenient mode, discard logger) and returns the result.
func NewReaderOptions(opts ...ReaderOption) ReaderOptions {
	o := ReaderOptions{Logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WriterOptions configures NewWriter.
type WriterOptions struct {
	Logger logr.Logger
}

// WriterOption mutates a WriterOptions.
type WriterOption func(*WriterOptions)

// WithWriterLogger attaches a logger to the writer.
func WithWriterLogger(logger logr.Logger) WriterOption {
	return func(o *WriterOptions) {
		o.Logger = logger
	}
}

// NewWriterOptions applies opts over a zero-value WriterOptions.
func NewWriterOptions(opts ...WriterOption) WriterOptions {
	o := WriterOptions{Logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// PipelineOptions configures the parallel streaming engine: worker
// count, input channel depth, and the reorder buffer's out-of-order
// window.
type PipelineOptions struct {
	Workers       int
	QueueDepth    int
	ReorderWindow int
	Strict        bool
	Logger        logr.Logger
}

// PipelineOption mutates a PipelineOptions.
type PipelineOption func(*PipelineOptions)

// WithWorkers sets the parser worker pool size. A value <= 0 leaves the
// default (the number of available OS threads) in place.
func WithWorkers(n int) PipelineOption {
	return func(o *PipelineOptions) {
		o.Workers = n
	}
}

// WithQueueDepth sets the bounded input channel's capacity.
func WithQueueDepth(n int) PipelineOption {
	return func(o *PipelineOptions) {
		o.QueueDepth = n
	}
}

// WithReorderWindow sets the initial capacity of the reorder buffer that
// holds out-of-order results until the consumer's next sequence number
// arrives. It does not cap the buffer, which grows past this size when
// more results arrive out of order.
func WithReorderWindow(n int) PipelineOption {
	return func(o *PipelineOptions) {
		o.ReorderWindow = n
	}
}

// WithPipelineStrict sets strict framing mode for every worker's reader.
func WithPipelineStrict(strict bool) PipelineOption {
	return func(o *PipelineOptions) {
		o.Strict = strict
	}
}

// WithPipelineLogger attaches a logger to the pipeline.
func WithPipelineLogger(logger logr.Logger) PipelineOption {
	return func(o *PipelineOptions) {
		o.Logger = logger
	}
}

// NewPipelineOptions applies opts over sensible defaults: worker count 0
// (meaning "let the pipeline choose", typically runtime.NumCPU()), a
// queue depth of 64, and a reorder window of 256.
func NewPipelineOptions(opts ...PipelineOption) PipelineOptions {
	o := PipelineOptions{
		Workers:       0,
		QueueDepth:    64,
		ReorderWindow: 256,
		Logger:        logr.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
