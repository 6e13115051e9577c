// Package pipeline implements the parallel streaming engine: one
// producer performing a boundary scan, a pool of parser workers, and a
// sequence-keyed reorder buffer feeding an ordered consumer. Worker
// lifecycle and error propagation are handled with
// golang.org/x/sync/errgroup rather than a hand-rolled WaitGroup and
// buffered error channel.
package pipeline

import (
	"bytes"
	"context"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dchud/marc21/pkg/codec"
	"github.com/dchud/marc21/pkg/logging"
	"github.com/dchud/marc21/pkg/marcopt"
	"github.com/dchud/marc21/pkg/record"
	"github.com/dchud/marc21/pkg/scanner"
)

// workItem is one candidate frame handed from the producer to a worker.
type workItem struct {
	sequence uint64
	bytes    []byte
}

// ResultItem is one outcome released by the reorder buffer to the
// consumer: exactly one of Record or Err is set.
type ResultItem struct {
	Sequence uint64
	Record   *record.Record
	Err      error
}

type resultItem struct {
	sequence uint64
	record   *record.Record
	err      error
}

// Pipeline drives the producer/worker/reorder-buffer topology over a
// single io.Reader. Results is the ordered lazy sequence of outcomes;
// callers drain it in a range loop, and a caller that stops early calls
// Close (or cancels the context passed to Run) to stop the pipeline.
// Merely ceasing to drain Results leaves its goroutines blocked.
type Pipeline struct {
	opts    marcopt.PipelineOptions
	cancel  context.CancelFunc
	results chan ResultItem
	done    chan struct{}
}

// Run reads every record-shaped frame out of r, parses them in
// parallel, and returns a Pipeline whose Results channel yields them in
// input order. Run starts the producer and worker goroutines
// immediately; callers must either drain Results to completion or call
// Close to cancel early.
func Run(ctx context.Context, r io.Reader, opts ...marcopt.PipelineOption) *Pipeline {
	o := marcopt.NewPipelineOptions(opts...)
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pipeline{
		opts:    o,
		cancel:  cancel,
		results: make(chan ResultItem),
		done:    make(chan struct{}),
	}

	go p.run(ctx, r, workers)
	return p
}

// Results returns the ordered channel of outcomes. It is closed once
// every frame has been emitted or the pipeline has been cancelled.
func (p *Pipeline) Results() <-chan ResultItem {
	return p.results
}

// Close cancels the pipeline: the producer stops handing out frames,
// workers exit without parsing the frames still queued, and Results is
// closed. Close blocks until Results is closed; worker goroutines may
// still be returning at that point.
func (p *Pipeline) Close() {
	p.cancel()
	<-p.done
}

func (p *Pipeline) run(ctx context.Context, r io.Reader, workers int) {
	defer close(p.done)
	defer close(p.results)

	data, err := io.ReadAll(r)
	if err != nil {
		select {
		case p.results <- ResultItem{Err: err}:
		case <-ctx.Done():
		}
		return
	}

	frames, err := scanner.Scan(data)
	if err != nil {
		select {
		case p.results <- ResultItem{Err: err}:
		case <-ctx.Done():
		}
		return
	}

	input := make(chan workItem, p.opts.QueueDepth)
	output := make(chan resultItem, p.opts.QueueDepth)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(input)
		for i, f := range frames {
			item := workItem{sequence: uint64(i), bytes: data[f.Start : f.Start+f.Length]}
			select {
			case input <- item:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				select {
				case item, ok := <-input:
					if !ok {
						return nil
					}
					rec, parseErr := codec.NewReader(bytes.NewReader(item.bytes), readerOptsFrom(p.opts)...).Next()
					out := resultItem{sequence: item.sequence}
					if parseErr != nil {
						out.err = parseErr
					} else {
						out.record = rec
					}
					select {
					case output <- out:
					case <-gctx.Done():
						return gctx.Err()
					}
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		})
	}

	go func() {
		_ = g.Wait()
		close(output)
	}()

	p.reorderAndEmit(ctx, output, len(frames))
}

// reorderAndEmit buffers out-of-order results keyed by sequence number
// and releases them to p.results strictly in ascending order.
func (p *Pipeline) reorderAndEmit(ctx context.Context, output <-chan resultItem, total int) {
	buffer := make(map[uint64]resultItem, p.opts.ReorderWindow)
	var next uint64
	emitted := 0

	emit := func(r resultItem) bool {
		item := ResultItem{Sequence: r.sequence, Record: r.record, Err: r.err}
		select {
		case p.results <- item:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for emitted < total {
		if r, ok := buffer[next]; ok {
			delete(buffer, next)
			if !emit(r) {
				return
			}
			next++
			emitted++
			continue
		}
		select {
		case r, ok := <-output:
			if !ok {
				return
			}
			if r.sequence == next {
				if !emit(r) {
					return
				}
				next++
				emitted++
				continue
			}
			buffer[r.sequence] = r
		case <-ctx.Done():
			return
		}
	}
}

func readerOptsFrom(o marcopt.PipelineOptions) []marcopt.ReaderOption {
	return []marcopt.ReaderOption{
		marcopt.WithStrict(o.Strict),
		marcopt.WithReaderLogger(o.Logger.V(logging.TRACE)),
	}
}
