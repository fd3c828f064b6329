package pipeline

import (
	"context"
	"sync"

	"github.com/wudi/notekit/observability"
	"github.com/wudi/notekit/ocr"
	"github.com/wudi/notekit/rasterize"
)

// DefaultConcurrency bounds in-flight transcription calls when no explicit
// limit is configured.
const DefaultConcurrency = 10

// Dispatcher fans one transcription request per page out across a bounded
// worker pool and fans the results back in preserving page order.
type Dispatcher struct {
	// Engine performs the per-page transcription; nil uses the library
	// default engine.
	Engine ocr.Engine
	// Limit bounds concurrent Transcribe calls; zero or negative means
	// DefaultConcurrency.
	Limit int
	// InputOptions apply to every generated transcription input.
	InputOptions []ocr.InputOption
	// Log receives per-page progress; nil disables logging.
	Log observability.Logger
}

func (d *Dispatcher) limit() int {
	if d.Limit > 0 {
		return d.Limit
	}
	return DefaultConcurrency
}

func (d *Dispatcher) engine() ocr.Engine {
	if d.Engine != nil {
		return d.Engine
	}
	return ocr.DefaultEngine()
}

func (d *Dispatcher) log() observability.Logger {
	if d.Log != nil {
		return d.Log
	}
	return observability.NopLogger{}
}

type outcome struct {
	result ocr.Result
	err    error
}

// Dispatch submits one request per page, lets at most Limit Transcribe
// calls run simultaneously and blocks until every submitted request has
// completed one way or the other. The returned results are ordered by page
// index regardless of completion order. If any page fails, Dispatch fails
// with the first error in index order and discards the successful results;
// in-flight siblings are not canceled, they run to completion and their
// results are dropped. No retries are attempted.
func (d *Dispatcher) Dispatch(ctx context.Context, pages []rasterize.Page, prompt string) ([]ocr.Result, error) {
	engine := d.engine()
	log := d.log()

	// One writer per slot; the WaitGroup is the barrier between the
	// concurrent writes and the ordered read below.
	outcomes := make([]outcome, len(pages))
	sem := make(chan struct{}, d.limit())
	var wg sync.WaitGroup
	for i, page := range pages {
		wg.Add(1)
		sem <- struct{}{}
		go func(slot int, page rasterize.Page) {
			defer wg.Done()
			defer func() { <-sem }()
			in := ocr.InputFromPage(page, prompt, d.InputOptions...)
			res, err := engine.Transcribe(ctx, in)
			if err != nil {
				log.Error("page transcription failed",
					observability.Int("page", page.Index),
					observability.Error("error", err))
				outcomes[slot] = outcome{err: &ocr.TranscriptionError{
					PageIndex: page.Index,
					Engine:    engine.Name(),
					Err:       err,
				}}
				return
			}
			res.PageIndex = page.Index
			log.Debug("page transcribed",
				observability.Int("page", page.Index),
				observability.Int("chars", len(res.Text)))
			outcomes[slot] = outcome{result: res}
		}(i, page)
	}
	wg.Wait()

	results := make([]ocr.Result, len(pages))
	for i := range outcomes {
		if outcomes[i].err != nil {
			return nil, outcomes[i].err
		}
		results[i] = outcomes[i].result
	}
	return results, nil
}
