package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wudi/notekit/convert"
	"github.com/wudi/notekit/freq"
	"github.com/wudi/notekit/observability"
	"github.com/wudi/notekit/ocr"
	"github.com/wudi/notekit/rasterize"
	"github.com/wudi/notekit/scripting"
)

// Output is the final artifact of a digitization run.
type Output struct {
	// Text is the converted document in the selected format.
	Text string
	// Filename is the suggested download name for Text.
	Filename string
	// MIME is the content type matching Filename.
	MIME string
	// Frequencies is the descending-count table of alphanumeric characters
	// in Text, for visualization.
	Frequencies []freq.Entry
	// PageCount is the number of pages the document rasterized into.
	PageCount int
}

// Runner wires the pipeline stages together. The zero value is usable: it
// rasterizes with Poppler, transcribes with the default engine, converts
// Markdown to LaTeX with goldmark and logs nowhere.
type Runner struct {
	// Rasterizer converts document bytes to page images; nil uses Poppler.
	Rasterizer rasterize.Rasterizer
	// Engine performs per-page transcription; nil uses the default engine.
	Engine ocr.Engine
	// Transformer produces the LaTeX body on the LaTeX path; nil uses the
	// goldmark transformer.
	Transformer convert.MarkupTransformer
	// Script optionally post-processes each page transcript before
	// aggregation.
	Script scripting.Engine
	// Concurrency bounds in-flight transcription calls; zero means
	// DefaultConcurrency.
	Concurrency int
	// InputOptions apply to every transcription input (language hints,
	// engine knobs).
	InputOptions []ocr.InputOption

	Log    observability.Logger
	Tracer observability.Tracer
}

func (r *Runner) rasterizer() rasterize.Rasterizer {
	if r.Rasterizer != nil {
		return r.Rasterizer
	}
	return &rasterize.Poppler{}
}

func (r *Runner) transformer() convert.MarkupTransformer {
	if r.Transformer != nil {
		return r.Transformer
	}
	return convert.Goldmark{}
}

func (r *Runner) log() observability.Logger {
	if r.Log != nil {
		return r.Log
	}
	return observability.NopLogger{}
}

func (r *Runner) tracer() observability.Tracer {
	if r.Tracer != nil {
		return r.Tracer
	}
	return observability.NopTracer()
}

// Run executes a complete digitization: rasterize, transcribe concurrently,
// aggregate, convert, analyze. It blocks until every page request has
// resolved. Any stage failure aborts the run before any output is
// surfaced; there is no partial success.
func (r *Runner) Run(ctx context.Context, doc []byte, format convert.Format) (*Output, error) {
	runID := uuid.NewString()
	log := r.log().With(
		observability.String("run_id", runID),
		observability.String("format", format.String()))
	ctx, span := r.tracer().StartSpan(ctx, "pipeline.run")
	defer span.Finish()
	span.SetTag("run_id", runID)

	start := time.Now()
	pages, err := r.rasterizer().Rasterize(ctx, doc)
	if err != nil {
		log.Error("rasterization failed", observability.Error("error", err))
		span.SetError(err)
		return nil, err
	}
	span.SetTag(observability.MetricRasterizeTime, time.Since(start))
	span.SetTag(observability.MetricPageCount, len(pages))
	log.Info("document rasterized",
		observability.Int("pages", len(pages)),
		observability.Int64("bytes", int64(len(doc))))

	prompt := BuildPrompt(format)
	dispatcher := &Dispatcher{
		Engine:       r.Engine,
		Limit:        r.Concurrency,
		InputOptions: r.InputOptions,
		Log:          log,
	}
	start = time.Now()
	results, err := dispatcher.Dispatch(ctx, pages, prompt)
	if err != nil {
		log.Error("transcription failed", observability.Error("error", err))
		span.SetError(err)
		return nil, err
	}
	span.SetTag(observability.MetricTranscribeTime, time.Since(start))
	log.Info("pages transcribed", observability.Int("pages", len(results)))

	if r.Script != nil {
		for i := range results {
			transformed, err := r.Script.TransformText(ctx, results[i].PageIndex, results[i].Text)
			if err != nil {
				err = fmt.Errorf("script transform page %d: %w", results[i].PageIndex, err)
				log.Error("script transform failed", observability.Error("error", err))
				span.SetError(err)
				return nil, err
			}
			results[i].Text = transformed
		}
	}

	aggregated := Aggregate(results)

	start = time.Now()
	converted, err := convert.Convert(ctx, aggregated, format, r.transformer())
	if err != nil {
		log.Error("conversion failed", observability.Error("error", err))
		span.SetError(err)
		return nil, err
	}
	span.SetTag(observability.MetricConvertTime, time.Since(start))
	span.SetTag(observability.MetricOutputBytes, len(converted))

	out := &Output{
		Text:        converted,
		Filename:    format.Filename(),
		MIME:        format.MIME(),
		Frequencies: freq.Analyze(converted),
		PageCount:   len(pages),
	}
	log.Info("run complete",
		observability.Int("pages", out.PageCount),
		observability.Int64("output_bytes", int64(len(out.Text))))
	return out, nil
}
