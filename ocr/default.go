package ocr

import (
	"context"

	"github.com/wudi/notekit/rasterize"
)

var defaultEngine Engine = &noopEngine{}

// DefaultEngine returns the library's default transcription engine.
func DefaultEngine() Engine {
	return defaultEngine
}

// SetDefaultEngine sets the library's default transcription engine.
func SetDefaultEngine(engine Engine) {
	defaultEngine = engine
}

// TranscribePages converts pages to transcription inputs and invokes the
// provided engine sequentially. Concurrent fan-out with ordered fan-in is
// the pipeline dispatcher's job; this helper exists for callers that want a
// page-at-a-time loop without the pipeline machinery.
func TranscribePages(ctx context.Context, engine Engine, pages []rasterize.Page, prompt string, opts ...InputOption) ([]Result, error) {
	results := make([]Result, 0, len(pages))
	for _, page := range pages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		in := InputFromPage(page, prompt, opts...)
		res, err := engine.Transcribe(ctx, in)
		if err != nil {
			return nil, &TranscriptionError{PageIndex: page.Index, Engine: engine.Name(), Err: err}
		}
		results = append(results, res)
	}
	return results, nil
}

type noopEngine struct{}

func (n noopEngine) Name() string {
	return "noop"
}

func (n noopEngine) Transcribe(ctx context.Context, input Input) (Result, error) {
	return Result{PageIndex: input.PageIndex}, nil
}
