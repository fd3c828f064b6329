package ocr

import (
	"fmt"

	"github.com/wudi/notekit/rasterize"
)

// InputOption mutates a transcription input generated from a rasterized page.
type InputOption func(*Input)

// WithLanguages sets language hints on the transcription input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithMetadata sets engine-specific metadata for the input.
func WithMetadata(metadata map[string]string) InputOption {
	return func(in *Input) {
		if len(metadata) == 0 {
			in.Metadata = nil
			return
		}
		in.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			in.Metadata[k] = v
		}
	}
}

// InputFromPage converts a rasterized page into a transcription input. The
// generated ID is stable for the page index to simplify correlation with
// downstream results. The page image bytes are shared, not copied; callers
// must treat them as immutable.
func InputFromPage(page rasterize.Page, prompt string, opts ...InputOption) Input {
	in := Input{
		ID:        fmt.Sprintf("page-%d", page.Index),
		Image:     page.Image,
		Format:    ImageFormat(page.MIME),
		PageIndex: page.Index,
		Prompt:    prompt,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}
