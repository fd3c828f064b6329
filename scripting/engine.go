package scripting

import (
	"context"
)

// Engine represents a scripting engine used to post-process page
// transcripts (e.g., JavaScript cleanup rules) before aggregation.
type Engine interface {
	// TransformText runs the script's transform over a single page
	// transcript and returns the replacement text.
	TransformText(ctx context.Context, pageIndex int, text string) (string, error)
}
