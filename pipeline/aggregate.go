package pipeline

import (
	"strings"

	"github.com/wudi/notekit/ocr"
)

// Aggregate joins per-page transcripts in index order, separated by a blank
// line between consecutive pages. The input must already be fully
// successful and ordered; the dispatcher guarantees both. An empty input
// yields the empty string.
func Aggregate(results []ocr.Result) string {
	if len(results) == 0 {
		return ""
	}
	texts := make([]string, len(results))
	for i, res := range results {
		texts[i] = res.Text
	}
	return strings.Join(texts, "\n\n")
}
