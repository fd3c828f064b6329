package rasterize

import (
	"context"
	"fmt"
)

// Page is one rasterized image of a single document page. Index is zero
// based, unique within a document, assigned in document order and never
// reordered afterward. Image bytes are immutable once the page is produced;
// downstream consumers share them without copying or locking.
type Page struct {
	Index int
	Image []byte
	MIME  string
}

// Rasterizer converts raw document bytes into ordered page images.
type Rasterizer interface {
	Rasterize(ctx context.Context, doc []byte) ([]Page, error)
}

// RasterizationError reports a malformed or unreadable document, or a
// failure of the underlying rendering tool.
type RasterizationError struct {
	Reason string
	Err    error
}

func (e *RasterizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rasterize: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("rasterize: %s", e.Reason)
}

func (e *RasterizationError) Unwrap() error { return e.Err }
