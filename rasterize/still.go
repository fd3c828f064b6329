package rasterize

import (
	"bytes"
	"context"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// StillImage treats the document bytes as a single already-rasterized page
// image. PNG, JPEG, GIF, BMP, TIFF and WebP inputs are accepted; the bytes
// pass through unmodified, only the format is sniffed.
type StillImage struct{}

func (StillImage) Rasterize(ctx context.Context, doc []byte) ([]Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(doc))
	if err != nil {
		return nil, &RasterizationError{Reason: "decode image", Err: err}
	}
	return []Page{{Index: 0, Image: doc, MIME: "image/" + format}}, nil
}
