package ocr

import "context"

// ImageFormat identifies the content type of a transcription input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
	ImageFormatTIFF ImageFormat = "image/tiff"
)

// Input encapsulates a single page image submitted for transcription.
// Inputs are read-only views over the rasterized page bytes; engines must
// not mutate Image.
type Input struct {
	// ID is an optional caller-provided identifier that is echoed back in
	// log output and errors.
	ID string
	// Image is the encoded page image in the format specified by Format.
	Image []byte
	// Format declares the image content type (e.g., image/png).
	Format ImageFormat
	// PageIndex links the input back to the zero-based page index assigned
	// by the rasterizer. It is carried through to the Result unchanged.
	PageIndex int
	// Prompt is the transcription instruction for engines that accept one.
	// Classical OCR engines ignore it.
	Prompt string
	// Languages is a list of language hints (e.g., "eng", "deu") that
	// engines can use to select trained data or bias recognition.
	Languages []string
	// Metadata allows callers to pass through engine-specific knobs (e.g.,
	// "psm" for Tesseract) without hard-coding them into the API surface.
	Metadata map[string]string
}

// Result captures transcription output for a single page image.
type Result struct {
	// PageIndex mirrors the Input.PageIndex that produced this result.
	PageIndex int
	// Text contains the recognized text for the page.
	Text string
}

// Engine is the transcription provider contract: one page image in, one
// result out. Implementations must be safe for concurrent use; the
// dispatcher issues up to its concurrency limit of Transcribe calls at once.
type Engine interface {
	Name() string
	Transcribe(ctx context.Context, input Input) (Result, error)
}
