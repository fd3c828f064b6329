package ocr

// Package ocr defines abstraction layers for plugging transcription engines
// (for example, Tesseract or vision-capable language models) into the notes
// digitization pipeline. The interfaces are intentionally small and
// transport-agnostic so engines can be backed by native libraries, local
// services, or remote APIs without leaking provider-specific concerns into
// callers.
