package pipeline

// Package pipeline drives a full digitization run: rasterize the document,
// fan page-transcription requests out across a bounded worker pool, collect
// the results in page order, aggregate them into one transcript, apply the
// format-specific conversion and derive frequency statistics. A run either
// yields a complete output or fails with the first error encountered; no
// partial output is ever surfaced.
