package rasterize

// Package rasterize turns raw document bytes into ordered page images for
// the transcription pipeline. The default implementation shells out to
// Poppler's pdftoppm so the module carries no native PDF rendering code; a
// still-image rasterizer covers single-image scans.
