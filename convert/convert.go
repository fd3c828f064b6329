// Package convert post-processes the aggregated transcript into its final
// output format. Plain text and Markdown pass through unchanged; LaTeX
// output wraps an externally produced body in a fixed document template, so
// only the body segment depends on the markup transformer.
package convert

import (
	"context"
	"fmt"
)

// MarkupTransformer converts Markdown markup into a LaTeX body fragment.
// Implementations may shell out (Pandoc) or render in-process (Goldmark).
type MarkupTransformer interface {
	Name() string
	ToLaTeX(ctx context.Context, markup string) (string, error)
}

// ConversionError reports a rejected or failed markup transformation.
type ConversionError struct {
	Transformer string
	Err         error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert (%s): %v", e.Transformer, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

const latexPreamble = `\documentclass[a4paper]{article}
\usepackage[utf8]{inputenc}
\usepackage{geometry}
\geometry{margin=1in}
\title{Digitalized Notes}
\author{}
\date{\today}
\begin{document}
\maketitle
`

const latexPostamble = `\end{document}`

// Convert applies the format-specific post-processing step. PlainText and
// Markdown are the identity; LaTeX treats text as Markdown, derives a body
// through the transformer and wraps it in the document template. The
// transformer is only consulted on the LaTeX path.
func Convert(ctx context.Context, text string, format Format, transformer MarkupTransformer) (string, error) {
	if format != LaTeX {
		return text, nil
	}
	if transformer == nil {
		return "", &ConversionError{Transformer: "none", Err: fmt.Errorf("no markup transformer configured")}
	}
	body, err := transformer.ToLaTeX(ctx, text)
	if err != nil {
		return "", &ConversionError{Transformer: transformer.Name(), Err: err}
	}
	return latexPreamble + body + latexPostamble, nil
}
