package convert

import "fmt"

// Format enumerates the output formats a digitization run can target.
// Exactly one format is active per run; it drives the transcription prompt,
// post-processing, and the output filename and MIME type.
type Format int

const (
	// PlainText leaves the aggregated transcript untouched.
	PlainText Format = iota
	// Markdown asks the transcriber for Markdown and leaves it untouched.
	Markdown
	// LaTeX asks the transcriber for Markdown and converts the aggregate
	// into a complete LaTeX document.
	LaTeX
)

// ParseFormat maps a user-facing format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "text", "plain", "plaintext":
		return PlainText, nil
	case "markdown", "md":
		return Markdown, nil
	case "latex", "tex":
		return LaTeX, nil
	}
	return PlainText, fmt.Errorf("unknown format %q", name)
}

func (f Format) String() string {
	switch f {
	case PlainText:
		return "Plain Text"
	case Markdown:
		return "Markdown"
	case LaTeX:
		return "LaTeX"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Filename returns the suggested name for a downloaded output file.
func (f Format) Filename() string {
	switch f {
	case Markdown:
		return "converted_notes.md"
	case LaTeX:
		return "converted_notes.tex"
	}
	return "converted_notes.txt"
}

// MIME returns the content type matching Filename.
func (f Format) MIME() string {
	switch f {
	case Markdown:
		return "text/markdown"
	case LaTeX:
		return "application/x-tex"
	}
	return "text/plain"
}
