package ocr

import "fmt"

// TranscriptionError reports a failed Transcribe call. The pipeline treats
// any page failure as fatal for the whole run, so this error always carries
// the index of the page it originated from.
type TranscriptionError struct {
	PageIndex int
	Engine    string
	Err       error
}

func (e *TranscriptionError) Error() string {
	if e.Engine != "" {
		return fmt.Sprintf("transcribe page %d (%s): %v", e.PageIndex, e.Engine, e.Err)
	}
	return fmt.Sprintf("transcribe page %d: %v", e.PageIndex, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }
