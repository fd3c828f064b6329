package pipeline

import "github.com/wudi/notekit/convert"

const basePrompt = "You have to transcribe the handwritten notes in the image. " +
	"The output should be structured with titles, chapters, paragraphs, and " +
	"subparagraphs in the specified format."

// BuildPrompt derives the transcription instruction for a format. It is a
// pure function of the format: a fixed instruction plus the format name.
func BuildPrompt(format convert.Format) string {
	return basePrompt + " Format: " + format.String() + "."
}
