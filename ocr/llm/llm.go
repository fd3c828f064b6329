// Package llm provides a transcription engine backed by vision-capable
// language models through langchaingo. It is the engine of choice for
// handwritten material, where classical OCR struggles.
package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/wudi/notekit/ocr"
)

// Config selects and tunes the vision model.
type Config struct {
	// Provider is one of "openai", "ollama", "mistral", "anthropic".
	Provider string
	// Model is the provider-specific model identifier.
	Model string
	// MaxTokens caps the completion length; zero leaves the provider default.
	MaxTokens int
	// Temperature overrides the sampling temperature when non-nil.
	Temperature *float64
	// TopK is honored by Ollama only.
	TopK *int
}

// Engine implements ocr.Engine over a langchaingo vision model.
type Engine struct {
	provider    string
	model       string
	llm         llms.Model
	maxTokens   int
	temperature *float64
	topK        *int
}

// New constructs a vision-model transcription engine for the configured
// provider. Credentials are read from the provider's conventional
// environment variables (OPENAI_API_KEY, MISTRAL_API_KEY, ANTHROPIC_API_KEY,
// OLLAMA_HOST).
func New(config Config) (*Engine, error) {
	var model llms.Model
	var err error

	switch strings.ToLower(config.Provider) {
	case "openai":
		model, err = createOpenAIClient(config)
	case "ollama":
		model, err = createOllamaClient(config)
	case "mistral":
		model, err = createMistralClient(config)
	case "anthropic":
		model, err = createAnthropicClient(config)
	default:
		return nil, fmt.Errorf("unsupported vision LLM provider: %s", config.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("error creating vision LLM client: %w", err)
	}

	return &Engine{
		provider:    strings.ToLower(config.Provider),
		model:       config.Model,
		llm:         model,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
		topK:        config.TopK,
	}, nil
}

func (e *Engine) Name() string { return "llm/" + e.provider }

// Transcribe sends the page image plus the transcription prompt to the
// vision model and returns the recognized text.
func (e *Engine) Transcribe(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	parts := []llms.ContentPart{
		e.imagePart(in),
		llms.TextPart(in.Prompt),
	}

	var callOpts []llms.CallOption
	if e.maxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(e.maxTokens))
	}
	if e.temperature != nil {
		callOpts = append(callOpts, llms.WithTemperature(*e.temperature))
	}
	if e.provider == "ollama" && e.topK != nil {
		callOpts = append(callOpts, llms.WithTopK(*e.topK))
	}

	completion, err := e.llm.GenerateContent(ctx, []llms.MessageContent{
		{
			Parts: parts,
			Role:  llms.ChatMessageTypeHuman,
		},
	}, callOpts...)
	if err != nil {
		return ocr.Result{}, fmt.Errorf("error getting response from LLM: %w", err)
	}
	if len(completion.Choices) == 0 {
		return ocr.Result{}, fmt.Errorf("empty completion from LLM")
	}
	return ocr.Result{PageIndex: in.PageIndex, Text: completion.Choices[0].Content}, nil
}

// OpenAI-compatible and Mistral endpoints want data URLs; the rest accept
// raw binary parts.
func (e *Engine) imagePart(in ocr.Input) llms.ContentPart {
	mime := string(in.Format)
	if mime == "" {
		mime = string(ocr.ImageFormatPNG)
	}
	if e.provider == "openai" || e.provider == "mistral" {
		return llms.ImageURLPart("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(in.Image))
	}
	return llms.BinaryPart(mime, in.Image)
}
