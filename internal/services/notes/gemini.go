package notes

import (
	"context"
	"errors"

	"github.com/killallgit/voicenotes-api/internal/services/providers"
	"google.golang.org/genai"
)

// ErrEmptyOutput is returned when the model answers with no text
var ErrEmptyOutput = errors.New("model returned empty output")

// DefaultModel is the language model used for notes when none is configured
const DefaultModel = "gemini-1.5-flash"

// GeminiGenerator sends text prompts to a Gemini model
type GeminiGenerator struct {
	models providers.ContentGenerator
	model  string
}

// NewGeminiGenerator wraps the genai models API; models may be nil when
// Gemini is not configured, in which case every call fails.
func NewGeminiGenerator(models providers.ContentGenerator, model string) *GeminiGenerator {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGenerator{models: models, model: model}
}

// Generate sends the prompt as a single user turn
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.models == nil {
		return "", &providers.Error{
			Provider: providers.KindGemini,
			Kind:     providers.ErrorNotConfigured,
			Err:      providers.ErrMissingCredential,
		}
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", providers.ClassifyGenAIError(err)
	}

	text := providers.ResponseText(resp)
	if text == "" {
		return "", ErrEmptyOutput
	}
	return text, nil
}
