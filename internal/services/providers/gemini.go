package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	geminiPlainPrompt = "Generate a complete, detailed transcript of this audio."

	geminiSpeakerPrompt = `Generate a complete, detailed transcript of this audio with speaker identification.
Format the output as:

Speaker 1: [their dialogue]
Speaker 2: [their dialogue]

Label each distinct speaker as Speaker 1, Speaker 2, etc. If there is only one speaker, use Speaker 1.
Include timestamps where possible in the format [MM:SS].`
)

// ContentGenerator is the subset of the genai Models API used here.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGenAIClient creates a Gemini API client; it fails when no API key is configured
func NewGenAIClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingCredential)
	}
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	return client, nil
}

// Gemini transcribes by sending inline audio with a prompt to a generative model
type Gemini struct {
	models ContentGenerator
	model  string
}

// NewGemini wraps a content generator
func NewGemini(models ContentGenerator, model string) (*Gemini, error) {
	if models == nil {
		return nil, fmt.Errorf("gemini: %w", ErrMissingCredential)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Gemini{models: models, model: model}, nil
}

func (g *Gemini) Kind() Kind    { return KindGemini }
func (g *Gemini) Model() string { return g.model }

// Transcribe asks the model for a plain or speaker-labeled transcript
func (g *Gemini) Transcribe(ctx context.Context, audio Audio, multiSpeaker bool) (*Result, error) {
	prompt := geminiPlainPrompt
	if multiSpeaker {
		prompt = geminiSpeakerPrompt
	}

	mimeType := audio.MIMEType
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio.Data}},
		},
	}}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, classifyGenAIError(KindGemini, err)
	}

	text := ResponseText(resp)
	if text == "" {
		return nil, badResponse(KindGemini, fmt.Errorf("empty transcription"))
	}

	result := &Result{Transcription: text}
	if multiSpeaker {
		result.MultiSpeakerOutput = text
	}
	return result, nil
}

// ResponseText concatenates the text parts of the first candidate
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range c.Content.Parts {
		if p != nil {
			sb.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

func classifyGenAIError(provider Kind, err error) *Error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		pe := statusError(provider, apiErr.Code, apiErr.Message)
		pe.Err = err
		return pe
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return transportError(provider, err)
	}
	return &Error{Provider: provider, Kind: ErrorUpstream, Err: err}
}

// ClassifyGenAIError maps an error from the genai SDK to a provider Error
func ClassifyGenAIError(err error) *Error {
	return classifyGenAIError(KindGemini, err)
}
