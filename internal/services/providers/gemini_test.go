package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	model    string
	contents []*genai.Content
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func TestGemini_Transcribe(t *testing.T) {
	tests := []struct {
		name             string
		multiSpeaker     bool
		promptContains   string
		wantSpeakerOuput string
	}{
		{name: "plain prompt", multiSpeaker: false, promptContains: "detailed transcript of this audio.", wantSpeakerOuput: ""},
		{name: "speaker prompt", multiSpeaker: true, promptContains: "[MM:SS]", wantSpeakerOuput: "Speaker 1: hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{resp: textResponse("Speaker 1: hello")}
			g, err := NewGemini(gen, "")
			require.NoError(t, err)

			result, err := g.Transcribe(context.Background(), Audio{Data: []byte("ogg-bytes"), MIMEType: "audio/ogg"}, tt.multiSpeaker)
			require.NoError(t, err)

			assert.Equal(t, "gemini-1.5-flash", gen.model)
			require.Len(t, gen.contents, 1)
			parts := gen.contents[0].Parts
			require.Len(t, parts, 2)
			assert.Contains(t, parts[0].Text, tt.promptContains)
			require.NotNil(t, parts[1].InlineData)
			assert.Equal(t, "audio/ogg", parts[1].InlineData.MIMEType)
			assert.Equal(t, []byte("ogg-bytes"), parts[1].InlineData.Data)

			assert.Equal(t, "Speaker 1: hello", result.Transcription)
			assert.Equal(t, tt.wantSpeakerOuput, result.MultiSpeakerOutput)
		})
	}
}

func TestGemini_EmptyResponseFails(t *testing.T) {
	for name, resp := range map[string]*genai.GenerateContentResponse{
		"nil response":  nil,
		"no candidates": {},
		"blank text":    textResponse("   "),
	} {
		t.Run(name, func(t *testing.T) {
			g, err := NewGemini(&fakeGenerator{resp: resp}, "gemini-1.5-flash")
			require.NoError(t, err)

			_, err = g.Transcribe(context.Background(), Audio{Data: []byte("a")}, false)
			pe, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, ErrorBadResponse, pe.Kind)
		})
	}
}

func TestGemini_APIErrorsAreClassifiedByCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind ErrorKind
	}{
		{name: "permission denied", err: genai.APIError{Code: 403, Message: "API key not valid"}, wantKind: ErrorAuth},
		{name: "resource exhausted", err: genai.APIError{Code: 429, Message: "Quota exceeded"}, wantKind: ErrorQuota},
		{name: "internal", err: genai.APIError{Code: 500, Message: "internal"}, wantKind: ErrorUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, wantKind: ErrorTimeout},
		{name: "other", err: errors.New("boom"), wantKind: ErrorUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGemini(&fakeGenerator{err: tt.err}, "")
			require.NoError(t, err)

			_, err = g.Transcribe(context.Background(), Audio{Data: []byte("a")}, false)
			pe, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, pe.Kind)
		})
	}
}

func TestNewGemini_RequiresGenerator(t *testing.T) {
	_, err := NewGemini(nil, "")
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = NewGenAIClient(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingCredential)
}
