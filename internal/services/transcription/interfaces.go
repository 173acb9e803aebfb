// Package transcription orchestrates a single transcription request:
// validation, provider dispatch, note polishing and medical topic detection.
package transcription

import (
	"context"

	"github.com/killallgit/voicenotes-api/internal/services/providers"
)

// TranscriptionService runs the full transcription pipeline
type TranscriptionService interface {
	// Transcribe validates the audio, calls the selected provider and post-processes the transcript
	Transcribe(ctx context.Context, req Request) (*Result, error)
}

// ProviderSource resolves a provider kind; *providers.Registry satisfies it
type ProviderSource interface {
	Get(kind providers.Kind) (providers.Provider, error)
}

// Request is a single transcription request
type Request struct {
	Audio              providers.Audio
	Provider           providers.Kind
	EnableMedical      bool
	EnableMultiSpeaker bool
}

// Result is the pipeline output returned to clients
type Result struct {
	RawTranscription   string         `json:"rawTranscription"`
	PolishedNote       string         `json:"polishedNote"`
	MultiSpeakerOutput string         `json:"multiSpeakerOutput"`
	MedicalTopics      []string       `json:"medicalTopics"`
	Service            providers.Kind `json:"service"`
}
