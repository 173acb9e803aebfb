// Package sessions records per-chunk transcripts of a streaming capture
// session and the finalized transcript of the whole session.
package sessions

import (
	"context"

	"github.com/killallgit/voicenotes-api/internal/models"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
)

// SessionService defines the session transcript operations
type SessionService interface {
	IngestChunk(ctx context.Context, in ChunkInput) (*models.PartialTranscript, error)
	ListChunks(ctx context.Context, sessionID string) ([]models.PartialTranscript, error)
	Finalize(ctx context.Context, in FinalizeInput) (*models.FullTranscript, error)
	GetFull(ctx context.Context, sessionID string) (*models.FullTranscript, error)
}

// Repository defines session transcript persistence
type Repository interface {
	InsertChunk(ctx context.Context, chunk *models.PartialTranscript) error
	ListChunks(ctx context.Context, sessionID string) ([]models.PartialTranscript, error)
	UpsertFull(ctx context.Context, full *models.FullTranscript) error
	GetFull(ctx context.Context, sessionID string) (*models.FullTranscript, error)
}

// ProviderSource resolves a provider kind; *providers.Registry satisfies it
type ProviderSource interface {
	Get(kind providers.Kind) (providers.Provider, error)
}

// ChunkInput is one audio chunk of a session
type ChunkInput struct {
	SessionID    string
	ChunkIndex   int
	StartTimeSec float64
	Audio        providers.Audio
	Provider     providers.Kind
	MultiSpeaker bool
}

// FinalizeInput closes a session. A nil FullText joins the chunk transcripts.
type FinalizeInput struct {
	SessionID          string  `json:"-"`
	FullText           *string `json:"fullText,omitempty"`
	STTModel           string  `json:"sttModel,omitempty"`
	DiarizationEnabled bool    `json:"diarizationEnabled"`
}
