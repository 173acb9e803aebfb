package sessions

import (
	"context"
	"errors"
	"strings"

	"github.com/killallgit/voicenotes-api/internal/logging"
	"github.com/killallgit/voicenotes-api/internal/models"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
	"github.com/killallgit/voicenotes-api/internal/services/transcription"
	apperrors "github.com/killallgit/voicenotes-api/pkg/errors"
)

// Service implements SessionService
type Service struct {
	repo      Repository
	providers ProviderSource
	maxSize   int64
}

// NewService creates a new session service
func NewService(repo Repository, source ProviderSource, maxSize int64) *Service {
	return &Service{repo: repo, providers: source, maxSize: maxSize}
}

// IngestChunk transcribes one chunk and stores the result. A provider
// failure still stores the chunk, with a nil transcript.
func (s *Service) IngestChunk(ctx context.Context, in ChunkInput) (*models.PartialTranscript, error) {
	logger := logging.Component("sessions").With().Str(logging.FieldSessionID, in.SessionID).Logger()

	if strings.TrimSpace(in.SessionID) == "" {
		return nil, apperrors.MissingFieldError("sessionId")
	}
	if in.ChunkIndex < 0 {
		return nil, apperrors.ValidationError("chunkIndex", "must not be negative")
	}
	if in.StartTimeSec < 0 {
		return nil, apperrors.ValidationError("startTimeSec", "must not be negative")
	}
	if err := transcription.ValidateAudio(in.Audio, s.maxSize); err != nil {
		return nil, err
	}

	kind := in.Provider
	if kind == "" {
		kind = providers.DefaultKind
	}
	provider, err := s.providers.Get(kind)
	if err != nil {
		return nil, err
	}

	chunk := &models.PartialTranscript{
		SessionID:    in.SessionID,
		ChunkIndex:   in.ChunkIndex,
		StartTimeSec: in.StartTimeSec,
		STTModel:     provider.Model(),
	}

	out, err := provider.Transcribe(ctx, in.Audio, in.MultiSpeaker)
	if err != nil {
		logger.Warn().Err(err).Int("chunk_index", in.ChunkIndex).Msg("Chunk transcription failed, storing empty chunk")
	} else {
		text := out.Transcription
		chunk.Transcript = &text
	}

	if err := s.repo.InsertChunk(ctx, chunk); err != nil {
		if errors.Is(err, ErrChunkExists) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeConflict, "Chunk already exists").
				WithDetail("session_id", in.SessionID).
				WithDetail("chunk_index", in.ChunkIndex)
		}
		return nil, apperrors.DatabaseError("insert chunk", err)
	}

	logger.Debug().Int("chunk_index", in.ChunkIndex).Bool("transcribed", chunk.Transcript != nil).Msg("Chunk stored")
	return chunk, nil
}

// ListChunks returns the chunks of a session in chunk order
func (s *Service) ListChunks(ctx context.Context, sessionID string) ([]models.PartialTranscript, error) {
	chunks, err := s.repo.ListChunks(ctx, sessionID)
	if err != nil {
		return nil, apperrors.DatabaseError("list chunks", err)
	}
	if chunks == nil {
		chunks = []models.PartialTranscript{}
	}
	return chunks, nil
}

// Finalize upserts the session transcript. Without explicit text the
// transcribed chunks are joined with single spaces and the model of the
// last chunk is used.
func (s *Service) Finalize(ctx context.Context, in FinalizeInput) (*models.FullTranscript, error) {
	if strings.TrimSpace(in.SessionID) == "" {
		return nil, apperrors.MissingFieldError("sessionId")
	}

	full := &models.FullTranscript{
		SessionID:          in.SessionID,
		FullText:           in.FullText,
		STTModel:           in.STTModel,
		DiarizationEnabled: in.DiarizationEnabled,
	}

	if in.FullText == nil || in.STTModel == "" {
		chunks, err := s.repo.ListChunks(ctx, in.SessionID)
		if err != nil {
			return nil, apperrors.DatabaseError("list chunks", err)
		}
		if in.FullText == nil {
			text := JoinChunks(chunks)
			full.FullText = &text
		}
		if full.STTModel == "" && len(chunks) > 0 {
			full.STTModel = chunks[len(chunks)-1].STTModel
		}
	}

	if err := s.repo.UpsertFull(ctx, full); err != nil {
		return nil, apperrors.DatabaseError("upsert transcript", err)
	}

	return s.GetFull(ctx, in.SessionID)
}

// GetFull returns the finalized transcript of a session
func (s *Service) GetFull(ctx context.Context, sessionID string) (*models.FullTranscript, error) {
	full, err := s.repo.GetFull(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrTranscriptNotFound) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "Transcript not found").
				WithDetail("session_id", sessionID)
		}
		return nil, apperrors.DatabaseError("get transcript", err)
	}
	return full, nil
}

// JoinChunks concatenates the non-nil chunk transcripts with single spaces
func JoinChunks(chunks []models.PartialTranscript) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c.Transcript == nil {
			continue
		}
		if t := strings.TrimSpace(*c.Transcript); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
