package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/voicenotes-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed session repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// InsertChunk stores a chunk; chunks are never updated
func (r *repository) InsertChunk(ctx context.Context, chunk *models.PartialTranscript) error {
	if err := r.db.WithContext(ctx).Create(chunk).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrChunkExists
		}
		return fmt.Errorf("inserting partial transcript: %w", err)
	}
	return nil
}

// ListChunks returns the chunks of a session ordered by chunk index
func (r *repository) ListChunks(ctx context.Context, sessionID string) ([]models.PartialTranscript, error) {
	var chunks []models.PartialTranscript
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("chunk_index ASC").
		Find(&chunks).Error
	if err != nil {
		return nil, fmt.Errorf("listing partial transcripts: %w", err)
	}
	return chunks, nil
}

// UpsertFull inserts the session transcript or overwrites text, model and diarization flag
func (r *repository) UpsertFull(ctx context.Context, full *models.FullTranscript) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_text", "stt_model", "diarization_enabled", "updated_at"}),
	}).Create(full).Error
	if err != nil {
		return fmt.Errorf("upserting full transcript: %w", err)
	}
	return nil
}

// GetFull returns the finalized transcript of a session
func (r *repository) GetFull(ctx context.Context, sessionID string) (*models.FullTranscript, error) {
	var full models.FullTranscript
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&full).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("getting full transcript: %w", err)
	}
	return &full, nil
}
