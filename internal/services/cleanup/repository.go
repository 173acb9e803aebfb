package cleanup

import (
	"context"
	"fmt"

	"github.com/killallgit/voicenotes-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository tracks orphaned blobs
type Repository interface {
	// Record stores key for a later retry; recording the same key twice bumps its attempts
	Record(ctx context.Context, key, reason string, cause error) error

	// Pending returns up to limit rows with fewer than maxAttempts attempts, oldest first
	Pending(ctx context.Context, maxAttempts, limit int) ([]models.OrphanedBlob, error)

	// MarkFailed increments the attempt counter and stores the error
	MarkFailed(ctx context.Context, id uint, cause error) error

	// Remove deletes the row once the blob is gone
	Remove(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed orphan repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Record(ctx context.Context, key, reason string, cause error) error {
	orphan := &models.OrphanedBlob{
		StorageKey: key,
		Reason:     reason,
		Attempts:   1,
		LastError:  errString(cause),
	}
	if err := upsertOrphan(r.db.WithContext(ctx), orphan).Error; err != nil {
		return fmt.Errorf("recording orphaned blob: %w", err)
	}
	return nil
}

// upsertOrphan inserts orphan or bumps the existing row for its key.
// attempts must stay table-qualified; bare it is ambiguous on postgres.
func upsertOrphan(tx *gorm.DB, orphan *models.OrphanedBlob) *gorm.DB {
	attempts := orphan.TableName() + ".attempts + 1"
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"attempts":   gorm.Expr(attempts),
			"last_error": orphan.LastError,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(orphan)
}

func (r *repository) Pending(ctx context.Context, maxAttempts, limit int) ([]models.OrphanedBlob, error) {
	var orphans []models.OrphanedBlob
	q := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC")
	if maxAttempts > 0 {
		q = q.Where("attempts < ?", maxAttempts)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&orphans).Error; err != nil {
		return nil, fmt.Errorf("listing orphaned blobs: %w", err)
	}
	return orphans, nil
}

func (r *repository) MarkFailed(ctx context.Context, id uint, cause error) error {
	err := r.db.WithContext(ctx).Model(&models.OrphanedBlob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": errString(cause),
		}).Error
	if err != nil {
		return fmt.Errorf("updating orphaned blob: %w", err)
	}
	return nil
}

func (r *repository) Remove(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.OrphanedBlob{}, id).Error; err != nil {
		return fmt.Errorf("removing orphaned blob: %w", err)
	}
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
