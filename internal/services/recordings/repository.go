package recordings

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/voicenotes-api/internal/models"
	"gorm.io/gorm"
)

// Default and maximum page sizes for List
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed recording repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a recording
func (r *repository) Create(ctx context.Context, rec *models.Recording) error {
	if rec == nil {
		return errors.New("recording cannot be nil")
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("creating recording: %w", err)
	}
	return nil
}

// GetByID retrieves a recording by ID
func (r *repository) GetByID(ctx context.Context, id uint) (*models.Recording, error) {
	var rec models.Recording
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordingNotFound
		}
		return nil, fmt.Errorf("getting recording: %w", err)
	}
	return &rec, nil
}

// List returns a page of recordings ordered newest first
func (r *repository) List(ctx context.Context, limit, offset int) ([]models.Recording, error) {
	limit, offset = NormalizePage(limit, offset)

	var recs []models.Recording
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("listing recordings: %w", err)
	}
	return recs, nil
}

// Update applies fields to the recording and returns the new state
func (r *repository) Update(ctx context.Context, id uint, fields map[string]any) (*models.Recording, error) {
	var rec models.Recording
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&rec).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&rec, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordingNotFound
		}
		return nil, fmt.Errorf("updating recording: %w", err)
	}
	return &rec, nil
}

// Delete removes the recording and returns the deleted row
func (r *repository) Delete(ctx context.Context, id uint) (*models.Recording, error) {
	var rec models.Recording
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recording{}, rec.ID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordingNotFound
		}
		return nil, fmt.Errorf("deleting recording: %w", err)
	}
	return &rec, nil
}

// NormalizePage applies the list defaults and bounds
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
