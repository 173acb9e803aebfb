package recordings

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/killallgit/voicenotes-api/internal/logging"
	"github.com/killallgit/voicenotes-api/internal/models"
	"github.com/killallgit/voicenotes-api/internal/services/blobstore"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
	apperrors "github.com/killallgit/voicenotes-api/pkg/errors"
	"gorm.io/datatypes"
)

// maxKeyAttempts bounds how many keys Save tries for one upload
const maxKeyAttempts = 5

// Orphan reasons recorded when a blob could not be removed
const (
	ReasonInsertFailed    = "insert_failed"
	ReasonRecordingDelete = "recording_deleted"
)

// Service implements RecordingService
type Service struct {
	repo     Repository
	store    blobstore.Store
	orphans  OrphanRecorder
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates a new recording service
func NewService(repo Repository, store blobstore.Store, orphans OrphanRecorder) *Service {
	return &Service{
		repo:     repo,
		store:    store,
		orphans:  orphans,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Save uploads the audio first and inserts the row second. When the insert
// fails the uploaded object is deleted again; if that also fails the key is
// handed to the orphan recorder.
func (s *Service) Save(ctx context.Context, in SaveInput) (*SaveResult, error) {
	logger := logging.Component("recordings")

	if len(in.Audio) == 0 {
		return nil, apperrors.MissingFieldError("audio")
	}
	if err := s.validate.Struct(in.Data); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid transcription data")
	}

	contentType := blobstore.ContentTypeOrDefault(in.ContentType)
	key, audioURL, err := s.upload(ctx, blobstore.ObjectKey(s.now(), in.Filename, contentType), in.Audio, contentType)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to upload audio")
		return nil, apperrors.StorageError("upload", err)
	}

	service := in.Data.Service
	if service == "" {
		service = string(providers.DefaultKind)
	}

	topics := in.Data.MedicalTopics
	if topics == nil {
		topics = []string{}
	}

	rec := &models.Recording{
		Title:              ExtractTitle(in.Data.PolishedNote),
		RawTranscription:   &in.Data.RawTranscription,
		PolishedNote:       &in.Data.PolishedNote,
		MultispeakerOutput: &in.Data.MultiSpeakerOutput,
		MedicalTopics:      datatypes.JSONSlice[string](topics),
		IsMedical:          len(topics) > 0,
		AudioURL:           audioURL,
		AudioKey:           key,
		Service:            service,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to insert recording, removing uploaded audio")
		s.removeBlob(context.WithoutCancel(ctx), key, ReasonInsertFailed)
		return nil, apperrors.DatabaseError("insert", err)
	}

	logger.Info().
		Uint("recording_id", rec.ID).
		Str("key", key).
		Int("size", len(in.Audio)).
		Msg("Recording saved")

	return &SaveResult{
		RecordingID: rec.ID,
		AudioURL:    audioURL,
		Title:       rec.Title,
	}, nil
}

// upload stores audio under key, moving to key-2, key-3 and so on while the
// backend reports the key as taken
func (s *Service) upload(ctx context.Context, key string, audio []byte, contentType string) (string, string, error) {
	candidate := key
	for n := 2; ; n++ {
		url, err := s.store.Upload(ctx, candidate, bytes.NewReader(audio), contentType)
		if err == nil {
			return candidate, url, nil
		}
		if !errors.Is(err, blobstore.ErrKeyExists) || n > maxKeyAttempts {
			return candidate, "", err
		}
		candidate = blobstore.WithSuffix(key, n)
	}
}

// List returns recordings newest first; limit defaults to 50 and is capped at 200
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Recording, error) {
	recs, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.DatabaseError("list", err)
	}
	if recs == nil {
		recs = []models.Recording{}
	}
	return recs, nil
}

// Get retrieves a recording by ID
func (s *Service) Get(ctx context.Context, id uint) (*models.Recording, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "get", id)
	}
	return rec, nil
}

// Update changes the editable text fields. The audio URL and key are never touched.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*models.Recording, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid update")
	}

	fields := make(map[string]any, 4)
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.RawTranscription != nil {
		fields["raw_transcription"] = *in.RawTranscription
	}
	if in.PolishedNote != nil {
		fields["polished_note"] = *in.PolishedNote
	}
	if in.MultispeakerOutput != nil {
		fields["multispeaker_output"] = *in.MultispeakerOutput
	}

	rec, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, mapRepoError(err, "update", id)
	}
	return rec, nil
}

// Delete removes the row, then the blob stored under its exact key. Blob
// failures are logged and queued for the janitor rather than returned.
func (s *Service) Delete(ctx context.Context, id uint) error {
	rec, err := s.repo.Delete(ctx, id)
	if err != nil {
		return mapRepoError(err, "delete", id)
	}

	if rec.AudioKey == "" {
		logger := logging.Component("recordings")
		logger.Warn().Uint("recording_id", id).Msg("Recording has no storage key, audio left in place")
		return nil
	}

	s.removeBlob(context.WithoutCancel(ctx), rec.AudioKey, ReasonRecordingDelete)
	return nil
}

func (s *Service) removeBlob(ctx context.Context, key, reason string) {
	logger := logging.Component("recordings")

	err := s.store.Delete(ctx, key)
	if err == nil {
		return
	}

	logger.Error().Err(err).Str("key", key).Str("reason", reason).Msg("Failed to delete audio blob")
	if s.orphans == nil {
		return
	}
	if rerr := s.orphans.Record(ctx, key, reason, err); rerr != nil {
		logger.Error().Err(rerr).Str("key", key).Msg("Failed to record orphaned blob")
	}
}

func mapRepoError(err error, op string, id uint) error {
	if errors.Is(err, ErrRecordingNotFound) {
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "Recording not found").WithDetail("id", id)
	}
	return apperrors.DatabaseError(op, err)
}
