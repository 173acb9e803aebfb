// Package recordings persists saved voice notes: the audio blob in the
// configured store and the metadata row in the relational database.
package recordings

import (
	"context"

	"github.com/killallgit/voicenotes-api/internal/models"
)

// RecordingService defines the operations exposed to the HTTP layer
type RecordingService interface {
	// Save uploads the audio, derives a title and inserts the row
	Save(ctx context.Context, in SaveInput) (*SaveResult, error)

	// List returns recordings newest first
	List(ctx context.Context, limit, offset int) ([]models.Recording, error)

	// Get retrieves a recording by ID
	Get(ctx context.Context, id uint) (*models.Recording, error)

	// Update changes the editable text fields of a recording
	Update(ctx context.Context, id uint, in UpdateInput) (*models.Recording, error)

	// Delete removes the row and then its audio blob
	Delete(ctx context.Context, id uint) error
}

// Repository defines recording persistence
type Repository interface {
	Create(ctx context.Context, rec *models.Recording) error
	GetByID(ctx context.Context, id uint) (*models.Recording, error)
	List(ctx context.Context, limit, offset int) ([]models.Recording, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Recording, error)
	Delete(ctx context.Context, id uint) (*models.Recording, error)
}

// OrphanRecorder remembers blobs whose removal failed so they can be retried later
type OrphanRecorder interface {
	Record(ctx context.Context, key, reason string, cause error) error
}

// TranscriptionData is the client-supplied result of a prior transcription
type TranscriptionData struct {
	RawTranscription   string   `json:"rawTranscription"`
	PolishedNote       string   `json:"polishedNote"`
	MultiSpeakerOutput string   `json:"multiSpeakerOutput"`
	MedicalTopics      []string `json:"medicalTopics"`
	Service            string   `json:"service" validate:"omitempty,oneof=gemini openai_whisper deepgram_nova"`
}

// SaveInput is an audio upload plus its transcription data
type SaveInput struct {
	Audio       []byte
	Filename    string
	ContentType string
	Data        TranscriptionData
}

// SaveResult identifies the stored recording
type SaveResult struct {
	RecordingID uint   `json:"recordingId"`
	AudioURL    string `json:"audioUrl"`
	Title       string `json:"title"`
}

// UpdateInput carries the fields to change; nil fields are left untouched
type UpdateInput struct {
	Title              *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	RawTranscription   *string `json:"raw_transcription,omitempty"`
	PolishedNote       *string `json:"polished_note,omitempty"`
	MultispeakerOutput *string `json:"multispeaker_output,omitempty"`
}

// Empty reports whether no field is set
func (u UpdateInput) Empty() bool {
	return u.Title == nil && u.RawTranscription == nil && u.PolishedNote == nil && u.MultispeakerOutput == nil
}
