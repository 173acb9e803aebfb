package types

import (
	"github.com/killallgit/voicenotes-api/internal/database"
	"github.com/killallgit/voicenotes-api/internal/services/blobstore"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
	"github.com/killallgit/voicenotes-api/internal/services/recordings"
	"github.com/killallgit/voicenotes-api/internal/services/sessions"
	"github.com/killallgit/voicenotes-api/internal/services/transcription"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB            *database.DB
	Registry      *providers.Registry
	Transcriber   transcription.TranscriptionService
	Recordings    recordings.RecordingService
	Sessions      sessions.SessionService
	Storage       blobstore.Store
	MaxUploadSize int64

	// MediaRoot is served under /media when blobs live on local disk
	MediaRoot string
}

// UploadLimit returns the configured upload ceiling or the default
func (d *Dependencies) UploadLimit() int64 {
	if d == nil || d.MaxUploadSize <= 0 {
		return transcription.MaxAudioSize
	}
	return d.MaxUploadSize
}
