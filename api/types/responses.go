package types

import (
	"github.com/killallgit/voicenotes-api/internal/models"
	"github.com/killallgit/voicenotes-api/internal/services/transcription"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool                   `json:"success" example:"false"`
	Error   string                 `json:"error" example:"File too large. Maximum size is 50MB."`
	Code    string                 `json:"code,omitempty" example:"FILE_TOO_LARGE"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// TranscribeResponse wraps the pipeline result
type TranscribeResponse struct {
	Success bool `json:"success" example:"true"`
	transcription.Result
}

// SaveRecordingResponse identifies a stored recording
type SaveRecordingResponse struct {
	Success     bool   `json:"success" example:"true"`
	RecordingID uint   `json:"recordingId" example:"42"`
	AudioURL    string `json:"audioUrl" example:"http://localhost:8080/media/recordings/1718000000000-visit.webm"`
	Title       string `json:"title" example:"Follow-up visit"`
}

// RecordingsResponse is one page of recordings, newest first
type RecordingsResponse struct {
	Success    bool               `json:"success" example:"true"`
	Recordings []models.Recording `json:"recordings"`
	Count      int                `json:"count" example:"1"`
	Limit      int                `json:"limit" example:"50"`
	Offset     int                `json:"offset" example:"0"`
}

// RecordingResponse wraps a single recording
type RecordingResponse struct {
	Success   bool              `json:"success" example:"true"`
	Recording *models.Recording `json:"recording"`
}

// MessageResponse acknowledges an operation without a payload
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Recording deleted"`
}

// ChunkResponse wraps a stored session chunk
type ChunkResponse struct {
	Success bool                      `json:"success" example:"true"`
	Chunk   *models.PartialTranscript `json:"chunk"`
}

// ChunksResponse lists the chunks of a session in chunk order
type ChunksResponse struct {
	Success   bool                       `json:"success" example:"true"`
	SessionID string                     `json:"sessionId" example:"9f1c2d"`
	Chunks    []models.PartialTranscript `json:"chunks"`
	Count     int                        `json:"count" example:"3"`
}

// TranscriptResponse wraps a finalized session transcript
type TranscriptResponse struct {
	Success    bool                   `json:"success" example:"true"`
	Transcript *models.FullTranscript `json:"transcript"`
}

// TestUploadResponse describes an uploaded file without storing it
type TestUploadResponse struct {
	Success      bool   `json:"success" example:"true"`
	Filename     string `json:"filename" example:"memo.webm"`
	Size         int    `json:"size" example:"48213"`
	DeclaredType string `json:"declaredType" example:"audio/webm;codecs=opus"`
	DetectedType string `json:"detectedType" example:"audio/webm"`
	Accepted     bool   `json:"accepted" example:"true"`
	HeaderHex    string `json:"headerHex" example:"1a45dfa3a3428681"`
}
