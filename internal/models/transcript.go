package models

import "time"

// PartialTranscript is the transcript of one audio chunk in a streaming session.
// A nil Transcript marks a chunk whose transcription failed.
type PartialTranscript struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SessionID    string    `gorm:"not null;uniqueIndex:idx_partial_session_chunk" json:"session_id"`
	ChunkIndex   int       `gorm:"not null;uniqueIndex:idx_partial_session_chunk" json:"chunk_index"`
	StartTimeSec float64   `gorm:"not null;default:0" json:"start_time_sec"`
	Transcript   *string   `gorm:"type:text" json:"transcript"`
	STTModel     string    `gorm:"column:stt_model" json:"stt_model"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for PartialTranscript
func (PartialTranscript) TableName() string {
	return "partial_transcripts"
}

// FullTranscript is the finalized text of a session, one row per session
type FullTranscript struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	SessionID          string    `gorm:"not null;uniqueIndex" json:"session_id"`
	FullText           *string   `gorm:"type:text" json:"full_text"`
	STTModel           string    `gorm:"column:stt_model" json:"stt_model"`
	DiarizationEnabled bool      `gorm:"not null;default:false" json:"diarization_enabled"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for FullTranscript
func (FullTranscript) TableName() string {
	return "full_transcripts"
}
