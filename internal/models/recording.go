package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultRecordingTitle is used when no usable line exists in the polished note
const DefaultRecordingTitle = "Untitled Recording"

// Recording is a saved voice note: the audio blob reference plus its transcripts
type Recording struct {
	ID                 uint                        `gorm:"primarykey" json:"id"`
	Title              string                      `gorm:"not null" json:"title"`
	RawTranscription   *string                     `gorm:"type:text" json:"raw_transcription"`
	PolishedNote       *string                     `gorm:"type:text" json:"polished_note"`
	MultispeakerOutput *string                     `gorm:"type:text;column:multispeaker_output" json:"multispeaker_output"`
	MedicalTopics      datatypes.JSONSlice[string] `json:"medical_topics"`
	IsMedical          bool                        `gorm:"not null;default:false" json:"is_medical"`
	AudioURL           string                      `gorm:"not null" json:"audio_url"`
	AudioKey           string                      `gorm:"index" json:"-"`
	Service            string                      `gorm:"not null;default:gemini" json:"service"`
	CreatedAt          time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

// TableName specifies the table name for Recording
func (Recording) TableName() string {
	return "recordings"
}

// BeforeSave keeps the medical flag consistent with the topic list
func (r *Recording) BeforeSave(tx *gorm.DB) error {
	if r.MedicalTopics == nil {
		r.MedicalTopics = datatypes.JSONSlice[string]{}
	}
	if len(r.MedicalTopics) > 0 {
		r.IsMedical = true
	}
	return nil
}

// Topics returns the medical topics as a plain, never-nil slice
func (r *Recording) Topics() []string {
	if r.MedicalTopics == nil {
		return []string{}
	}
	return []string(r.MedicalTopics)
}
