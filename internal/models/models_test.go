package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "recordings", Recording{}.TableName())
	assert.Equal(t, "partial_transcripts", PartialTranscript{}.TableName())
	assert.Equal(t, "full_transcripts", FullTranscript{}.TableName())
	assert.Equal(t, "orphaned_blobs", OrphanedBlob{}.TableName())
}

func TestRecording_TopicsForceMedicalFlag(t *testing.T) {
	db := setupTestDB(t)

	rec := &Recording{
		Title:         "Visit",
		AudioURL:      "http://localhost/media/recordings/1-a.webm",
		MedicalTopics: datatypes.JSONSlice[string]{"hypertension"},
		IsMedical:     false,
		Service:       "gemini",
	}
	require.NoError(t, db.Create(rec).Error)

	var loaded Recording
	require.NoError(t, db.First(&loaded, rec.ID).Error)
	assert.True(t, loaded.IsMedical)
	assert.Equal(t, []string{"hypertension"}, loaded.Topics())
}

func TestRecording_NilTopicsStoredAsEmptyList(t *testing.T) {
	db := setupTestDB(t)

	rec := &Recording{Title: "Groceries", AudioURL: "u", Service: "openai_whisper"}
	require.NoError(t, db.Create(rec).Error)

	var loaded Recording
	require.NoError(t, db.First(&loaded, rec.ID).Error)
	assert.False(t, loaded.IsMedical)
	assert.Empty(t, loaded.Topics())

	body, err := json.Marshal(loaded)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"medical_topics":[]`)
	assert.NotContains(t, string(body), "audio_key")
}

func TestPartialTranscript_UniqueChunkPerSession(t *testing.T) {
	db := setupTestDB(t)

	text := "hello"
	require.NoError(t, db.Create(&PartialTranscript{SessionID: "s1", ChunkIndex: 0, Transcript: &text}).Error)
	require.NoError(t, db.Create(&PartialTranscript{SessionID: "s2", ChunkIndex: 0}).Error)

	err := db.Create(&PartialTranscript{SessionID: "s1", ChunkIndex: 0}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
