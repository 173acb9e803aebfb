package recordings

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
	recordingsService "github.com/killallgit/voicenotes-api/internal/services/recordings"
	apperrors "github.com/killallgit/voicenotes-api/pkg/errors"
)

// Save stores an uploaded recording together with its transcription
// @Summary      Save a recording
// @Description  Uploads the audio to blob storage and inserts the recording row. The title comes from the first
// @Description  heading or meaningful line of the polished note. If the insert fails the uploaded audio is removed.
// @Tags         recordings
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio              formData file   true "Audio file"
// @Param        transcriptionData  formData string true "JSON transcription result returned by /api/transcribe"
// @Success      200 {object} types.SaveRecordingResponse
// @Failure      400 {object} types.ErrorResponse "Missing audio or malformed transcriptionData"
// @Failure      413 {object} types.ErrorResponse "File too large"
// @Failure      500 {object} types.ErrorResponse "Storage or database failure"
// @Router       /api/save-recording [post]
func Save(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		audio, err := types.ReadAudio(c, "audio", deps.UploadLimit())
		if err != nil {
			types.SendError(c, err)
			return
		}

		raw := c.PostForm("transcriptionData")
		if raw == "" {
			types.SendError(c, apperrors.MissingFieldError("transcriptionData"))
			return
		}

		var data recordingsService.TranscriptionData
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			types.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "transcriptionData is not valid JSON"))
			return
		}

		result, err := deps.Recordings.Save(c.Request.Context(), recordingsService.SaveInput{
			Audio:       audio.Data,
			Filename:    audio.Filename,
			ContentType: audio.MIMEType,
			Data:        data,
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.SaveRecordingResponse{
			Success:     true,
			RecordingID: result.RecordingID,
			AudioURL:    result.AudioURL,
			Title:       result.Title,
		})
	}
}
