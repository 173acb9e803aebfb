package transcription

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
	transcriptionService "github.com/killallgit/voicenotes-api/internal/services/transcription"
	apperrors "github.com/killallgit/voicenotes-api/pkg/errors"
)

// Transcribe runs the transcription pipeline on an uploaded recording
// @Summary      Transcribe a recording
// @Description  Transcribes the uploaded audio with the selected provider, then polishes the transcript into a
// @Description  markdown note. With enableMedical the note gains a medical section and medicalTopics is filled,
// @Description  from the provider when it reports topics, otherwise from an LLM classification. A polish failure
// @Description  leaves polishedNote empty; a provider failure fails the whole request.
// @Tags         transcription
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio               formData file    true  "Audio file (webm, mp4, mpeg, wav, ogg, m4a, aac), at most 50MB"
// @Param        service             formData string  false "Transcription provider" Enums(gemini, openai_whisper, deepgram_nova) default(gemini)
// @Param        enableMedical       formData boolean false "Extract medical sections and topics"
// @Param        enableMultiSpeaker  formData boolean false "Request speaker-labelled output"
// @Success      200 {object} types.TranscribeResponse
// @Failure      400 {object} types.ErrorResponse "Missing file or unknown service"
// @Failure      413 {object} types.ErrorResponse "File too large"
// @Failure      415 {object} types.ErrorResponse "Unsupported audio format"
// @Failure      429 {object} types.ErrorResponse "Provider quota exceeded"
// @Failure      502 {object} types.ErrorResponse "Provider failure"
// @Failure      503 {object} types.ErrorResponse "Provider not configured"
// @Router       /api/transcribe [post]
func Transcribe(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := providers.DefaultKind
		if raw := c.PostForm("service"); raw != "" {
			parsed, err := providers.ParseKind(raw)
			if err != nil {
				types.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Unknown transcription service").
					WithDetail("service", raw))
				return
			}
			kind = parsed
		}

		audio, err := types.ReadAudio(c, "audio", deps.UploadLimit())
		if err != nil {
			types.SendError(c, err)
			return
		}

		result, err := deps.Transcriber.Transcribe(c.Request.Context(), transcriptionService.Request{
			Audio:              audio,
			Provider:           kind,
			EnableMedical:      types.FormBool(c, "enableMedical"),
			EnableMultiSpeaker: types.FormBool(c, "enableMultiSpeaker"),
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.TranscribeResponse{Success: true, Result: *result})
	}
}
