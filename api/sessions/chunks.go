package sessions

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
	sessionsService "github.com/killallgit/voicenotes-api/internal/services/sessions"
	apperrors "github.com/killallgit/voicenotes-api/pkg/errors"
)

// PostChunk transcribes one chunk of a streaming session
// @Summary      Add a session chunk
// @Description  Transcribes one audio chunk and stores it under (sessionId, chunkIndex). A provider failure still
// @Description  stores the chunk with a null transcript. Re-sending an existing index returns 409.
// @Tags         sessions
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionId          path     string  true  "Session ID"
// @Param        audio              formData file    true  "Audio chunk"
// @Param        chunkIndex         formData int     true  "Zero-based chunk position" minimum(0)
// @Param        startTimeSec       formData number  false "Chunk start offset in seconds" minimum(0)
// @Param        service            formData string  false "Transcription provider" Enums(gemini, openai_whisper, deepgram_nova) default(gemini)
// @Param        enableMultiSpeaker formData boolean false "Request speaker-labelled output"
// @Success      201 {object} types.ChunkResponse
// @Failure      400 {object} types.ErrorResponse "Invalid chunk fields"
// @Failure      409 {object} types.ErrorResponse "Chunk already stored"
// @Failure      413 {object} types.ErrorResponse "File too large"
// @Router       /api/sessions/{sessionId}/chunks [post]
func PostChunk(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")

		kind, err := providers.ParseKind(c.PostForm("service"))
		if err != nil {
			types.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Unknown transcription service"))
			return
		}

		rawIndex := strings.TrimSpace(c.PostForm("chunkIndex"))
		if rawIndex == "" {
			types.SendError(c, apperrors.MissingFieldError("chunkIndex"))
			return
		}
		index, err := strconv.Atoi(rawIndex)
		if err != nil {
			types.SendError(c, apperrors.ValidationError("chunkIndex", "must be an integer"))
			return
		}

		var start float64
		if raw := strings.TrimSpace(c.PostForm("startTimeSec")); raw != "" {
			start, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				types.SendError(c, apperrors.ValidationError("startTimeSec", "must be a number"))
				return
			}
		}

		audio, err := types.ReadAudio(c, "audio", deps.UploadLimit())
		if err != nil {
			types.SendError(c, err)
			return
		}

		chunk, err := deps.Sessions.IngestChunk(c.Request.Context(), sessionsService.ChunkInput{
			SessionID:    sessionID,
			ChunkIndex:   index,
			StartTimeSec: start,
			Audio:        audio,
			Provider:     kind,
			MultiSpeaker: types.FormBool(c, "enableMultiSpeaker"),
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, types.ChunkResponse{Success: true, Chunk: chunk})
	}
}

// ListChunks returns the chunks of a session
// @Summary      List session chunks
// @Description  Returns the stored chunks of a session ordered by chunk index. Unknown sessions return an empty list.
// @Tags         sessions
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200 {object} types.ChunksResponse
// @Router       /api/sessions/{sessionId}/chunks [get]
func ListChunks(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")

		chunks, err := deps.Sessions.ListChunks(c.Request.Context(), sessionID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.ChunksResponse{
			Success:   true,
			SessionID: sessionID,
			Chunks:    chunks,
			Count:     len(chunks),
		})
	}
}
