package sessions

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
	sessionsService "github.com/killallgit/voicenotes-api/internal/services/sessions"
)

// Finalize stores the full transcript of a session
// @Summary      Finalize a session
// @Description  Upserts the session transcript. Without fullText the chunk transcripts are joined in chunk order;
// @Description  without sttModel the model of the last chunk is used. Finalizing again overwrites the transcript.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        sessionId path string                         true  "Session ID"
// @Param        request   body sessionsService.FinalizeInput  false "Transcript overrides"
// @Success      200 {object} types.TranscriptResponse
// @Failure      400 {object} types.ErrorResponse "Malformed body"
// @Router       /api/sessions/{sessionId}/finalize [post]
func Finalize(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in sessionsService.FinalizeInput
		if c.Request.ContentLength != 0 {
			if !types.BindJSONOrError(c, &in) {
				return
			}
		}
		in.SessionID = c.Param("sessionId")

		full, err := deps.Sessions.Finalize(c.Request.Context(), in)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.TranscriptResponse{Success: true, Transcript: full})
	}
}

// GetTranscript returns the finalized transcript of a session
// @Summary      Get a session transcript
// @Tags         sessions
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200 {object} types.TranscriptResponse
// @Failure      404 {object} types.ErrorResponse "Session not finalized"
// @Router       /api/sessions/{sessionId}/transcript [get]
func GetTranscript(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		full, err := deps.Sessions.GetFull(c.Request.Context(), c.Param("sessionId"))
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.TranscriptResponse{Success: true, Transcript: full})
	}
}
