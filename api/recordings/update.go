package recordings

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
	recordingsService "github.com/killallgit/voicenotes-api/internal/services/recordings"
	apperrors "github.com/killallgit/voicenotes-api/pkg/errors"
)

// Update edits the text fields of a recording
// @Summary      Update a recording
// @Description  Changes the title or transcripts. The audio URL cannot be changed.
// @Tags         recordings
// @Accept       json
// @Produce      json
// @Param        id      path int                     true "Recording ID" minimum(1)
// @Param        request body recordingsService.UpdateInput  true "Fields to change"
// @Success      200 {object} types.RecordingResponse
// @Failure      400 {object} types.ErrorResponse "Invalid id or body"
// @Failure      404 {object} types.ErrorResponse "Recording not found"
// @Router       /api/recordings/{id} [put]
func Update(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var in recordingsService.UpdateInput
		if !types.BindJSONOrError(c, &in) {
			return
		}
		if in.Empty() {
			types.SendError(c, apperrors.New(apperrors.ErrCodeValidation, "No fields to update"))
			return
		}

		rec, err := deps.Recordings.Update(c.Request.Context(), id, in)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.RecordingResponse{Success: true, Recording: rec})
	}
}
