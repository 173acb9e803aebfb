package recordings

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
)

// Delete removes a recording addressed by path id
// @Summary      Delete a recording
// @Description  Deletes the row, then the audio blob under its stored key. A blob that cannot be removed is
// @Description  queued for background cleanup and does not fail the request.
// @Tags         recordings
// @Produce      json
// @Param        id path int true "Recording ID" minimum(1)
// @Success      200 {object} types.MessageResponse
// @Failure      400 {object} types.ErrorResponse "Invalid id"
// @Failure      404 {object} types.ErrorResponse "Recording not found"
// @Router       /api/recordings/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}
		deleteRecording(c, deps, id)
	}
}

// DeleteByQuery removes a recording addressed by the id query parameter
// @Summary      Delete a recording by query
// @Tags         recordings
// @Produce      json
// @Param        id query int true "Recording ID" minimum(1)
// @Success      200 {object} types.MessageResponse
// @Failure      400 {object} types.ErrorResponse "Missing or invalid id"
// @Failure      404 {object} types.ErrorResponse "Recording not found"
// @Router       /api/recordings [delete]
func DeleteByQuery(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintQuery(c, "id")
		if !ok {
			return
		}
		deleteRecording(c, deps, id)
	}
}

func deleteRecording(c *gin.Context, deps *types.Dependencies, id uint) {
	if err := deps.Recordings.Delete(c.Request.Context(), id); err != nil {
		types.SendError(c, err)
		return
	}
	types.SendSuccess(c, types.MessageResponse{Success: true, Message: "Recording deleted"})
}
