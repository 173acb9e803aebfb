package recordings

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
	recordingsService "github.com/killallgit/voicenotes-api/internal/services/recordings"
)

// List returns saved recordings, newest first
// @Summary      List recordings
// @Description  Returns a page of recordings ordered by creation time, newest first.
// @Tags         recordings
// @Produce      json
// @Param        limit  query int false "Page size (default 50, max 200)" minimum(1) maximum(200)
// @Param        offset query int false "Rows to skip" minimum(0)
// @Success      200 {object} types.RecordingsResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/recordings [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := recordingsService.NormalizePage(
			types.QueryInt(c, "limit", recordingsService.DefaultListLimit),
			types.QueryInt(c, "offset", 0),
		)

		recs, err := deps.Recordings.List(c.Request.Context(), limit, offset)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.RecordingsResponse{
			Success:    true,
			Recordings: recs,
			Count:      len(recs),
			Limit:      limit,
			Offset:     offset,
		})
	}
}

// Get returns one recording
// @Summary      Get a recording
// @Tags         recordings
// @Produce      json
// @Param        id path int true "Recording ID" minimum(1)
// @Success      200 {object} types.RecordingResponse
// @Failure      400 {object} types.ErrorResponse "Invalid id"
// @Failure      404 {object} types.ErrorResponse "Recording not found"
// @Router       /api/recordings/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		rec, err := deps.Recordings.Get(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.RecordingResponse{Success: true, Recording: rec})
	}
}
