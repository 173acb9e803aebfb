package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/internal/buildinfo"
)

// Response is the version endpoint body
type Response struct {
	buildinfo.Info
	Description string `json:"description" example:"Voice note transcription and storage API"`
	Status      string `json:"status" example:"running"`
}

// Get handles version requests
// @Summary      Service version
// @Description  Returns the service name, build version and commit.
// @Tags         health
// @Produce      json
// @Success      200 {object} Response
// @Router       / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Info:        buildinfo.Get(),
			Description: "Voice note transcription and storage API",
			Status:      "running",
		})
	}
}
