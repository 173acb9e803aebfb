package sessions

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
)

// RegisterRoutes registers session routes; router is the /api/sessions group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/:sessionId/chunks", PostChunk(deps))
	router.GET("/:sessionId/chunks", ListChunks(deps))
	router.POST("/:sessionId/finalize", Finalize(deps))
	router.GET("/:sessionId/transcript", GetTranscript(deps))
}
