package diagnostics

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
)

// RegisterRoutes registers diagnostic routes on the /api group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/test-upload", TestUpload(deps))
}
