package recordings

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
)

// RegisterRoutes registers recording routes on the /api group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/save-recording", Save(deps))

	router.GET("/recordings", List(deps))
	router.DELETE("/recordings", DeleteByQuery(deps))
	router.GET("/recordings/:id", Get(deps))
	router.PUT("/recordings/:id", Update(deps))
	router.DELETE("/recordings/:id", Delete(deps))
}
