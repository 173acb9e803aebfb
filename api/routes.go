package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/voicenotes-api/api/diagnostics"
	"github.com/killallgit/voicenotes-api/api/health"
	"github.com/killallgit/voicenotes-api/api/recordings"
	"github.com/killallgit/voicenotes-api/api/sessions"
	"github.com/killallgit/voicenotes-api/api/transcription"
	"github.com/killallgit/voicenotes-api/api/types"
	"github.com/killallgit/voicenotes-api/api/version"
	_ "github.com/killallgit/voicenotes-api/docs/swagger"
)

// MediaPath serves blobs of the local storage backend
const MediaPath = "/media"

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine)

	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.MediaRoot != "" {
		engine.Static(MediaPath, deps.MediaRoot)
	}

	engine.NoRoute(NotFoundHandler())

	apiGroup := engine.Group("/api")

	// Transcription calls paid providers and the note LLM (2 req/s, burst of 5)
	if deps.Transcriber != nil {
		transcribeGroup := apiGroup.Group("")
		transcribeGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 2, 5))
		transcription.RegisterRoutes(transcribeGroup, deps)
	}

	// Session chunks arrive every few seconds per recorder (5 req/s, burst of 10)
	if deps.Sessions != nil {
		sessionGroup := apiGroup.Group("/sessions")
		sessionGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
		sessions.RegisterRoutes(sessionGroup, deps)
	}

	// Recording CRUD (10 req/s, burst of 20)
	if deps.Recordings != nil {
		recordingGroup := apiGroup.Group("")
		recordingGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
		recordings.RegisterRoutes(recordingGroup, deps)
	}

	diagnosticsGroup := apiGroup.Group("")
	diagnosticsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 2, 5))
	diagnostics.RegisterRoutes(diagnosticsGroup, deps)

	return nil
}
