package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
)

const checkTimeout = 3 * time.Second

// Get handles health check requests
// @Summary      Health check
// @Description  Reports database and blob storage reachability and the configured transcription providers.
// @Description  Returns 503 when the database is unreachable; a storage failure only marks the service degraded.
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{} "Service healthy or degraded"
// @Failure      503 {object} map[string]interface{} "Database unreachable"
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()

		status := "ok"
		code := http.StatusOK

		db := getDatabaseStatus(deps)
		if db["status"] == "unhealthy" {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		storage := getStorageStatus(ctx, deps)
		if storage["status"] == "unhealthy" && status == "ok" {
			status = "degraded"
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  db,
			"storage":   storage,
			"providers": getProviders(deps),
		})
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}

	return gin.H{"status": "healthy", "driver": deps.DB.Driver}
}

func getStorageStatus(ctx context.Context, deps *types.Dependencies) gin.H {
	if deps == nil || deps.Storage == nil {
		return gin.H{"status": "not configured"}
	}

	if err := deps.Storage.Ping(ctx); err != nil {
		return gin.H{"status": "unhealthy", "backend": deps.Storage.Backend(), "error": err.Error()}
	}

	return gin.H{"status": "healthy", "backend": deps.Storage.Backend()}
}

func getProviders(deps *types.Dependencies) []string {
	names := []string{}
	if deps == nil || deps.Registry == nil {
		return names
	}
	for _, k := range deps.Registry.Configured() {
		names = append(names, string(k))
	}
	return names
}
