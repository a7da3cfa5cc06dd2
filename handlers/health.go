package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterHealth mounts liveness and readiness endpoints. Readiness pings
// the shared Mongo handle with a short timeout; a nil client (local
// memory-store fallback) counts as ready for storage.
func RegisterHealth(r *gin.Engine, client *mongo.Client, started time.Time) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"storage": true}
		if client != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			deps["storage"] = client.Ping(ctx, nil) == nil
		}
		if !deps["storage"] {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(started).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(started).String()})
	})
}
