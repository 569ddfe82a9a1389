package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"github.com/cashcashapp/cashcash-backend/internal/lottery"
	"github.com/cashcashapp/cashcash-backend/internal/utils"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// GlobalStatsHandler returns the public game summary. No authentication.
func GlobalStatsHandler(svc *lottery.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		var cached lottery.GlobalStats
		found, err := utils.GetCache(ctx, rdb, "stats:global", &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, "stats:global", stats, 30*time.Second)
		c.JSON(http.StatusOK, stats)
	}
}

// HealthHandler reports process liveness
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": "2.0.0"})
	}
}
