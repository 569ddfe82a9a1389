package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"github.com/cashcashapp/cashcash-backend/internal/lottery"
	"github.com/cashcashapp/cashcash-backend/internal/utils"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// CityCreateRequest is the admin payload for registering a city
type CityCreateRequest struct {
	Name     string  `json:"name" binding:"required"` // Display name
	Slug     string  `json:"slug"`                    // Optional; derived from name when empty
	ImageURL *string `json:"image_url"`               // Optional city image
}

// HintRequest is the admin payload for publishing a clue
type HintRequest struct {
	ImageURL string `json:"image_url" binding:"required"` // Clue image reference
}

// CreateCityHandler registers a new city with a fresh redemption secret
func CreateCityHandler(svc *lottery.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CityCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		city, err := svc.CreateCity(c.Request.Context(), req.Name, req.Slug, req.ImageURL)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Slug already exists"})
				return
			}
			respondError(c, err)
			return
		}
		// The secret is returned once at creation so the admin can print the QR code
		c.JSON(http.StatusCreated, gin.H{"city": city, "qr_code_secret": city.QRCodeSecret})
	}
}

// ListCitiesAdminHandler returns every city, including inactive ones
func ListCitiesAdminHandler(svc *lottery.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cities, err := svc.AllCities(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cities": cities})
	}
}

// DeleteCityHandler deactivates a city; history and pots are preserved
func DeleteCityHandler(svc *lottery.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeactivateCity(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		invalidateCityCaches(rdb)
		c.JSON(http.StatusOK, gin.H{"message": "City deactivated"})
	}
}

// PublishHintHandler attaches a clue image to a city and makes it visible
func PublishHintHandler(svc *lottery.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req HintRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := svc.PublishHint(c.Request.Context(), c.Param("id"), req.ImageURL); err != nil {
			respondError(c, err)
			return
		}
		invalidateCityCaches(rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Hint published"})
	}
}

// UnpublishHintHandler hides a city's clue again
func UnpublishHintHandler(svc *lottery.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.UnpublishHint(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		invalidateCityCaches(rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Hint unpublished"})
	}
}

// invalidateCityCaches drops every per-user city listing plus the global stats
func invalidateCityCaches(rdb *redis.Client) {
	ctx := context.Background()
	_ = utils.DeleteCacheByPrefix(ctx, rdb, "cities:user:")
	_ = utils.DeleteCache(ctx, rdb, "stats:global")
}
