package api

import (
	"context"  // Context for Redis operations and deadlines
	"fmt"      // Message formatting
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"github.com/cashcashapp/cashcash-backend/internal/lottery"
	"github.com/cashcashapp/cashcash-backend/internal/utils"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// ParticipateRequest is the join payload
type ParticipateRequest struct {
	CityID string `json:"city_id" binding:"required"` // Target city
}

// ScanQRRequest is the redemption payload
type ScanQRRequest struct {
	CityID    string   `json:"city_id" binding:"required"` // Target city
	QRCode    string   `json:"qr_code" binding:"required"` // Presented secret
	Latitude  *float64 `json:"latitude,omitempty"`         // Optional scan location
	Longitude *float64 `json:"longitude,omitempty"`        // Optional scan location
}

// ParticipateHandler enters the authenticated user into a city's weekly cycle
func ParticipateHandler(svc *lottery.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ParticipateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), opTimeout)
		defer cancel()
		newBalance, err := svc.Join(ctx, userID, req.CityID)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateLotteryCache(rdb, userID)
		c.JSON(http.StatusOK, gin.H{
			"message":     "Participation registered",
			"new_balance": newBalance,
		})
	}
}

// ScanQRHandler redeems a city's pot against a presented QR secret
func ScanQRHandler(svc *lottery.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ScanQRRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Location is recorded for the audit log only; the QR secret is the
		// actual proof of presence.
		if req.Latitude != nil && req.Longitude != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":   userID,
				"city_id":   req.CityID,
				"latitude":  *req.Latitude,
				"longitude": *req.Longitude,
			}).Info("Scan location")
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), opTimeout)
		defer cancel()
		amountWon, newBalance, err := svc.Redeem(ctx, userID, req.CityID, req.QRCode)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateLotteryCache(rdb, userID)
		c.JSON(http.StatusOK, gin.H{
			"message":     fmt.Sprintf("Congratulations, you won %.2f!", amountWon),
			"amount_won":  amountWon,
			"new_balance": newBalance,
		})
	}
}

// ListCitiesHandler returns active cities annotated for the authenticated user
func ListCitiesHandler(svc *lottery.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()
		cacheKey := "cities:user:" + strconv.Itoa(int(userID))
		var cached []lottery.CityView
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"cities": cached, "cached": true})
			return
		}
		cities, err := svc.ListCities(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, cities, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"cities": cities, "cached": false})
	}
}

// invalidateLotteryCache drops the cache entries a join or redemption makes
// stale: the user's city list, their ledger history and the global stats.
// Other users' city annotations age out with the TTL.
func invalidateLotteryCache(rdb *redis.Client, userID uint) {
	ctx := context.Background()
	_ = utils.DeleteCache(ctx, rdb, "cities:user:"+strconv.Itoa(int(userID)))
	_ = utils.DeleteCache(ctx, rdb, "txhistory:user:"+strconv.Itoa(int(userID)))
	_ = utils.DeleteCache(ctx, rdb, "stats:global")
}
