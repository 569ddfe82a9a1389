package api

import (
	"context"  // Context for Redis operations and deadlines
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"github.com/cashcashapp/cashcash-backend/internal/domain"
	"github.com/cashcashapp/cashcash-backend/internal/lottery"
	"github.com/cashcashapp/cashcash-backend/internal/utils"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// transactionHistoryLimit caps the ledger page returned to clients
const transactionHistoryLimit = 50

// AmountRequest is the deposit/withdrawal payload
type AmountRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"` // Amount in currency units
}

// DepositHandler credits the authenticated user's wallet
func DepositHandler(svc *lottery.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req AmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), opTimeout)
		defer cancel()
		newBalance, err := svc.Deposit(ctx, userID, req.Amount)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateWalletCache(rdb, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Deposit successful", "new_balance": newBalance})
	}
}

// WithdrawHandler debits the authenticated user's wallet
func WithdrawHandler(svc *lottery.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req AmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), opTimeout)
		defer cancel()
		newBalance, err := svc.Withdraw(ctx, userID, req.Amount)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateWalletCache(rdb, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Withdrawal successful", "new_balance": newBalance})
	}
}

// TransactionsHandler returns the authenticated user's newest ledger entries
func TransactionsHandler(svc *lottery.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()
		cacheKey := "txhistory:user:" + strconv.Itoa(int(userID))
		var cached []domain.Transaction
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"transactions": cached, "cached": true})
			return
		}
		entries, err := svc.Transactions(c.Request.Context(), userID, transactionHistoryLimit)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, entries, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"transactions": entries, "cached": false})
	}
}

// invalidateWalletCache drops the entries a wallet mutation makes stale
func invalidateWalletCache(rdb *redis.Client, userID uint) {
	ctx := context.Background()
	_ = utils.DeleteCache(ctx, rdb, "txhistory:user:"+strconv.Itoa(int(userID)))
}
