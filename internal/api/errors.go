package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cashcashapp/cashcash-backend/internal/lottery"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// opTimeout is the deadline attached to every engine operation. Exceeding it
// surfaces as a retryable deadline_exceeded, distinct from business errors.
const opTimeout = 5 * time.Second

// respondError maps engine errors to a machine-readable kind plus a
// human-readable message. Business errors become 4xx; storage failures are
// logged and become an opaque 500.
func respondError(c *gin.Context, err error) {
	var status int
	var kind string
	switch {
	case errors.Is(err, lottery.ErrCityNotFound), errors.Is(err, lottery.ErrUserNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, lottery.ErrInsufficientFunds):
		status, kind = http.StatusBadRequest, "insufficient_funds"
	case errors.Is(err, lottery.ErrAlreadyParticipating):
		status, kind = http.StatusBadRequest, "already_participating"
	case errors.Is(err, lottery.ErrNotParticipating):
		status, kind = http.StatusBadRequest, "not_participating"
	case errors.Is(err, lottery.ErrInvalidCode):
		status, kind = http.StatusBadRequest, "invalid_code"
	case errors.Is(err, lottery.ErrInvalidAmount):
		status, kind = http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, lottery.ErrConflict):
		status, kind = http.StatusConflict, "conflict"
	case errors.Is(err, context.DeadlineExceeded):
		status, kind = http.StatusGatewayTimeout, "deadline_exceeded"
	default:
		logrus.WithField("error", err.Error()).Error("Unexpected engine failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": kind, "message": err.Error()})
}

// currentUserID reads the user ID stored by the JWT middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
