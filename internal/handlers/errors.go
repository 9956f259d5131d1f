package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leganyst/slot-booking/internal/booking"
)

func statusOf(be *booking.Error) int {
	switch be {
	case booking.ErrSlotAlreadyBooked:
		return http.StatusConflict
	case booking.ErrBookingNotFound:
		return http.StatusNotFound
	case booking.ErrNotOwner:
		return http.StatusForbidden
	case booking.ErrInvalidPrincipal:
		return http.StatusUnauthorized
	default:
		// Закрытый день, окна, сетка, прошлое, диапазон.
		return http.StatusBadRequest
	}
}

func writeError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var be *booking.Error
	if errors.As(err, &be) {
		c.JSON(statusOf(be), gin.H{"error": be.Code, "message": be.Message})
		return
	}
	logger.Error(op+" failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "internal error"})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": message})
}
