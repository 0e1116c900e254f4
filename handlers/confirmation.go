package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auralynk/services/booking"
	"auralynk/utils"
)

// ConfirmationHandler resolves the confirmation links delivered to clients
// after a reader accepts. The route is unauthenticated; the token itself is
// the credential.
type ConfirmationHandler struct {
	Service booking.BookingService
}

func NewConfirmationHandler(svc booking.BookingService) *ConfirmationHandler {
	return &ConfirmationHandler{Service: svc}
}

func (h *ConfirmationHandler) ConfirmHandler(c *gin.Context) {
	token := c.Param("token")

	b, err := h.Service.ConsumeToken(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrTokenInvalid):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrTokenExpired):
			c.JSON(http.StatusGone, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking no longer exists"})
		default:
			utils.GetLogger().Error("confirmation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm booking"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking confirmed", "booking": b})
}
