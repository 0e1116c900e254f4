package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auralynk/services/booking"
	"auralynk/utils"
)

// SessionHandler hands out ephemeral video credentials for joinable bookings.
type SessionHandler struct {
	Service booking.BookingService
}

func NewSessionHandler(svc booking.BookingService) *SessionHandler {
	return &SessionHandler{Service: svc}
}

func (h *SessionHandler) JoinHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID := c.Param("bookingID")

	access, err := h.Service.SessionAccess(c.Request.Context(), userID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrNoRoom), errors.Is(err, booking.ErrNotJoinable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("session access failed",
				zap.String("bookingId", bookingID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open session"})
		}
		return
	}
	c.JSON(http.StatusOK, access)
}
