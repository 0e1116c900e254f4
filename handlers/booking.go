package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auralynk/services/booking"
	"auralynk/services/schedule"
	"auralynk/services/user"
	"auralynk/utils"
)

// BookingHandler covers the booking lifecycle endpoints for both roles.
type BookingHandler struct {
	Service booking.BookingService
	Users   user.UserService
}

func NewBookingHandler(svc booking.BookingService, users user.UserService) *BookingHandler {
	return &BookingHandler{Service: svc, Users: users}
}

func (h *BookingHandler) RequestHandler(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		ReaderID     string    `json:"readerId" binding:"required"`
		SelectedTime time.Time `json:"selectedTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	b, err := h.Service.Request(c.Request.Context(), clientID, req.ReaderID, req.SelectedTime)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrReaderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrSlotUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("booking request failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) ListHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rec, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		utils.GetLogger().Error("booking list failed",
			zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	views, err := h.Service.ListForUser(c.Request.Context(), rec)
	if err != nil {
		utils.GetLogger().Error("booking list failed",
			zap.String("userId", rec.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

func (h *BookingHandler) AcceptHandler(c *gin.Context) {
	readerID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID := c.Param("bookingID")

	b, err := h.Service.Accept(c.Request.Context(), readerID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrRoomCreation):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Video room creation failed, booking left pending"})
		default:
			utils.GetLogger().Error("booking accept failed",
				zap.String("bookingId", bookingID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept booking"})
		}
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) RejectHandler(c *gin.Context) {
	readerID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID := c.Param("bookingID")

	if err := h.Service.Reject(c.Request.Context(), readerID, bookingID); err != nil {
		switch {
		case errors.Is(err, booking.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("booking reject failed",
				zap.String("bookingId", bookingID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject booking"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking rejected"})
}

func (h *BookingHandler) CancelHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID := c.Param("bookingID")

	if err := h.Service.Cancel(c.Request.Context(), userID, bookingID); err != nil {
		switch {
		case errors.Is(err, booking.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrNotCancellable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("booking cancel failed",
				zap.String("bookingId", bookingID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}
