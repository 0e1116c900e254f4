package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auralynk/services/schedule"
	"auralynk/utils"
)

// AvailabilityHandler lets a reader manage their published slots. All routes
// sit behind the reader role check.
type AvailabilityHandler struct {
	Schedule schedule.ScheduleService
}

func NewAvailabilityHandler(sched schedule.ScheduleService) *AvailabilityHandler {
	return &AvailabilityHandler{Schedule: sched}
}

type slotRequest struct {
	Slot time.Time `json:"slot" binding:"required"`
}

func (h *AvailabilityHandler) ListHandler(c *gin.Context) {
	readerID, ok := currentUserID(c)
	if !ok {
		return
	}

	slots, err := h.Schedule.OwnSlots(c.Request.Context(), readerID)
	if err != nil {
		utils.GetLogger().Error("availability fetch failed",
			zap.String("readerId", readerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *AvailabilityHandler) AddHandler(c *gin.Context) {
	readerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	slots, err := h.Schedule.AddSlot(c.Request.Context(), readerID, req.Slot)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrPastSlot), errors.Is(err, schedule.ErrDuplicateSlot):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, schedule.ErrReaderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("slot publish failed",
				zap.String("readerId", readerID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish slot"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slots": slots})
}

func (h *AvailabilityHandler) RemoveHandler(c *gin.Context) {
	readerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	slots, err := h.Schedule.RemoveSlot(c.Request.Context(), readerID, req.Slot)
	if err != nil {
		if errors.Is(err, schedule.ErrReaderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("slot withdrawal failed",
			zap.String("readerId", readerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to withdraw slot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
