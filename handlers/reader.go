package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"auralynk/services/schedule"
	"auralynk/services/user"
	"auralynk/utils"
)

// ReaderHandler serves the client-facing reader feed and profiles.
type ReaderHandler struct {
	Schedule schedule.ScheduleService
	Users    user.UserService
}

func NewReaderHandler(sched schedule.ScheduleService, users user.UserService) *ReaderHandler {
	return &ReaderHandler{Schedule: sched, Users: users}
}

// FeedHandler lists every reader with at least one bookable slot.
func (h *ReaderHandler) FeedHandler(c *gin.Context) {
	items, err := h.Schedule.Feed(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("reader feed failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load readers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"readers": items})
}

// GetReaderHandler returns one reader's public profile together with their
// bookable slots grouped by day.
func (h *ReaderHandler) GetReaderHandler(c *gin.Context) {
	readerID := c.Param("readerID")

	profile, err := h.Users.GetPublicProfile(c.Request.Context(), readerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reader not found"})
			return
		}
		utils.GetLogger().Error("reader profile fetch failed",
			zap.String("readerId", readerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reader"})
		return
	}

	bookable, err := h.Schedule.Bookable(c.Request.Context(), readerID)
	if err != nil {
		if errors.Is(err, schedule.ErrReaderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reader not found"})
			return
		}
		utils.GetLogger().Error("bookable slots fetch failed",
			zap.String("readerId", readerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reader": profile, "bookable": bookable})
}
