package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"auralynk/services/schedule"
	"auralynk/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// LiveHandler upgrades a viewer connection and streams availability
// snapshots for one reader until the client disconnects.
type LiveHandler struct {
	Hub *schedule.Hub
}

func NewLiveHandler(hub *schedule.Hub) *LiveHandler {
	return &LiveHandler{Hub: hub}
}

func (h *LiveHandler) SubscribeHandler(c *gin.Context) {
	readerID := c.Param("readerID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	dispose, err := h.Hub.Subscribe(c.Request.Context(), readerID, conn)
	if err != nil {
		utils.GetLogger().Error("live subscription failed",
			zap.String("readerId", readerID), zap.Error(err))
		conn.Close()
		return
	}

	// Drain reads to surface the close frame; viewers never send data.
	go func() {
		defer dispose()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
