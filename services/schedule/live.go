// File: services/schedule/live.go
package schedule

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"auralynk/utils"
)

// LiveSnapshot is the message pushed to subscribed viewers. Every push is a
// full replacement snapshot of the reader's bookable set, never a delta.
type LiveSnapshot struct {
	ReaderID string     `json:"readerId"`
	Bookable []DayGroup `json:"bookable"`
}

// Hub tracks websocket viewers per reader and re-derives snapshots whenever a
// reconcile event arrives on the Redis channel.
type Hub struct {
	Svc  ScheduleService
	Live *redis.Client

	mu      sync.Mutex
	viewers map[string]map[*websocket.Conn]struct{}
}

func NewHub(svc ScheduleService, live *redis.Client) *Hub {
	return &Hub{
		Svc:     svc,
		Live:    live,
		viewers: make(map[string]map[*websocket.Conn]struct{}),
	}
}

// Subscribe registers a viewer for one reader, pushes the initial snapshot,
// and returns a disposer that must be invoked exactly once on view exit.
func (h *Hub) Subscribe(ctx context.Context, readerID string, conn *websocket.Conn) (func(), error) {
	if err := h.push(ctx, readerID, conn); err != nil {
		return nil, err
	}

	h.mu.Lock()
	set, ok := h.viewers[readerID]
	if !ok {
		set = make(map[*websocket.Conn]struct{})
		h.viewers[readerID] = set
	}
	set[conn] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	dispose := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.viewers[readerID]; ok {
				delete(set, conn)
				if len(set) == 0 {
					delete(h.viewers, readerID)
				}
			}
			h.mu.Unlock()
		})
	}
	return dispose, nil
}

// Run consumes reconcile events until the context is cancelled. Each event
// triggers a fresh snapshot broadcast for the affected reader.
func (h *Hub) Run(ctx context.Context) {
	logger := utils.GetLogger()
	sub := h.Live.PSubscribe(ctx, reconcileChannelPrefix+"*")
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			readerID := msg.Payload
			if err := h.broadcast(ctx, readerID); err != nil {
				logger.Warn("live broadcast failed",
					zap.String("readerId", readerID), zap.Error(err))
			}
		}
	}
}

func (h *Hub) broadcast(ctx context.Context, readerID string) error {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.viewers[readerID]))
	for conn := range h.viewers[readerID] {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	if len(conns) == 0 {
		return nil
	}

	payload, err := h.snapshot(ctx, readerID)
	if err != nil {
		return err
	}

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			// Dead connection: drop it from the viewer set.
			h.mu.Lock()
			if set, ok := h.viewers[readerID]; ok {
				delete(set, conn)
			}
			h.mu.Unlock()
		}
	}
	return nil
}

func (h *Hub) push(ctx context.Context, readerID string, conn *websocket.Conn) error {
	payload, err := h.snapshot(ctx, readerID)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func (h *Hub) snapshot(ctx context.Context, readerID string) ([]byte, error) {
	bookable, err := h.Svc.Bookable(ctx, readerID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(LiveSnapshot{ReaderID: readerID, Bookable: bookable})
}
