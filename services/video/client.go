// File: services/video/client.go
package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"auralynk/config"
)

// roomLifetime bounds how long a provisioned room stays open.
const roomLifetime = time.Hour

// DailyClient implements RoomService against a Daily-compatible REST API.
type DailyClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewDailyClient builds a client from the loaded configuration. The 10s
// timeout keeps a stuck provider from hanging the accept flow.
func NewDailyClient() *DailyClient {
	return &DailyClient{
		BaseURL: config.AppConfig.VideoAPIBaseURL,
		APIKey:  config.AppConfig.VideoAPIKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type roomProperties struct {
	EnableChat    bool  `json:"enable_chat"`
	StartVideoOff bool  `json:"start_video_off"`
	StartAudioOff bool  `json:"start_audio_off"`
	Exp           int64 `json:"exp"`
}

func (c *DailyClient) CreateRoom(ctx context.Context) (string, error) {
	body := map[string]interface{}{
		"properties": roomProperties{
			EnableChat:    true,
			StartVideoOff: true,
			StartAudioOff: true,
			Exp:           time.Now().Add(roomLifetime).Unix(),
		},
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.post(ctx, "/rooms", body, &resp); err != nil {
		return "", fmt.Errorf("room creation failed: %w", err)
	}
	if resp.URL == "" {
		return "", fmt.Errorf("room creation failed: provider returned no url")
	}
	return resp.URL, nil
}

func (c *DailyClient) FreshToken(ctx context.Context, roomName string) (string, error) {
	body := map[string]interface{}{
		"properties": map[string]interface{}{
			"room_name": roomName,
			"is_owner":  false,
			"exp":       time.Now().Add(roomLifetime).Unix(),
		},
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/meeting-tokens", body, &resp); err != nil {
		return "", fmt.Errorf("token creation failed: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("token creation failed: provider returned no token")
	}
	return resp.Token, nil
}

func (c *DailyClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}

// RoomName extracts the room name from a room URL; the token endpoint is
// keyed by name rather than URL.
func RoomName(roomURL string) string {
	u, err := url.Parse(roomURL)
	if err != nil {
		return roomURL
	}
	return strings.TrimPrefix(u.Path, "/")
}
