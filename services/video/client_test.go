package video

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *DailyClient {
	return &DailyClient{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

func TestCreateRoom(t *testing.T) {
	t.Run("returns the provisioned room url", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/rooms", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")

			var body struct {
				Properties roomProperties `json:"properties"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.True(t, body.Properties.EnableChat)
			assert.True(t, body.Properties.StartVideoOff)
			assert.Greater(t, body.Properties.Exp, time.Now().Unix())

			json.NewEncoder(w).Encode(map[string]string{"url": "https://calls.example/xyz"})
		}))
		defer srv.Close()

		url, err := testClient(srv).CreateRoom(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "https://calls.example/xyz", url)
		assert.Equal(t, "Bearer test-key", gotAuth)
	})

	t.Run("provider errors are surfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := testClient(srv).CreateRoom(context.Background())
		assert.Error(t, err)
	})

	t.Run("missing url counts as failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer srv.Close()

		_, err := testClient(srv).CreateRoom(context.Background())
		assert.Error(t, err)
	})
}

func TestFreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/meeting-tokens", r.URL.Path)

		var body struct {
			Properties map[string]interface{} `json:"properties"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "xyz", body.Properties["room_name"])
		assert.Equal(t, false, body.Properties["is_owner"])

		json.NewEncoder(w).Encode(map[string]string{"token": "jwt-like-token"})
	}))
	defer srv.Close()

	token, err := testClient(srv).FreshToken(context.Background(), "xyz")
	require.NoError(t, err)
	assert.Equal(t, "jwt-like-token", token)
}

func TestRoomName(t *testing.T) {
	assert.Equal(t, "xyz", RoomName("https://calls.example/xyz"))
	assert.Equal(t, "", RoomName("https://calls.example"))
	assert.Equal(t, "not a url at all", RoomName("not a url at all"))
}
