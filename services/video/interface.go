// File: services/video/interface.go
package video

import "context"

// RoomService talks to the hosted video provider. Rooms are ephemeral and
// tokens are scoped to a room with a short expiry; both calls are safe to
// retry.
type RoomService interface {
	// CreateRoom provisions a new video room and returns its URL.
	CreateRoom(ctx context.Context) (string, error)
	// FreshToken mints a meeting token for the named room.
	FreshToken(ctx context.Context, roomName string) (string, error)
}
