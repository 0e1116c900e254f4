package models

// SessionAccess is the ephemeral credential pair for joining a video session.
// It is derived fresh per view and never stored.
type SessionAccess struct {
	BookingID string `json:"bookingId"`
	RoomURL   string `json:"roomUrl"`
	Token     string `json:"token"`
}
