package models

import "time"

// ConfirmationToken is a one-time link granting access to a confirmed session.
// Tokens are not deleted on use; expiry alone invalidates them.
type ConfirmationToken struct {
	ID        string    `bson:"id" json:"id"` // opaque token string
	BookingID string    `bson:"bookingId" json:"bookingId"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *ConfirmationToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
