package models

import "time"

// User roles.
const (
	RoleClient = "client"
	RoleReader = "reader"
)

// User represents a platform account: either a client booking sessions or a
// reader publishing availability.
type User struct {
	ID           string      `bson:"id" json:"id"`
	Email        string      `bson:"email" json:"email"`
	PasswordHash string      `bson:"passwordHash" json:"-"`
	Role         string      `bson:"role" json:"role"` // "client" or "reader"
	DisplayName  string      `bson:"displayName" json:"displayName"`
	Bio          string      `bson:"bio" json:"bio"`
	Services     []string    `bson:"services,omitempty" json:"services,omitempty"`
	// AvailableSlots holds a reader's offered session start times. Read paths
	// prune past entries and persist the pruned list back when it changed.
	AvailableSlots []time.Time `bson:"availableSlots,omitempty" json:"availableSlots,omitempty"`
	TokenHash      string      `bson:"tokenHash,omitempty" json:"-"`
	FCMToken       string      `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt      time.Time   `bson:"createdAt" json:"createdAt"`
}

// IsReader reports whether the user publishes availability.
func (u *User) IsReader() bool {
	return u.Role == RoleReader
}

// PublicProfile is the reader view exposed to unauthenticated visitors.
type PublicProfile struct {
	ID          string   `json:"id"`
	Role        string   `json:"role"`
	DisplayName string   `json:"displayName"`
	Bio         string   `json:"bio"`
	Services    []string `json:"services,omitempty"`
}

// Public strips credentials and private fields from a user record.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		Services:    u.Services,
	}
}

// ProfileUpdate carries the merge-style profile edit payload.
type ProfileUpdate struct {
	DisplayName *string   `json:"displayName,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Services    *[]string `json:"services,omitempty"`
}
