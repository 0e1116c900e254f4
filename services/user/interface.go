// File: services/user/interface.go
package user

import (
	"context"

	userRepo "auralynk/database/repository/user"
	"auralynk/models"
)

// AuthResponse is returned by registration and sign-in.
type AuthResponse struct {
	User  models.PublicProfile `json:"user"`
	Token string               `json:"token"`
}

// UserService defines business logic for accounts and profiles.
type UserService interface {
	// Register validates registration details and creates a new account.
	Register(ctx context.Context, email, password, role, displayName string) (*AuthResponse, error)
	// Authenticate verifies credentials and returns a fresh token.
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	// RevokeAuthToken signs the user out everywhere.
	RevokeAuthToken(ctx context.Context, userID string) error

	// GetByID retrieves a user record.
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// GetPublicProfile retrieves the public view of a reader or client.
	GetPublicProfile(ctx context.Context, userID string) (*models.PublicProfile, error)
	// UpdateProfile applies a merge-style profile edit.
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.User, error)
	// SetFCMToken stores the device push token.
	SetFCMToken(ctx context.Context, userID, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
