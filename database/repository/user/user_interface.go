// File: database/repository/user/user_interface.go
package userRepo

import (
	"context"
	"time"

	"auralynk/models"
)

// UserRepository defines persistence operations for user accounts and reader
// availability.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error

	SetTokenHash(ctx context.Context, id, tokenHash string) error
	SetFCMToken(ctx context.Context, id, token string) error

	AddAvailableSlot(ctx context.Context, readerID string, slot time.Time) error
	RemoveAvailableSlot(ctx context.Context, readerID string, slot time.Time) error
	ReplaceAvailableSlots(ctx context.Context, readerID string, slots []time.Time) error

	ListReaders(ctx context.Context) ([]models.User, error)
	ListReaderIDs(ctx context.Context) ([]string, error)

	EnsureIndexes(ctx context.Context) error
}
