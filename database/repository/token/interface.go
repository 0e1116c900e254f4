// File: database/repository/token/interface.go
package tokenRepo

import (
	"context"

	"auralynk/models"
)

// TokenRepository defines persistence operations for confirmation tokens.
// Tokens are write-once; consumption checks expiry but never deletes.
type TokenRepository interface {
	Create(ctx context.Context, token *models.ConfirmationToken) error
	GetByID(ctx context.Context, id string) (*models.ConfirmationToken, error)
	EnsureIndexes(ctx context.Context) error
}
