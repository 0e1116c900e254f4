// File: services/user/signin.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"auralynk/models"
	"auralynk/utils"
)

// ErrInvalidCredentials is deliberately vague about which field was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// authTokenDuration bounds how long a sign-in remains valid.
const authTokenDuration = 24 * time.Hour

func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	rec, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("sign in failed, please try again")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, rec)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: rec.Public(), Token: token}, nil
}

// issueToken signs a JWT, stores its hash on the user record and primes the
// auth cache so the middleware can validate without a DB round trip.
func (s *DefaultUserService) issueToken(ctx context.Context, rec *models.User) (string, error) {
	token, err := utils.GenerateToken(rec.ID, rec.Email, authTokenDuration)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	hash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, rec.ID, hash); err != nil {
		return "", fmt.Errorf("failed to persist token hash: %w", err)
	}

	if cache := utils.GetAuthCacheClient(); cache != nil {
		if err := cache.Set(ctx, utils.AuthCachePrefix+rec.ID, hash, time.Hour).Err(); err != nil {
			utils.GetLogger().Warn("failed to prime auth cache", zap.Error(err))
		}
	}
	return token, nil
}

// RevokeAuthToken clears the stored token hash and evicts the cache entry,
// signing the user out of every device.
func (s *DefaultUserService) RevokeAuthToken(ctx context.Context, userID string) error {
	if err := s.Repo.SetTokenHash(ctx, userID, ""); err != nil {
		return fmt.Errorf("failed to clear token hash: %w", err)
	}
	if cache := utils.GetAuthCacheClient(); cache != nil {
		if err := cache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
			utils.GetLogger().Warn("failed to evict auth cache entry", zap.Error(err))
		}
	}
	return nil
}
