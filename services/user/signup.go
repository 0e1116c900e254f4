// File: services/user/signup.go
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

// Registration failures surfaced directly to the form.
var (
	ErrMissingFields  = errors.New("email, password and role are required")
	ErrInvalidRole    = errors.New("role must be client or reader")
	ErrDuplicateEmail = errors.New("an account with this email already exists")
)

func (s *DefaultUserService) Register(ctx context.Context, email, password, role, displayName string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || role == "" {
		return nil, ErrMissingFields
	}
	if role != models.RoleClient && role != models.RoleReader {
		return nil, ErrInvalidRole
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	newUser := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		DisplayName:  displayName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, newUser); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := s.issueToken(ctx, newUser)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: newUser.Public(), Token: token}, nil
}
