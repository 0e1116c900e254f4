// File: services/user/crud.go
package user

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"auralynk/models"
)

// ErrUserNotFound is returned for lookups of missing or deleted accounts.
var ErrUserNotFound = errors.New("user not found")

func (s *DefaultUserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	rec, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return rec, nil
}

func (s *DefaultUserService) GetPublicProfile(ctx context.Context, userID string) (*models.PublicProfile, error) {
	rec, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := rec.Public()
	return &profile, nil
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.User, error) {
	updated, err := s.Repo.UpdateProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return updated, nil
}

func (s *DefaultUserService) SetFCMToken(ctx context.Context, userID, token string) error {
	if err := s.Repo.SetFCMToken(ctx, userID, token); err != nil {
		return fmt.Errorf("failed to store FCM token: %w", err)
	}
	return nil
}
