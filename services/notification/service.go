// File: services/notification/service.go
package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	userRepo "auralynk/database/repository/user"
	"auralynk/utils"
)

// DefaultNotificationService is the production implementation. With no FCM
// client configured pushes degrade to a logged no-op so booking flows never
// block on messaging.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
}

func (s *DefaultNotificationService) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	client := utils.GetFCMClient()
	if client == nil {
		utils.GetLogger().Debug("push notifications disabled, skipping send",
			zap.String("userId", userID), zap.String("title", title))
		return nil
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load push recipient: %w", err)
	}
	if user.FCMToken == "" {
		utils.GetLogger().Debug("recipient has no FCM token, skipping send",
			zap.String("userId", userID))
		return nil
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := client.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send push: %w", err)
	}
	return nil
}
