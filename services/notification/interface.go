// File: services/notification/interface.go
package notification

import "context"

// NotificationService defines methods for sending FCM pushes to users.
type NotificationService interface {
	SendPush(ctx context.Context, userID, title, body string, data map[string]string) error
}
