// File: services/booking/confirmation.go
package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"auralynk/models"
	"auralynk/utils"
)

// issueConfirmation creates the one-time confirmation token for a freshly
// accepted booking and pushes the link to the client. Failures here never
// undo the accept; the transition is already durable.
func (s *DefaultBookingService) issueConfirmation(ctx context.Context, booking *models.Booking) {
	token := &models.ConfirmationToken{
		ID:        uuid.New().String(),
		BookingID: booking.ID,
		ExpiresAt: s.now().Add(s.TokenTTL),
	}
	if err := s.Tokens.Create(ctx, token); err != nil {
		utils.GetLogger().Error("failed to create confirmation token",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return
	}

	if s.Notify == nil {
		return
	}
	link := fmt.Sprintf("%s/confirm/%s", s.PublicBaseURL, token.ID)
	if err := s.Notify.SendPush(ctx, booking.ClientID, "Booking accepted",
		"Your session was accepted. Open the confirmation link to lock it in.",
		map[string]string{"bookingId": booking.ID, "confirmUrl": link}); err != nil {
		utils.GetLogger().Warn("failed to notify client of acceptance",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
}

// ConsumeToken resolves a confirmation token. Unknown and expired tokens are
// distinct failures; a token whose booking was deleted reports not-found.
// Consumption is idempotent: repeat visits keep the booking confirmed and the
// token is never deleted.
func (s *DefaultBookingService) ConsumeToken(ctx context.Context, tokenID string) (*models.Booking, error) {
	token, err := s.Tokens.GetByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to load confirmation token: %w", err)
	}
	if token.Expired(s.now()) {
		return nil, ErrTokenExpired
	}

	booking, err := s.load(ctx, token.BookingID)
	if err != nil {
		return nil, err
	}

	if err := s.Bookings.Confirm(ctx, booking.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Pending or rejected bookings cannot confirm; render the link
			// invalid rather than crashing the view.
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	booking.Status = models.BookingConfirmed
	return booking, nil
}
