// File: services/booking/interface.go
package booking

import (
	"context"
	"time"

	"auralynk/models"
)

// BookingService drives the booking lifecycle:
// pending -> accepted | rejected, accepted -> confirmed via the token flow,
// and removal by cancellation while pending or accepted.
type BookingService interface {
	// Request creates a pending booking for a client against one of the
	// reader's published slots.
	Request(ctx context.Context, clientID, readerID string, selectedTime time.Time) (*models.Booking, error)

	// Accept provisions a video room and transitions pending -> accepted as
	// a single unit; a room failure or a lost slot race leaves the booking
	// pending.
	Accept(ctx context.Context, readerID, bookingID string) (*models.Booking, error)

	// Reject marks the booking rejected; rejected bookings disappear from
	// all active views.
	Reject(ctx context.Context, readerID, bookingID string) error

	// Cancel removes a pending or accepted booking; either participant may
	// cancel.
	Cancel(ctx context.Context, requesterID, bookingID string) error

	// ListForUser returns the user's active bookings decorated with the
	// counterpart display names.
	ListForUser(ctx context.Context, user *models.User) ([]models.BookingView, error)

	// ConsumeToken resolves a confirmation token and idempotently transitions
	// the referenced booking to confirmed.
	ConsumeToken(ctx context.Context, token string) (*models.Booking, error)

	// SessionAccess derives the ephemeral (roomUrl, token) pair for a
	// joinable booking. Never stored; fetched fresh per view.
	SessionAccess(ctx context.Context, requesterID, bookingID string) (*models.SessionAccess, error)
}

// ReminderScheduler enqueues a session reminder to be delivered shortly
// before the session starts.
type ReminderScheduler interface {
	ScheduleSessionReminder(ctx context.Context, booking *models.Booking) error
}
