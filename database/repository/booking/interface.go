// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"
	"time"

	"auralynk/models"
)

// Accept-path errors surfaced by the conditional status write.
var (
	// ErrNotPending means the booking no longer exists in the pending state.
	ErrNotPending = errors.New("booking is not pending")
	// ErrSlotTaken means another accepted booking already occupies the
	// (reader, selectedTime) pair.
	ErrSlotTaken = errors.New("slot already has an accepted booking")
)

// BookingRepository defines persistence operations for booking records.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// Accept transitions pending -> accepted and attaches the room URL as a
	// single conditional write. It fails with ErrNotPending when the booking
	// left the pending state, and with ErrSlotTaken when the partial unique
	// index detects a competing accepted booking for the same slot.
	Accept(ctx context.Context, id, roomURL string) error

	// Confirm transitions accepted -> confirmed. Confirming an already
	// confirmed booking is a no-op, not an error.
	Confirm(ctx context.Context, id string) error

	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error

	ListByReader(ctx context.Context, readerID string) ([]models.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)

	// AcceptedTimesByReader returns the selected times of all accepted and
	// confirmed bookings for one reader; this is the "taken" set joined
	// against availability.
	AcceptedTimesByReader(ctx context.Context, readerID string) ([]time.Time, error)

	EnsureIndexes(ctx context.Context) error
}
