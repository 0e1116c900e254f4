// File: services/booking/errors.go
package booking

import "errors"

var (
	// ErrBookingNotFound is returned when the referenced booking no longer
	// exists (deleted or never created).
	ErrBookingNotFound = errors.New("booking not found")
	// ErrNotParticipant is returned when the requester is neither the client
	// nor the reader on the booking.
	ErrNotParticipant = errors.New("not a participant of this booking")
	// ErrNotPending is returned by transitions that require a pending booking.
	ErrNotPending = errors.New("booking is not pending")
	// ErrNotCancellable is returned when a booking is past the point of
	// cancellation (confirmed or rejected).
	ErrNotCancellable = errors.New("booking can no longer be cancelled")
	// ErrSlotTaken is returned when another accepted booking already occupies
	// the requested slot.
	ErrSlotTaken = errors.New("slot is no longer available")
	// ErrSlotUnavailable is returned when a requested time is not in the
	// reader's published availability.
	ErrSlotUnavailable = errors.New("requested time is not offered by this reader")
	// ErrRoomCreation is returned when the video provider failed to create a
	// room; the accept transition must not proceed.
	ErrRoomCreation = errors.New("video room creation failed")
	// ErrNoRoom is returned when a session is requested for a booking that
	// has no room attached yet.
	ErrNoRoom = errors.New("no room attached to this booking")
	// ErrNotJoinable is returned outside the join window.
	ErrNotJoinable = errors.New("session is not joinable at this time")
	// ErrTokenInvalid is returned for unknown confirmation tokens.
	ErrTokenInvalid = errors.New("invalid confirmation token")
	// ErrTokenExpired is returned for known but expired confirmation tokens;
	// callers render it distinctly from ErrTokenInvalid.
	ErrTokenExpired = errors.New("confirmation token expired")
)
