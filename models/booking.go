package models

import "time"

// Booking status lifecycle: pending -> accepted | rejected; accepted ->
// confirmed once the client visits the confirmation link. Cancellation removes
// the record entirely instead of using a terminal status.
const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingConfirmed = "confirmed"
	BookingRejected  = "rejected"
)

// Booking represents a single session request from a client to a reader for a
// specific slot.
type Booking struct {
	ID           string    `bson:"id" json:"id"`
	ClientID     string    `bson:"clientId" json:"clientId"`
	ReaderID     string    `bson:"readerId" json:"readerId"`
	SelectedTime time.Time `bson:"selectedTime" json:"selectedTime"`
	Status       string    `bson:"status" json:"status"`
	// RoomURL is set when the reader accepts and a video room has been created.
	RoomURL   string    `bson:"roomUrl,omitempty" json:"roomUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Active reports whether the booking should appear in dashboards.
func (b *Booking) Active() bool {
	return b.Status != BookingRejected
}

// BookingView decorates a booking with the counterpart display names for list
// endpoints.
type BookingView struct {
	Booking    `bson:",inline"`
	ClientName string `json:"clientName,omitempty"`
	ReaderName string `json:"readerName,omitempty"`
}
