// File: services/schedule/interface.go
package schedule

import (
	"context"
	"time"

	"auralynk/models"
)

// ReaderFeedItem is one reader in the client-facing feed, with the slots
// still bookable for them.
type ReaderFeedItem struct {
	Reader   models.PublicProfile `json:"reader"`
	Bookable []DayGroup           `json:"bookable"`
}

// ScheduleService owns reader availability and the derivation of bookable
// slot sets (availability minus accepted bookings minus past times).
type ScheduleService interface {
	// AddSlot publishes a new availability entry for a reader. Past times and
	// duplicates are rejected.
	AddSlot(ctx context.Context, readerID string, slot time.Time) ([]time.Time, error)
	// RemoveSlot withdraws an availability entry.
	RemoveSlot(ctx context.Context, readerID string, slot time.Time) ([]time.Time, error)
	// OwnSlots lists a reader's future slots, persisting the pruned list back
	// when expired entries were dropped.
	OwnSlots(ctx context.Context, readerID string) ([]time.Time, error)

	// Bookable computes the reconciled slot set for a reader, grouped by day.
	Bookable(ctx context.Context, readerID string) ([]DayGroup, error)
	// Feed returns all readers that still have at least one bookable slot.
	Feed(ctx context.Context) ([]ReaderFeedItem, error)

	// PruneAllReaders sweeps every reader's availability, dropping expired
	// entries and notifying live viewers of readers that changed.
	PruneAllReaders(ctx context.Context) error
}

// Publisher fans a reconcile notification out to live subscribers of one
// reader. Mutating operations call it after every successful write.
type Publisher interface {
	PublishReconcile(ctx context.Context, readerID string) error
}
