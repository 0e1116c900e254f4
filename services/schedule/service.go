// File: services/schedule/service.go
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "auralynk/database/repository/booking"
	userRepo "auralynk/database/repository/user"
	"auralynk/models"
	"auralynk/utils"
)

// Slot validation errors.
var (
	ErrReaderNotFound = errors.New("reader not found")
	ErrPastSlot       = errors.New("slot is in the past")
	ErrDuplicateSlot  = errors.New("slot already published")
)

// DefaultScheduleService is the production implementation.
type DefaultScheduleService struct {
	Users    userRepo.UserRepository
	Bookings bookingRepo.BookingRepository
	Live     Publisher
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultScheduleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultScheduleService) publish(ctx context.Context, readerID string) {
	if s.Live == nil {
		return
	}
	if err := s.Live.PublishReconcile(ctx, readerID); err != nil {
		utils.GetLogger().Warn("failed to publish reconcile event",
			zap.String("readerId", readerID), zap.Error(err))
	}
}

func (s *DefaultScheduleService) AddSlot(ctx context.Context, readerID string, slot time.Time) ([]time.Time, error) {
	slot = slot.UTC().Truncate(time.Second)
	if !slot.After(s.now()) {
		return nil, ErrPastSlot
	}

	reader, err := s.Users.GetByID(ctx, readerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReaderNotFound
		}
		return nil, fmt.Errorf("failed to load reader: %w", err)
	}
	for _, existing := range reader.AvailableSlots {
		if existing.Equal(slot) {
			return nil, ErrDuplicateSlot
		}
	}

	if err := s.Users.AddAvailableSlot(ctx, readerID, slot); err != nil {
		return nil, fmt.Errorf("failed to add slot: %w", err)
	}
	s.publish(ctx, readerID)
	return s.OwnSlots(ctx, readerID)
}

func (s *DefaultScheduleService) RemoveSlot(ctx context.Context, readerID string, slot time.Time) ([]time.Time, error) {
	if err := s.Users.RemoveAvailableSlot(ctx, readerID, slot.UTC().Truncate(time.Second)); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReaderNotFound
		}
		return nil, fmt.Errorf("failed to remove slot: %w", err)
	}
	s.publish(ctx, readerID)
	return s.OwnSlots(ctx, readerID)
}

// OwnSlots returns the reader's future slots. When pruning dropped expired
// entries the cleaned list is written back, so stale entries never persist.
func (s *DefaultScheduleService) OwnSlots(ctx context.Context, readerID string) ([]time.Time, error) {
	reader, err := s.Users.GetByID(ctx, readerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReaderNotFound
		}
		return nil, fmt.Errorf("failed to load reader: %w", err)
	}
	return s.pruned(ctx, reader), nil
}

func (s *DefaultScheduleService) pruned(ctx context.Context, reader *models.User) []time.Time {
	cleaned := PruneExpired(reader.AvailableSlots, s.now())
	if len(cleaned) != len(reader.AvailableSlots) {
		if err := s.Users.ReplaceAvailableSlots(ctx, reader.ID, cleaned); err != nil {
			utils.GetLogger().Warn("failed to persist pruned availability",
				zap.String("readerId", reader.ID), zap.Error(err))
		}
	}
	return cleaned
}

func (s *DefaultScheduleService) Bookable(ctx context.Context, readerID string) ([]DayGroup, error) {
	reader, err := s.Users.GetByID(ctx, readerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReaderNotFound
		}
		return nil, fmt.Errorf("failed to load reader: %w", err)
	}
	return s.bookableFor(ctx, reader)
}

func (s *DefaultScheduleService) bookableFor(ctx context.Context, reader *models.User) ([]DayGroup, error) {
	slots := s.pruned(ctx, reader)
	taken, err := s.Bookings.AcceptedTimesByReader(ctx, reader.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accepted bookings: %w", err)
	}
	return GroupByDay(slots, taken, s.now()), nil
}

func (s *DefaultScheduleService) Feed(ctx context.Context) ([]ReaderFeedItem, error) {
	readers, err := s.Users.ListReaders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list readers: %w", err)
	}

	items := make([]ReaderFeedItem, 0, len(readers))
	for i := range readers {
		reader := &readers[i]
		bookable, err := s.bookableFor(ctx, reader)
		if err != nil {
			return nil, err
		}
		if len(bookable) == 0 {
			continue
		}
		items = append(items, ReaderFeedItem{Reader: reader.Public(), Bookable: bookable})
	}
	return items, nil
}

// PruneAllReaders is the periodic sweep run by the background worker.
func (s *DefaultScheduleService) PruneAllReaders(ctx context.Context) error {
	ids, err := s.Users.ListReaderIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list readers for prune: %w", err)
	}

	for _, id := range ids {
		reader, err := s.Users.GetByID(ctx, id)
		if err != nil {
			utils.GetLogger().Warn("prune: failed to load reader",
				zap.String("readerId", id), zap.Error(err))
			continue
		}
		cleaned := PruneExpired(reader.AvailableSlots, s.now())
		if len(cleaned) == len(reader.AvailableSlots) {
			continue
		}
		if err := s.Users.ReplaceAvailableSlots(ctx, id, cleaned); err != nil {
			utils.GetLogger().Warn("prune: failed to persist availability",
				zap.String("readerId", id), zap.Error(err))
			continue
		}
		s.publish(ctx, id)
	}
	return nil
}
