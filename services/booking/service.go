// File: services/booking/service.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "auralynk/database/repository/booking"
	tokenRepo "auralynk/database/repository/token"
	userRepo "auralynk/database/repository/user"
	"auralynk/models"
	"auralynk/services/notification"
	"auralynk/services/schedule"
	"auralynk/services/video"
	"auralynk/utils"
)

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Users     userRepo.UserRepository
	Tokens    tokenRepo.TokenRepository
	Rooms     video.RoomService
	Notify    notification.NotificationService
	Live      schedule.Publisher
	Reminders ReminderScheduler

	// Join window and confirmation link policy, set from config at startup.
	JoinLead  time.Duration
	JoinTrail time.Duration
	TokenTTL  time.Duration
	// PublicBaseURL is used when building confirmation links.
	PublicBaseURL string

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) publish(ctx context.Context, readerID string) {
	if s.Live == nil {
		return
	}
	if err := s.Live.PublishReconcile(ctx, readerID); err != nil {
		utils.GetLogger().Warn("failed to publish reconcile event",
			zap.String("readerId", readerID), zap.Error(err))
	}
}

func (s *DefaultBookingService) Request(ctx context.Context, clientID, readerID string, selectedTime time.Time) (*models.Booking, error) {
	selectedTime = selectedTime.UTC().Truncate(time.Second)
	now := s.now()
	if !selectedTime.After(now) {
		return nil, ErrSlotUnavailable
	}

	reader, err := s.Users.GetByID(ctx, readerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, schedule.ErrReaderNotFound
		}
		return nil, fmt.Errorf("failed to load reader: %w", err)
	}

	offered := false
	for _, slot := range reader.AvailableSlots {
		if slot.Equal(selectedTime) {
			offered = true
			break
		}
	}
	if !offered {
		return nil, ErrSlotUnavailable
	}

	// Advisory check only; the partial unique index is the real guard and it
	// fires at accept time.
	taken, err := s.Bookings.AcceptedTimesByReader(ctx, readerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check taken slots: %w", err)
	}
	for _, t := range taken {
		if t.Equal(selectedTime) {
			return nil, ErrSlotTaken
		}
	}

	booking := &models.Booking{
		ClientID:     clientID,
		ReaderID:     readerID,
		SelectedTime: selectedTime,
		Status:       models.BookingPending,
	}
	if err := s.Bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.Notify != nil {
		if err := s.Notify.SendPush(ctx, readerID, "New booking request",
			fmt.Sprintf("A client requested a session on %s", schedule.FormatDay(selectedTime)),
			map[string]string{"bookingId": booking.ID}); err != nil {
			utils.GetLogger().Warn("failed to notify reader of booking request",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
	return booking, nil
}

// Accept creates the video room first, then performs the conditional
// pending -> accepted write. Room-creation failure or a lost race leaves the
// booking pending; an orphaned room simply expires on the provider side.
func (s *DefaultBookingService) Accept(ctx context.Context, readerID, bookingID string) (*models.Booking, error) {
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ReaderID != readerID {
		return nil, ErrNotParticipant
	}
	if booking.Status != models.BookingPending {
		return nil, ErrNotPending
	}

	roomURL, err := s.Rooms.CreateRoom(ctx)
	if err != nil {
		utils.GetLogger().Error("room creation failed, leaving booking pending",
			zap.String("bookingId", bookingID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRoomCreation, err)
	}

	if err := s.Bookings.Accept(ctx, bookingID, roomURL); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			return nil, ErrSlotTaken
		case errors.Is(err, bookingRepo.ErrNotPending):
			return nil, ErrNotPending
		default:
			return nil, fmt.Errorf("failed to accept booking: %w", err)
		}
	}
	booking.Status = models.BookingAccepted
	booking.RoomURL = roomURL

	s.publish(ctx, booking.ReaderID)
	s.issueConfirmation(ctx, booking)

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleSessionReminder(ctx, booking); err != nil {
			utils.GetLogger().Warn("failed to schedule session reminder",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
	return booking, nil
}

func (s *DefaultBookingService) Reject(ctx context.Context, readerID, bookingID string) error {
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.ReaderID != readerID {
		return ErrNotParticipant
	}

	wasAccepted := booking.Status == models.BookingAccepted
	if err := s.Bookings.UpdateStatus(ctx, bookingID, models.BookingRejected); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to reject booking: %w", err)
	}
	if wasAccepted {
		// Rejecting an accepted booking frees its slot for other viewers.
		s.publish(ctx, booking.ReaderID)
	}
	return nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, requesterID, bookingID string) error {
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.ClientID != requesterID && booking.ReaderID != requesterID {
		return ErrNotParticipant
	}
	if booking.Status != models.BookingPending && booking.Status != models.BookingAccepted {
		return fmt.Errorf("%w: status is %s", ErrNotCancellable, booking.Status)
	}

	if err := s.Bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	// Live viewers see the freed slot without a manual refresh.
	s.publish(ctx, booking.ReaderID)
	return nil
}

func (s *DefaultBookingService) ListForUser(ctx context.Context, user *models.User) ([]models.BookingView, error) {
	var (
		bookings []models.Booking
		err      error
	)
	if user.IsReader() {
		bookings, err = s.Bookings.ListByReader(ctx, user.ID)
	} else {
		bookings, err = s.Bookings.ListByClient(ctx, user.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		if !b.Active() {
			continue
		}
		view := models.BookingView{Booking: b}
		view.ClientName = s.displayName(ctx, b.ClientID)
		view.ReaderName = s.displayName(ctx, b.ReaderID)
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].SelectedTime.Before(views[j].SelectedTime)
	})
	return views, nil
}

// displayName falls back to the raw id when the counterpart profile is gone.
func (s *DefaultBookingService) displayName(ctx context.Context, userID string) string {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil || user.DisplayName == "" {
		return userID
	}
	return user.DisplayName
}

func (s *DefaultBookingService) SessionAccess(ctx context.Context, requesterID, bookingID string) (*models.SessionAccess, error) {
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ClientID != requesterID && booking.ReaderID != requesterID {
		return nil, ErrNotParticipant
	}
	if booking.RoomURL == "" {
		return nil, ErrNoRoom
	}
	if !schedule.IsJoinable(booking.SelectedTime, s.now(), s.JoinLead, s.JoinTrail) {
		return nil, ErrNotJoinable
	}

	token, err := s.Rooms.FreshToken(ctx, video.RoomName(booking.RoomURL))
	if err != nil {
		return nil, fmt.Errorf("failed to mint session token: %w", err)
	}
	return &models.SessionAccess{
		BookingID: booking.ID,
		RoomURL:   booking.RoomURL,
		Token:     token,
	}, nil
}

func (s *DefaultBookingService) load(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return booking, nil
}
