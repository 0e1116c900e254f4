package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auralynk/models"
)

func acceptedBookingFixture() (*DefaultBookingService, *stubBookingRepo, *stubTokenRepo) {
	bookings := newStubBookingRepo(&models.Booking{
		ID: "b1", ClientID: "c1", ReaderID: "r1",
		SelectedTime: base.Add(2 * time.Hour), Status: models.BookingAccepted,
		RoomURL: "https://video.example/abc",
	})
	tokens := newStubTokenRepo()
	svc, _ := newTestService(newStubUserRepo(), bookings, base)
	svc.Tokens = tokens
	return svc, bookings, tokens
}

func TestConsumeToken(t *testing.T) {
	ctx := context.Background()

	mint := func(tokens *stubTokenRepo, expiresAt time.Time) string {
		tok := &models.ConfirmationToken{ID: "tok1", BookingID: "b1", ExpiresAt: expiresAt}
		require.NoError(t, tokens.Create(ctx, tok))
		return tok.ID
	}

	t.Run("confirms the booking", func(t *testing.T) {
		svc, bookings, tokens := acceptedBookingFixture()
		id := mint(tokens, base.Add(24*time.Hour))

		b, err := svc.ConsumeToken(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, b.Status)

		stored, err := bookings.GetByID(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, stored.Status)
	})

	t.Run("repeat visits stay confirmed", func(t *testing.T) {
		svc, _, tokens := acceptedBookingFixture()
		id := mint(tokens, base.Add(24*time.Hour))

		_, err := svc.ConsumeToken(ctx, id)
		require.NoError(t, err)
		b, err := svc.ConsumeToken(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, b.Status)
	})

	t.Run("unknown tokens are invalid", func(t *testing.T) {
		svc, _, _ := acceptedBookingFixture()
		_, err := svc.ConsumeToken(ctx, "never-issued")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expiry is checked against the visit time", func(t *testing.T) {
		svc, _, tokens := acceptedBookingFixture()
		id := mint(tokens, base.Add(-time.Second))

		_, err := svc.ConsumeToken(ctx, id)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("expiry boundary is inclusive", func(t *testing.T) {
		svc, _, tokens := acceptedBookingFixture()
		id := mint(tokens, base)

		_, err := svc.ConsumeToken(ctx, id)
		assert.NoError(t, err)
	})

	t.Run("deleted bookings report not found", func(t *testing.T) {
		svc, bookings, tokens := acceptedBookingFixture()
		id := mint(tokens, base.Add(24*time.Hour))
		require.NoError(t, bookings.Delete(ctx, "b1"))

		_, err := svc.ConsumeToken(ctx, id)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("tokens for pending bookings are invalid", func(t *testing.T) {
		svc, bookings, tokens := acceptedBookingFixture()
		id := mint(tokens, base.Add(24*time.Hour))
		require.NoError(t, bookings.UpdateStatus(ctx, "b1", models.BookingPending))

		_, err := svc.ConsumeToken(ctx, id)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestAcceptIssuesConfirmationToken(t *testing.T) {
	ctx := context.Background()
	slot := base.Add(2 * time.Hour)

	bookings := newStubBookingRepo(&models.Booking{
		ID: "b1", ClientID: "c1", ReaderID: "r1",
		SelectedTime: slot, Status: models.BookingPending,
	})
	tokens := newStubTokenRepo()
	svc, _ := newTestService(newStubUserRepo(futureReader("r1", slot)), bookings, base)
	svc.Tokens = tokens

	_, err := svc.Accept(ctx, "r1", "b1")
	require.NoError(t, err)

	require.Len(t, tokens.tokens, 1)
	for _, tok := range tokens.tokens {
		assert.Equal(t, "b1", tok.BookingID)
		assert.Equal(t, base.Add(24*time.Hour), tok.ExpiresAt)
	}
}
