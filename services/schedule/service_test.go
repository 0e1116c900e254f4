package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"auralynk/models"
)

// stubUserRepo is an in-memory UserRepository for service tests.
type stubUserRepo struct {
	users    map[string]*models.User
	replaced map[string][]time.Time
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	r := &stubUserRepo{
		users:    make(map[string]*models.User),
		replaced: make(map[string][]time.Time),
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *stubUserRepo) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if update.DisplayName != nil {
		u.DisplayName = *update.DisplayName
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.Services != nil {
		u.Services = *update.Services
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	u, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.TokenHash = tokenHash
	return nil
}

func (r *stubUserRepo) SetFCMToken(ctx context.Context, id, token string) error {
	u, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.FCMToken = token
	return nil
}

func (r *stubUserRepo) AddAvailableSlot(ctx context.Context, readerID string, slot time.Time) error {
	u, ok := r.users[readerID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.AvailableSlots = append(u.AvailableSlots, slot)
	return nil
}

func (r *stubUserRepo) RemoveAvailableSlot(ctx context.Context, readerID string, slot time.Time) error {
	u, ok := r.users[readerID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	kept := u.AvailableSlots[:0]
	for _, s := range u.AvailableSlots {
		if !s.Equal(slot) {
			kept = append(kept, s)
		}
	}
	u.AvailableSlots = kept
	return nil
}

func (r *stubUserRepo) ReplaceAvailableSlots(ctx context.Context, readerID string, slots []time.Time) error {
	u, ok := r.users[readerID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.AvailableSlots = slots
	r.replaced[readerID] = slots
	return nil
}

func (r *stubUserRepo) ListReaders(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.IsReader() && len(u.AvailableSlots) > 0 {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListReaderIDs(ctx context.Context) ([]string, error) {
	var out []string
	for _, u := range r.users {
		if u.IsReader() {
			out = append(out, u.ID)
		}
	}
	return out, nil
}

func (r *stubUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

// stubBookingRepo only serves the taken-slot join in these tests.
type stubBookingRepo struct {
	taken map[string][]time.Time
}

func (r *stubBookingRepo) Create(ctx context.Context, booking *models.Booking) error { return nil }
func (r *stubBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, mongo.ErrNoDocuments
}
func (r *stubBookingRepo) Accept(ctx context.Context, id, roomURL string) error     { return nil }
func (r *stubBookingRepo) Confirm(ctx context.Context, id string) error             { return nil }
func (r *stubBookingRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }
func (r *stubBookingRepo) Delete(ctx context.Context, id string) error              { return nil }
func (r *stubBookingRepo) ListByReader(ctx context.Context, readerID string) ([]models.Booking, error) {
	return nil, nil
}
func (r *stubBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return nil, nil
}
func (r *stubBookingRepo) AcceptedTimesByReader(ctx context.Context, readerID string) ([]time.Time, error) {
	return r.taken[readerID], nil
}
func (r *stubBookingRepo) EnsureIndexes(ctx context.Context) error { return nil }

// memPublisher records reconcile notifications.
type memPublisher struct {
	published []string
}

func (p *memPublisher) PublishReconcile(ctx context.Context, readerID string) error {
	p.published = append(p.published, readerID)
	return nil
}

func newTestService(users *stubUserRepo, bookings *stubBookingRepo, pub *memPublisher, now time.Time) *DefaultScheduleService {
	return &DefaultScheduleService{
		Users:    users,
		Bookings: bookings,
		Live:     pub,
		Now:      func() time.Time { return now },
	}
}

func reader(id string, slots ...time.Time) *models.User {
	return &models.User{ID: id, Role: models.RoleReader, DisplayName: id, AvailableSlots: slots}
}

func TestAddSlot(t *testing.T) {
	ctx := context.Background()
	future := base.Add(time.Hour)

	t.Run("rejects past times", func(t *testing.T) {
		svc := newTestService(newStubUserRepo(reader("r1")), &stubBookingRepo{}, &memPublisher{}, base)
		_, err := svc.AddSlot(ctx, "r1", base.Add(-time.Minute))
		assert.ErrorIs(t, err, ErrPastSlot)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		svc := newTestService(newStubUserRepo(reader("r1", future)), &stubBookingRepo{}, &memPublisher{}, base)
		_, err := svc.AddSlot(ctx, "r1", future)
		assert.ErrorIs(t, err, ErrDuplicateSlot)
	})

	t.Run("rejects unknown readers", func(t *testing.T) {
		svc := newTestService(newStubUserRepo(), &stubBookingRepo{}, &memPublisher{}, base)
		_, err := svc.AddSlot(ctx, "ghost", future)
		assert.ErrorIs(t, err, ErrReaderNotFound)
	})

	t.Run("persists and notifies live viewers", func(t *testing.T) {
		pub := &memPublisher{}
		svc := newTestService(newStubUserRepo(reader("r1")), &stubBookingRepo{}, pub, base)

		slots, err := svc.AddSlot(ctx, "r1", future)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{future}, slots)
		assert.Equal(t, []string{"r1"}, pub.published)
	})
}

func TestRemoveSlot(t *testing.T) {
	ctx := context.Background()
	future := base.Add(time.Hour)
	other := base.Add(2 * time.Hour)

	pub := &memPublisher{}
	svc := newTestService(newStubUserRepo(reader("r1", future, other)), &stubBookingRepo{}, pub, base)

	slots, err := svc.RemoveSlot(ctx, "r1", future)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{other}, slots)
	assert.Equal(t, []string{"r1"}, pub.published)
}

func TestOwnSlotsPrunesAndWritesBack(t *testing.T) {
	ctx := context.Background()
	stale := base.Add(-time.Hour)
	future := base.Add(time.Hour)

	users := newStubUserRepo(reader("r1", stale, future))
	svc := newTestService(users, &stubBookingRepo{}, &memPublisher{}, base)

	slots, err := svc.OwnSlots(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []time.Time{future}, slots)
	assert.Equal(t, []time.Time{future}, users.replaced["r1"], "pruned list must be persisted")
}

func TestBookableHidesAcceptedSlots(t *testing.T) {
	ctx := context.Background()
	s1 := base.Add(time.Hour)
	s2 := base.Add(2 * time.Hour)

	users := newStubUserRepo(reader("r1", s1, s2))
	bookings := &stubBookingRepo{taken: map[string][]time.Time{"r1": {s1}}}
	svc := newTestService(users, bookings, &memPublisher{}, base)

	groups, err := svc.Bookable(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []time.Time{s2}, groups[0].Slots)
}

func TestFeedSkipsFullyBookedReaders(t *testing.T) {
	ctx := context.Background()
	s1 := base.Add(time.Hour)

	users := newStubUserRepo(
		reader("free", s1),
		reader("booked", s1),
	)
	bookings := &stubBookingRepo{taken: map[string][]time.Time{"booked": {s1}}}
	svc := newTestService(users, bookings, &memPublisher{}, base)

	items, err := svc.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "free", items[0].Reader.ID)
}

func TestPruneAllReaders(t *testing.T) {
	ctx := context.Background()
	stale := base.Add(-time.Hour)
	future := base.Add(time.Hour)

	users := newStubUserRepo(
		reader("dirty", stale, future),
		reader("clean", future),
	)
	pub := &memPublisher{}
	svc := newTestService(users, &stubBookingRepo{}, pub, base)

	require.NoError(t, svc.PruneAllReaders(ctx))
	assert.Equal(t, []time.Time{future}, users.replaced["dirty"])
	assert.NotContains(t, users.replaced, "clean", "unchanged availability is not rewritten")
	assert.Equal(t, []string{"dirty"}, pub.published)
}
