package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"auralynk/models"
	"auralynk/utils"
)

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	users map[string]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*models.User)}
}

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	cp := *user
	r.users[user.ID] = &cp
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
	return nil
}
func (r *stubUserRepo) RemoveAvailableSlot(ctx context.Context, readerID string, slot time.Time) error {
	return nil
}
func (r *stubUserRepo) ReplaceAvailableSlots(ctx context.Context, readerID string, slots []time.Time) error {
	return nil
}

func (r *stubUserRepo) ListReaders(ctx context.Context) ([]models.User, error) { return nil, nil }
func (r *stubUserRepo) ListReaderIDs(ctx context.Context) ([]string, error)    { return nil, nil }
func (r *stubUserRepo) EnsureIndexes(ctx context.Context) error                { return nil }

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an account and signs a token", func(t *testing.T) {
		repo := newStubUserRepo()
		svc := &DefaultUserService{Repo: repo}

		resp, err := svc.Register(ctx, "Reader@Example.com", "hunter22", models.RoleReader, "Luna")
		require.NoError(t, err)
		assert.Equal(t, "reader@example.com", mustGet(t, repo, resp.User.ID).Email)
		assert.Equal(t, "Luna", resp.User.DisplayName)
		assert.NotEmpty(t, resp.Token)

		// The stored token hash must match the issued token.
		stored := mustGet(t, repo, resp.User.ID)
		assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)
	})

	t.Run("display name defaults to the email local part", func(t *testing.T) {
		repo := newStubUserRepo()
		svc := &DefaultUserService{Repo: repo}

		resp, err := svc.Register(ctx, "nova@example.com", "hunter22", models.RoleClient, "")
		require.NoError(t, err)
		assert.Equal(t, "nova", resp.User.DisplayName)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc := &DefaultUserService{Repo: newStubUserRepo()}
		_, err := svc.Register(ctx, "", "pw", models.RoleClient, "")
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		svc := &DefaultUserService{Repo: newStubUserRepo()}
		_, err := svc.Register(ctx, "a@b.c", "pw", "admin", "")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("rejects duplicate emails case-insensitively", func(t *testing.T) {
		repo := newStubUserRepo()
		svc := &DefaultUserService{Repo: repo}

		_, err := svc.Register(ctx, "taken@example.com", "pw1", models.RoleClient, "")
		require.NoError(t, err)
		_, err = svc.Register(ctx, "TAKEN@example.com", "pw2", models.RoleClient, "")
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newStubUserRepo()
	svc := &DefaultUserService{Repo: repo}

	_, err := svc.Register(ctx, "luna@example.com", "correct-horse", models.RoleReader, "Luna")
	require.NoError(t, err)

	t.Run("valid credentials return a fresh token", func(t *testing.T) {
		resp, err := svc.Authenticate(ctx, "luna@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "Luna", resp.User.DisplayName)
		assert.NotEmpty(t, resp.Token)

		id, err := utils.ExtractIDFromToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, id)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "luna@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails identically", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRevokeAuthToken(t *testing.T) {
	ctx := context.Background()
	repo := newStubUserRepo()
	svc := &DefaultUserService{Repo: repo}

	resp, err := svc.Register(ctx, "luna@example.com", "correct-horse", models.RoleReader, "")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAuthToken(ctx, resp.User.ID))
	assert.Empty(t, mustGet(t, repo, resp.User.ID).TokenHash)
}

func mustGet(t *testing.T, repo *stubUserRepo, id string) *models.User {
	t.Helper()
	u, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return u
}
