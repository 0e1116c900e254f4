package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"auralynk/models"
	"auralynk/utils"
)

// stubUserRepo serves only GetByID; the other methods are unused here.
type stubUserRepo struct {
	users map[string]*models.User
}

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *stubUserRepo) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *stubUserRepo) Delete(ctx context.Context, id string) error                  { return nil }
func (r *stubUserRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error { return nil }
func (r *stubUserRepo) SetFCMToken(ctx context.Context, id, token string) error      { return nil }

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

func authRouter(repo *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(repo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})
	return r
}

func signedInUser(t *testing.T, id string) (*models.User, string) {
	t.Helper()
	token, err := utils.GenerateToken(id, id+"@example.com", time.Hour)
	require.NoError(t, err)
	return &models.User{ID: id, Role: models.RoleClient, TokenHash: utils.HashToken(token)}, token
}

func TestJWTAuthMiddleware(t *testing.T) {
	user, token := signedInUser(t, "u1")
	repo := &stubUserRepo{users: map[string]*models.User{"u1": user}}
	router := authRouter(repo)

	do := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("valid token passes and exposes the user id", func(t *testing.T) {
		w := do("Bearer " + token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "u1")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("").Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("Token abc").Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("Bearer not.a.jwt").Code)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		revoked, revokedToken := signedInUser(t, "u2")
		revoked.TokenHash = ""
		repo.users["u2"] = revoked
		assert.Equal(t, http.StatusUnauthorized, do("Bearer "+revokedToken).Code)
	})

	t.Run("token for a deleted account is rejected", func(t *testing.T) {
		_, ghostToken := signedInUser(t, "ghost")
		assert.Equal(t, http.StatusUnauthorized, do("Bearer "+ghostToken).Code)
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	readerUser, readerToken := signedInUser(t, "r1")
	readerUser.Role = models.RoleReader
	clientUser, clientToken := signedInUser(t, "c1")

	repo := &stubUserRepo{users: map[string]*models.User{"r1": readerUser, "c1": clientUser}}

	r := gin.New()
	r.GET("/readers-only", JWTAuthMiddleware(repo), RequireRole(repo, models.RoleReader), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/readers-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do(readerToken))
	assert.Equal(t, http.StatusForbidden, do(clientToken))
}
