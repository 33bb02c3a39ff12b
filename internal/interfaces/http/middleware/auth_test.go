package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pet-ai.backend/internal/domain/entities"
	domainerrors "pet-ai.backend/internal/domain/errors"
	"pet-ai.backend/internal/interfaces/http/middleware"
	"pet-ai.backend/pkg/jwt"
	"pet-ai.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("production")
	os.Exit(m.Run())
}

// stubUserRepo serves a single user by ID
type stubUserRepo struct {
	user *entities.User
}

func (s *stubUserRepo) Create(context.Context, *entities.User) error { return nil }
func (s *stubUserRepo) Update(context.Context, *entities.User) error { return nil }

func (s *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, domainerrors.ErrNotFound
}

func newAuthRouter(jwtService *jwt.JWTService, repo *stubUserRepo) *gin.Engine {
	router := gin.New()
	router.GET("/protected", middleware.AuthMiddleware(jwtService, repo), func(c *gin.Context) {
		user, ok := middleware.GetCurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	return router
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour)
	user := &entities.User{ID: uuid.New(), Email: "user@example.com"}
	router := newAuthRouter(jwtService, &stubUserRepo{user: user})

	token, err := jwtService.GenerateToken(user.ID.String(), nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"user@example.com"}`, w.Body.String())
}

func TestAuthMiddleware_Failures(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour)
	user := &entities.User{ID: uuid.New(), Email: "user@example.com"}
	router := newAuthRouter(jwtService, &stubUserRepo{user: user})

	expired, err := jwtService.GenerateTokenWithExpiry(user.ID.String(), -time.Minute, nil)
	require.NoError(t, err)
	badSubject, err := jwtService.GenerateToken("not-a-uuid", nil)
	require.NoError(t, err)
	deletedAccount, err := jwtService.GenerateToken(uuid.New().String(), nil)
	require.NoError(t, err)
	wrongKey, err := jwt.NewJWTService("other-secret", time.Hour).GenerateToken(user.ID.String(), nil)
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":  "",
		"not bearer":      "Basic dXNlcjpwYXNz",
		"garbage token":   "Bearer not-a-token",
		"expired token":   "Bearer " + expired,
		"bad subject":     "Bearer " + badSubject,
		"deleted account": "Bearer " + deletedAccount,
		"wrong signature": "Bearer " + wrongKey,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Could not validate credentials."}`, w.Body.String())
		})
	}
}

func TestGetCurrentUser_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := middleware.GetCurrentUser(c)
	assert.False(t, ok)
}
