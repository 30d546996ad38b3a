package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"antiquefinder/internal/config"
	"antiquefinder/internal/models"
	"antiquefinder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// stubAdminRepo serves exactly one admin account.
type stubAdminRepo struct {
	admin *models.Admin
}

func (s *stubAdminRepo) Create(admin *models.Admin) error { return nil }

func (s *stubAdminRepo) Count() (int64, error) {
	if s.admin != nil {
		return 1, nil
	}
	return 0, nil
}

func (s *stubAdminRepo) FindByUsername(username string) (*models.Admin, error) {
	if s.admin != nil && s.admin.Username == username {
		return s.admin, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAdminRepo) FindByID(id string) (*models.Admin, error) {
	if s.admin != nil && s.admin.ID == id {
		return s.admin, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAdminRepo) TouchLastLogin(id string) error { return nil }

func newTestAuth(t *testing.T) (service.AuthService, string, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubAdminRepo{admin: &models.Admin{
		ID:       "admin-1",
		Username: "curator",
		Password: string(hash),
	}}
	svc := service.NewAuthService(repo, &config.Config{
		JWTSecret:       "test-secret-test-secret-test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})

	access, refresh, _, err := svc.Login("curator", "password123")
	require.NoError(t, err)
	return svc, access, refresh
}

func setupProtected(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": c.GetString("adminID")})
	})
	return r
}

func TestAuthMiddleware_ValidAccessToken(t *testing.T) {
	svc, access, _ := newTestAuth(t)
	r := setupProtected(svc)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin-1")
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	svc, _, refresh := newTestAuth(t)
	r := setupProtected(svc)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	r := setupProtected(svc)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	svc, access, _ := newTestAuth(t)
	r := setupProtected(svc)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", access) // no Bearer prefix
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
