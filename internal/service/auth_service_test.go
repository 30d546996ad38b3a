package service

import (
	"testing"
	"time"

	"antiquefinder/internal/config"
	"antiquefinder/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockAdminRepository mocks the AdminRepository interface
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(admin *models.Admin) error {
	args := m.Called(admin)
	return args.Error(0)
}

func (m *MockAdminRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdminRepository) FindByUsername(username string) (*models.Admin, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) FindByID(id string) (*models.Admin, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) TouchLastLogin(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret-test-secret-test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func testAdmin(t *testing.T, password string) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &models.Admin{
		ID:       "11111111-2222-3333-4444-555555555555",
		Username: "curator",
		Password: string(hash),
	}
}

func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	svc := NewAuthService(mockRepo, testConfig())
	admin := testAdmin(t, "password123")

	mockRepo.On("FindByUsername", "curator").Return(admin, nil)
	mockRepo.On("TouchLastLogin", admin.ID).Return(nil)

	accessToken, refreshToken, got, err := svc.Login("curator", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, admin.Username, got.Username)
	mockRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	svc := NewAuthService(mockRepo, testConfig())

	mockRepo.On("FindByUsername", "curator").Return(testAdmin(t, "password123"), nil)

	_, _, _, err := svc.Login("curator", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUsername(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	svc := NewAuthService(mockRepo, testConfig())

	mockRepo.On("FindByUsername", "nobody").Return(nil, gorm.ErrRecordNotFound)

	_, _, _, err := svc.Login("nobody", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshAccessToken_Success(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	svc := NewAuthService(mockRepo, testConfig())
	admin := testAdmin(t, "password123")

	mockRepo.On("FindByUsername", "curator").Return(admin, nil)
	mockRepo.On("TouchLastLogin", admin.ID).Return(nil)
	mockRepo.On("FindByID", admin.ID).Return(admin, nil)

	_, refreshToken, _, err := svc.Login("curator", "password123")
	assert.NoError(t, err)

	newAccess, err := svc.RefreshAccessToken(refreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, newAccess)

	token, err := svc.ValidateToken(newAccess)
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "access", claims["type"])
	assert.Equal(t, admin.ID, claims["admin_id"])
}

func TestRefreshAccessToken_RejectsAccessToken(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	svc := NewAuthService(mockRepo, testConfig())
	admin := testAdmin(t, "password123")

	mockRepo.On("FindByUsername", "curator").Return(admin, nil)
	mockRepo.On("TouchLastLogin", admin.ID).Return(nil)

	accessToken, _, _, err := svc.Login("curator", "password123")
	assert.NoError(t, err)

	_, err = svc.RefreshAccessToken(accessToken)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService(new(MockAdminRepository), testConfig())

	_, err := svc.ValidateToken("not.a.token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := NewAuthService(new(MockAdminRepository), testConfig())

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": "x",
		"type":     "access",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := other.SignedString([]byte("some-other-secret-entirely-here!"))
	assert.NoError(t, err)

	_, err = svc.ValidateToken(signed)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testConfig()
	svc := NewAuthService(new(MockAdminRepository), cfg)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": "x",
		"type":     "access",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte(cfg.JWTSecret))
	assert.NoError(t, err)

	_, err = svc.ValidateToken(signed)

	assert.ErrorIs(t, err, ErrExpiredToken)
}
