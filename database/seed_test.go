package database

import (
	"log/slog"
	"testing"

	"antiquefinder/internal/config"
	"antiquefinder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
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

func TestSeed_CreatesAdminWhenNoneExists(t *testing.T) {
	admins := new(MockAdminRepository)
	admins.On("Count").Return(int64(0), nil).Once()

	var created *models.Admin
	admins.On("Create", mock.AnythingOfType("*models.Admin")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.Admin)
		}).
		Return(nil).Once()

	cfg := &config.Config{
		SeedAdminUsername: "curator",
		SeedAdminPassword: "opening-day",
	}

	err := Seed(admins, cfg, slog.Default())

	assert.NoError(t, err)
	admins.AssertExpectations(t)
	assert.Equal(t, "curator", created.Username)
	// the stored password must be a bcrypt hash of the configured secret
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("opening-day")))
}

func TestSeed_SkipsWhenAdminExists(t *testing.T) {
	admins := new(MockAdminRepository)
	admins.On("Count").Return(int64(1), nil).Once()

	err := Seed(admins, &config.Config{}, slog.Default())

	assert.NoError(t, err)
	admins.AssertNotCalled(t, "Create")
}

func TestSeed_CountErrorPropagates(t *testing.T) {
	admins := new(MockAdminRepository)
	admins.On("Count").Return(int64(0), assert.AnError).Once()

	err := Seed(admins, &config.Config{}, slog.Default())

	assert.Error(t, err)
	admins.AssertNotCalled(t, "Create")
}
