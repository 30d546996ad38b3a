package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"antiquefinder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByShop(shopID int64) ([]models.Review, error) {
	args := m.Called(shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) CountByShop(shopID int64) (int64, error) {
	args := m.Called(shopID)
	return args.Get(0).(int64), args.Error(1)
}

func TestComputeRating_MeanRoundedToOneDecimal(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	svc := NewRatingService(mockRepo, nil, slog.Default())

	// (4+5+5)/3 = 4.666... rounds to 4.7
	mockRepo.On("GetByShop", int64(1)).Return([]models.Review{
		{Rating: 4}, {Rating: 5}, {Rating: 5},
	}, nil).Once()

	got := svc.ComputeRating(context.Background(), 1)

	assert.Equal(t, 4.7, got)
	mockRepo.AssertExpectations(t)
}

func TestComputeRating_ExactMeanKeepsValue(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	svc := NewRatingService(mockRepo, nil, slog.Default())

	mockRepo.On("GetByShop", int64(2)).Return([]models.Review{
		{Rating: 3}, {Rating: 3},
	}, nil).Once()

	assert.Equal(t, 3.0, svc.ComputeRating(context.Background(), 2))
}

func TestComputeRating_NoReviews(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	svc := NewRatingService(mockRepo, nil, slog.Default())

	mockRepo.On("GetByShop", int64(3)).Return([]models.Review{}, nil).Once()

	assert.Equal(t, 0.0, svc.ComputeRating(context.Background(), 3))
}

func TestComputeRating_StoreFailureDegradesToZero(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	svc := NewRatingService(mockRepo, nil, slog.Default())

	mockRepo.On("GetByShop", int64(4)).Return(nil, errors.New("connection refused")).Once()

	assert.Equal(t, 0.0, svc.ComputeRating(context.Background(), 4))
}

func TestComputeRating_Idempotent(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	svc := NewRatingService(mockRepo, nil, slog.Default())

	reviews := []models.Review{{Rating: 2}, {Rating: 5}}
	mockRepo.On("GetByShop", int64(5)).Return(reviews, nil).Twice()

	first := svc.ComputeRating(context.Background(), 5)
	second := svc.ComputeRating(context.Background(), 5)

	assert.Equal(t, first, second)
	assert.Equal(t, 3.5, first)
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 5.0, AverageRating([]models.Review{{Rating: 5}}))
	assert.Equal(t, 4.5, AverageRating([]models.Review{{Rating: 4}, {Rating: 5}}))
	// half-up at the second decimal: (1+2+2)/3 = 1.666... -> 1.7
	assert.Equal(t, 1.7, AverageRating([]models.Review{{Rating: 1}, {Rating: 2}, {Rating: 2}}))
	// out-of-range ratings are averaged as stored
	assert.Equal(t, 5.5, AverageRating([]models.Review{{Rating: 5}, {Rating: 6}}))
}

func TestPersistRating_WritesComputedAggregate(t *testing.T) {
	mockRepo := new(MockReviewRepository)
	shopRepo := new(MockShopRepository)
	svc := NewRatingService(mockRepo, shopRepo, slog.Default())

	mockRepo.On("GetByShop", int64(6)).Return([]models.Review{
		{Rating: 4}, {Rating: 5},
	}, nil).Once()
	shopRepo.On("UpdateRating", mock.Anything, int64(6), 4.5).Return(nil).Once()

	assert.NoError(t, svc.PersistRating(context.Background(), 6))
	shopRepo.AssertExpectations(t)
}
