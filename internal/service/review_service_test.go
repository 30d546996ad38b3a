package service

import (
	"context"
	"log/slog"
	"testing"

	"antiquefinder/internal/dto"
	"antiquefinder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestSubmit_AuthorRequired(t *testing.T) {
	shopRepo := new(MockShopRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewReviewService(reviewRepo, shopRepo, nil, nil, slog.Default())

	shopRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&models.Shop{ID: 1, Name: "Attic Treasures"}, nil).Once()

	_, err := svc.Submit(context.Background(), 1, dto.CreateReviewDTO{
		UserName: "   ",
		Rating:   "4",
	})

	assert.ErrorIs(t, err, ErrAuthorRequired)
	reviewRepo.AssertNotCalled(t, "Create")
}

func TestSubmit_UnknownShop(t *testing.T) {
	shopRepo := new(MockShopRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewReviewService(reviewRepo, shopRepo, nil, nil, slog.Default())

	shopRepo.On("GetByID", mock.Anything, int64(99)).
		Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.Submit(context.Background(), 99, dto.CreateReviewDTO{UserName: "ada"})

	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestSubmit_DefaultsRatingAndReturnsFreshAggregate(t *testing.T) {
	shopRepo := new(MockShopRepository)
	reviewRepo := new(MockReviewRepository)
	rating := &stubRating{ratings: map[int64]float64{1: 4.5}}
	svc := NewReviewService(reviewRepo, shopRepo, rating, nil, slog.Default())

	shopRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&models.Shop{ID: 1, Name: "Attic Treasures"}, nil).Once()

	var stored *models.Review
	reviewRepo.On("Create", mock.AnythingOfType("*models.Review")).
		Run(func(args mock.Arguments) {
			stored = args.Get(0).(*models.Review)
		}).
		Return(nil).Once()
	reviewRepo.On("GetByShop", int64(1)).Return([]models.Review{
		{ShopID: 1, UserName: "ada", Rating: 5},
	}, nil).Once()

	got, err := svc.Submit(context.Background(), 1, dto.CreateReviewDTO{
		UserName: "  ada  ",
		// no rating tag: submission still goes through at the default
	})

	assert.NoError(t, err)
	assert.Equal(t, "ada", stored.UserName)
	assert.Equal(t, dto.DefaultReviewRating, stored.Rating)
	assert.Equal(t, 4.5, got.Rating)
	assert.Len(t, got.Reviews, 1)
	reviewRepo.AssertExpectations(t)
}
