package service

import (
	"context"
	"log/slog"
	"math"

	"antiquefinder/internal/models"
	"antiquefinder/internal/repository"
)

type RatingService interface {
	// ComputeRating returns the shop's aggregate rating: the mean of its
	// review ratings rounded to one decimal place, or 0 when the shop has
	// no reviews. Store failures degrade to 0 instead of propagating, so
	// callers cannot tell "no reviews" from "store unavailable" here.
	ComputeRating(ctx context.Context, shopID int64) float64

	// PersistRating writes the computed aggregate back to the shop row.
	// Never called implicitly; the stored value may lag until it runs.
	PersistRating(ctx context.Context, shopID int64) error
}

type ratingService struct {
	reviewRepo repository.ReviewRepository
	shopRepo   repository.ShopRepository
	logger     *slog.Logger
}

func NewRatingService(reviewRepo repository.ReviewRepository, shopRepo repository.ShopRepository, logger *slog.Logger) RatingService {
	return &ratingService{
		reviewRepo: reviewRepo,
		shopRepo:   shopRepo,
		logger:     logger,
	}
}

func (s *ratingService) ComputeRating(ctx context.Context, shopID int64) float64 {
	reviews, err := s.reviewRepo.GetByShop(shopID)
	if err != nil {
		s.logger.Warn("rating aggregation degraded to zero", "shop_id", shopID, "error", err)
		return 0
	}
	return AverageRating(reviews)
}

func (s *ratingService) PersistRating(ctx context.Context, shopID int64) error {
	rating := s.ComputeRating(ctx, shopID)
	return s.shopRepo.UpdateRating(ctx, shopID, rating)
}

// AverageRating computes the mean of the review ratings rounded half-up
// to one decimal place. Empty input yields exactly 0.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}
