package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"antiquefinder/internal/dto"
	"antiquefinder/internal/events"
	"antiquefinder/internal/models"
	"antiquefinder/internal/repository"

	"gorm.io/gorm"
)

var ErrAuthorRequired = errors.New("review author is required")

type ReviewService interface {
	// Submit stores a review and returns the refreshed review list plus
	// the recomputed shop rating.
	Submit(ctx context.Context, shopID int64, in dto.CreateReviewDTO) (*dto.SubmitReviewResponse, error)
	GetByShop(ctx context.Context, shopID int64) ([]models.Review, error)
	CountByShop(ctx context.Context, shopID int64) (int64, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	shopRepo   repository.ShopRepository
	rating     RatingService
	producer   *events.Producer
	logger     *slog.Logger
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	shopRepo repository.ShopRepository,
	rating RatingService,
	producer *events.Producer,
	logger *slog.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		shopRepo:   shopRepo,
		rating:     rating,
		producer:   producer,
		logger:     logger,
	}
}

func (s *reviewService) Submit(ctx context.Context, shopID int64, in dto.CreateReviewDTO) (*dto.SubmitReviewResponse, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}

	author := strings.TrimSpace(in.UserName)
	if author == "" {
		return nil, ErrAuthorRequired
	}

	review := models.Review{
		ShopID:   shopID,
		UserName: author,
		Rating:   in.ParseRating(),
	}
	if comment := strings.TrimSpace(in.Comment); comment != "" {
		review.Comment = &comment
	}

	if err := s.reviewRepo.Create(&review); err != nil {
		return nil, err
	}

	// keep the stored aggregate in step; the response carries the
	// freshly computed value either way
	if err := s.rating.PersistRating(ctx, shopID); err != nil {
		s.logger.Warn("persist shop rating", "shop_id", shopID, "error", err)
	}

	rating := s.rating.ComputeRating(ctx, shopID)
	reviews, err := s.reviewRepo.GetByShop(shopID)
	if err != nil {
		return nil, err
	}

	s.producer.PublishAsync(events.CatalogEvent{
		Type:     events.TypeReviewSubmitted,
		ShopID:   shopID,
		ShopName: shop.Name,
		Rating:   rating,
	})

	return &dto.SubmitReviewResponse{
		Review:  dto.FromModelToReviewResponse(review),
		Rating:  rating,
		Reviews: dto.FromModelToReviewResponses(reviews),
	}, nil
}

func (s *reviewService) GetByShop(ctx context.Context, shopID int64) ([]models.Review, error) {
	if _, err := s.shopRepo.GetByID(ctx, shopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return s.reviewRepo.GetByShop(shopID)
}

func (s *reviewService) CountByShop(ctx context.Context, shopID int64) (int64, error) {
	return s.reviewRepo.CountByShop(shopID)
}
