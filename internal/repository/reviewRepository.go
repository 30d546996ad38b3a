package repository

import (
	"antiquefinder/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	GetByShop(shopID int64) ([]models.Review, error)
	CountByShop(shopID int64) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review
func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// GetByShop retrieves all reviews for a shop, newest first
func (r *reviewRepository) GetByShop(shopID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("shop_id = ?", shopID).
		Order("review_date DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// CountByShop counts the reviews for a shop
func (r *reviewRepository) CountByShop(shopID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("shop_id = ?", shopID).Count(&count).Error
	return count, err
}
