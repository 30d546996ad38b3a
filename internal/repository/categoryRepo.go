package repository

import (
	"context"
	"fmt"

	"antiquefinder/internal/models"

	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return list, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// FindByNames resolves category names to rows. Names with no matching
// category are simply absent from the result.
func (r *CategoryRepo) FindByNames(ctx context.Context, names []string) ([]models.Category, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var list []models.Category
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find categories by name: %w", err)
	}
	return list, nil
}

// GetShopsByCategory returns shops carrying the given category id.
// Preloads Categories on each shop.
func (r *CategoryRepo) GetShopsByCategory(ctx context.Context, categoryID int64) ([]models.Shop, error) {
	var list []models.Shop
	if err := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Joins("JOIN shop_categories sc ON sc.shop_id = shops.id").
		Where("sc.category_id = ?", categoryID).
		Preload("Categories").
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get shops by category: %w", err)
	}
	return list, nil
}
