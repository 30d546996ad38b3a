package repository

import (
	"context"
	"fmt"

	"antiquefinder/internal/models"

	"gorm.io/gorm"
)

// ShopRepository is the catalog store surface the services depend on.
type ShopRepository interface {
	GetAll(ctx context.Context) ([]models.Shop, error)
	GetByID(ctx context.Context, id int64) (*models.Shop, error)
	Search(ctx context.Context, query, shopType string, categories []string) ([]models.Shop, error)
	Create(ctx context.Context, s *models.Shop, categoryIDs []int64) error
	Update(ctx context.Context, id int64, s *models.Shop) error
	ReplaceCategories(ctx context.Context, shopID int64, categoryIDs []int64) error
	Delete(ctx context.Context, id int64) error
	UpdateRating(ctx context.Context, shopID int64, rating float64) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type ShopRepo struct {
	db *gorm.DB
}

func NewShopRepo(db *gorm.DB) *ShopRepo {
	return &ShopRepo{db: db}
}

func (r *ShopRepo) GetAll(ctx context.Context) ([]models.Shop, error) {
	var list []models.Shop
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get shops: %w", err)
	}
	return list, nil
}

func (r *ShopRepo) GetByID(ctx context.Context, id int64) (*models.Shop, error) {
	var s models.Shop
	if err := r.db.WithContext(ctx).Preload("Categories").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Search applies the catalog filter predicate: free-text substring on
// name/address/description, exact shop type unless the "all" sentinel,
// and membership in at least one of the requested category names.
// All active filters combine with AND.
func (r *ShopRepo) Search(ctx context.Context, query, shopType string, categories []string) ([]models.Shop, error) {
	db := r.db.WithContext(ctx).Model(&models.Shop{}).Distinct("shops.*")

	if query != "" {
		p := "%" + query + "%"
		// COALESCE so NULL descriptions don't drop the row from the ILIKE
		db = db.Where("(shops.name ILIKE ? OR shops.address ILIKE ? OR COALESCE(shops.description,'') ILIKE ?)", p, p, p)
	}

	if shopType != "" && shopType != models.ShopTypeAll {
		db = db.Where("shops.shop_type = ?", shopType)
	}

	if len(categories) > 0 {
		db = db.
			Joins("JOIN shop_categories sc ON sc.shop_id = shops.id").
			Joins("JOIN categories c ON c.id = sc.category_id").
			Where("c.name IN ?", categories)
	}

	var list []models.Shop
	if err := db.Preload("Categories").Order("shops.created_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search shops: %w", err)
	}
	return list, nil
}

// Create inserts the shop and its category links in one transaction.
func (r *ShopRepo) Create(ctx context.Context, s *models.Shop, categoryIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Create(s).Error; err != nil {
			return fmt.Errorf("create shop: %w", err)
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		cats := make([]models.Category, 0, len(categoryIDs))
		for _, id := range categoryIDs {
			cats = append(cats, models.Category{ID: id})
		}
		if err := tx.Model(s).Association("Categories").Append(&cats); err != nil {
			return fmt.Errorf("attach categories: %w", err)
		}
		return nil
	})
}

func (r *ShopRepo) Update(ctx context.Context, id int64, s *models.Shop) error {
	// ensure ID set for Save
	s.ID = id
	if err := r.db.WithContext(ctx).Omit("Categories").Save(s).Error; err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	return nil
}

// ReplaceCategories swaps a shop's category links for the given set.
func (r *ShopRepo) ReplaceCategories(ctx context.Context, shopID int64, categoryIDs []int64) error {
	tx := r.db.WithContext(ctx).Begin()
	var s models.Shop
	if err := tx.First(&s, shopID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("shop not found: %w", err)
	}
	cats := make([]models.Category, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		cats = append(cats, models.Category{ID: id})
	}
	if err := tx.Model(&s).Association("Categories").Replace(&cats); err != nil {
		tx.Rollback()
		return fmt.Errorf("replace categories: %w", err)
	}
	return tx.Commit().Error
}

// Delete removes the shop; reviews and category links go with it via
// the ON DELETE CASCADE constraints in the schema.
func (r *ShopRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Shop{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete shop: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateRating persists a computed aggregate rating on the shop row.
func (r *ShopRepo) UpdateRating(ctx context.Context, shopID int64, rating float64) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ?", shopID).
		Update("rating", rating).Error; err != nil {
		return fmt.Errorf("update shop rating: %w", err)
	}
	return nil
}

// ExistsByName reports whether a shop with the given name already exists,
// compared case-insensitively after trimming.
func (r *ShopRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("LOWER(TRIM(name)) = LOWER(TRIM(?))", name).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check shop name: %w", err)
	}
	return count > 0, nil
}
