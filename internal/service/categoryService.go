package service

import (
	"context"
	"errors"
	"strings"

	"antiquefinder/internal/models"
	"antiquefinder/internal/repository"
)

var ErrCategoryNameRequired = errors.New("category name is required")

type CategoryService interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, name string, description *string) (*models.Category, error)
	GetShops(ctx context.Context, categoryID int64) ([]models.Shop, error)
}

type categoryService struct {
	categoryRepo *repository.CategoryRepo
}

func NewCategoryService(categoryRepo *repository.CategoryRepo) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

func (s *categoryService) Create(ctx context.Context, name string, description *string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	category := models.Category{Name: name, Description: description}
	if err := s.categoryRepo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) GetShops(ctx context.Context, categoryID int64) ([]models.Shop, error) {
	return s.categoryRepo.GetShopsByCategory(ctx, categoryID)
}
