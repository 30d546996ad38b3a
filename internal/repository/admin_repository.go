package repository

import (
	"antiquefinder/internal/models"

	"gorm.io/gorm"
)

// AdminRepository defines the interface for admin account lookups.
type AdminRepository interface {
	Create(admin *models.Admin) error
	Count() (int64, error)
	FindByUsername(username string) (*models.Admin, error)
	FindByID(id string) (*models.Admin, error)
	TouchLastLogin(id string) error
}

// adminRepository is the GORM implementation of AdminRepository.
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new instance of AdminRepository in a GORM implementation
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

func (r *adminRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Admin{}).Count(&count).Error
	return count, err
}

func (r *adminRepository) FindByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	// check for the error if the admin is not found: returning a zero-value
	// struct would make callers think the account exists
	if err := r.db.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByID(id string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) TouchLastLogin(id string) error {
	return r.db.Model(&models.Admin{}).Where("id = ?", id).Update("last_login", gorm.Expr("NOW()")).Error
}
