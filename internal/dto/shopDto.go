package dto

import (
	"antiquefinder/internal/models"
	"time"
)

// CreateShopDTO used for POST /api/shops. Required-field checks live in
// the service so rejection order matches the registration contract.
type CreateShopDTO struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Phone       *string  `json:"phone,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Website     *string  `json:"website,omitempty"`
	Description *string  `json:"description,omitempty"`
	ShopType    string   `json:"shop_type,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Categories  []string `json:"categories"`
}

// UpdateShopDTO used for PUT /api/shops/:id (partial updates allowed)
type UpdateShopDTO struct {
	Name        *string  `json:"name,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Website     *string  `json:"website,omitempty"`
	Description *string  `json:"description,omitempty"`
	ShopType    *string  `json:"shop_type,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Categories  []string `json:"categories,omitempty"` // nil leaves links untouched
}

// ShopResponse DTO for catalog listings
type ShopResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	Phone       *string    `json:"phone,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Website     *string    `json:"website,omitempty"`
	Description *string    `json:"description,omitempty"`
	ShopType    string     `json:"shop_type"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Rating      float64    `json:"rating"`
	Categories  []string   `json:"categories"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// ShopDetailResponse adds the review list for the detail view.
type ShopDetailResponse struct {
	ShopResponse
	ReviewsCount int              `json:"reviews_count"`
	Reviews      []ReviewResponse `json:"reviews"`
}

// Converters
func (d CreateShopDTO) ToModel() models.Shop {
	shopType := d.ShopType
	if shopType == "" {
		shopType = models.DefaultShopType
	}
	return models.Shop{
		Name:        d.Name,
		Address:     d.Address,
		Phone:       d.Phone,
		Email:       d.Email,
		Website:     d.Website,
		Description: d.Description,
		ShopType:    shopType,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
	}
}

func (d UpdateShopDTO) ApplyTo(s *models.Shop) {
	if d.Name != nil {
		s.Name = *d.Name
	}
	if d.Address != nil {
		s.Address = *d.Address
	}
	if d.Phone != nil {
		s.Phone = d.Phone
	}
	if d.Email != nil {
		s.Email = d.Email
	}
	if d.Website != nil {
		s.Website = d.Website
	}
	if d.Description != nil {
		s.Description = d.Description
	}
	if d.ShopType != nil {
		s.ShopType = *d.ShopType
	}
	if d.Latitude != nil {
		s.Latitude = d.Latitude
	}
	if d.Longitude != nil {
		s.Longitude = d.Longitude
	}
}

func FromModelToShopResponse(s models.Shop) ShopResponse {
	return ShopResponse{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		Phone:       s.Phone,
		Email:       s.Email,
		Website:     s.Website,
		Description: s.Description,
		ShopType:    s.ShopType,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Rating:      s.Rating,
		Categories:  s.CategoryNames(),
		CreatedAt:   s.CreatedAt,
	}
}
