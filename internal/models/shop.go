package models

import "time"

// ShopTypeAll is the sentinel type filter value meaning "no type filter".
const ShopTypeAll = "all"

// DefaultShopType is assigned when a registration carries no type tag.
const DefaultShopType = "antique"

type Shop struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"not null;uniqueIndex"`
	Address     string     `json:"address" gorm:"not null"`
	Phone       *string    `json:"phone,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Website     *string    `json:"website,omitempty"`
	Description *string    `json:"description,omitempty"`
	ShopType    string     `json:"shop_type" gorm:"not null;default:'antique'"`
	Latitude    *float64   `json:"latitude,omitempty" gorm:"type:decimal(9,6)"`
	Longitude   *float64   `json:"longitude,omitempty" gorm:"type:decimal(9,6)"`
	Rating      float64    `json:"rating" gorm:"type:decimal(2,1);default:0"`
	CreatedAt   *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`

	// association
	Categories []Category `json:"categories,omitempty" gorm:"many2many:shop_categories;constraint:OnDelete:CASCADE;"`
}

func (Shop) TableName() string {
	return "shops"
}

// CategoryNames flattens the joined categories into the denormalized
// string set the catalog works with.
func (s Shop) CategoryNames() []string {
	names := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		names = append(names, c.Name)
	}
	return names
}
