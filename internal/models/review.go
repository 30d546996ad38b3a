package models

import "time"

type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ShopID     int64     `json:"shop_id" gorm:"not null;index"`
	UserName   string    `json:"user_name" gorm:"not null"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    *string   `json:"comment,omitempty" gorm:"type:text"`
	ReviewDate time.Time `json:"review_date" gorm:"autoCreateTime"`

	// Associations
	Shop Shop `json:"shop,omitempty" gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
