package models

// explicit join model to match the migration (has its own id)
type ShopCategory struct {
	ID         int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	ShopID     int64 `json:"shop_id" gorm:"index;not null"`
	CategoryID int64 `json:"category_id" gorm:"index;not null"`
}

func (ShopCategory) TableName() string {
	return "shop_categories"
}
