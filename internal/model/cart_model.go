package model

import (
	"github.com/google/uuid"
)

// Cart 每個user最多一個購物車, 下單後清空items, 不刪除cart本身
type Cart struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	BaseModel
}

// CartItem 同一個商品在同一台購物車內只會有一筆, 重複加入商品只會增加數量
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	Quantity  int       `gorm:"not null"`
	Product   Product   `gorm:"foreignKey:ProductID"`
	BaseModel
}
