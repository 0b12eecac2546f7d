package model

import (
	"time"
)

type WishlistItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index;uniqueIndex:idx_wishlist_customer_product" json:"customer_id"`
	ProductID  uint      `gorm:"not null;index;uniqueIndex:idx_wishlist_customer_product" json:"product_id"`
	CreatedAt  time.Time `json:"created_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"product,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
