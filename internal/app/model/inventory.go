package model

import (
	"time"
)

// Inventory tracks stock one-to-one with a product.
type Inventory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex" json:"product_id"`
	Quantity  int       `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Inventory) TableName() string {
	return "inventory"
}
