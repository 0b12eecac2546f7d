package model

import (
	"time"
)

// Review allows one rating per customer per product.
type Review struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CustomerID uint      `gorm:"not null;index;uniqueIndex:idx_reviews_customer_product" json:"customer_id"`
	ProductID  uint      `gorm:"not null;index;uniqueIndex:idx_reviews_customer_product" json:"product_id"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title      string    `gorm:"size:255" json:"title"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"product,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
