package model

import (
	"time"
)

type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	SKU         string    `gorm:"size:64;uniqueIndex;not null" json:"sku"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// A category cannot be deleted while products still reference it.
	Category  Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Images    []ProductImage `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"images,omitempty"`
	Inventory *Inventory     `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"inventory,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

type ProductImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	AltText   string    `gorm:"size:255" json:"alt_text"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`

	// Multiple images may carry is_primary at the same time; keeping a
	// single primary per product is enforced by the catalog service, not
	// by a schema constraint.
	Product Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
