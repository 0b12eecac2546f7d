package model

import (
	"time"
)

type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

type Coupon struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	Code          string       `gorm:"size:64;uniqueIndex;not null" json:"code"`
	Description   string       `gorm:"type:text" json:"description"`
	DiscountType  DiscountType `gorm:"type:varchar(20);not null;check:discount_type IN ('percentage','fixed_amount')" json:"discount_type"`
	DiscountValue float64      `gorm:"not null;check:discount_value >= 0" json:"discount_value"`
	ValidFrom     time.Time    `gorm:"not null" json:"valid_from"`
	ValidUntil    time.Time    `gorm:"not null" json:"valid_until"`
	MaxUses       *int         `json:"max_uses,omitempty"`
	UsedCount     int          `gorm:"not null;default:0" json:"used_count"`
	IsActive      bool         `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// OrderCoupon records a coupon redemption against an order. Coupons are
// protected while redemptions reference them.
type OrderCoupon struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	OrderID         uint      `gorm:"not null;index;uniqueIndex:idx_order_coupons_order_coupon" json:"order_id"`
	CouponID        uint      `gorm:"not null;index;uniqueIndex:idx_order_coupons_order_coupon" json:"coupon_id"`
	DiscountApplied float64   `gorm:"not null;check:discount_applied >= 0" json:"discount_applied"`
	CreatedAt       time.Time `json:"created_at"`

	Order  Order  `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Coupon Coupon `gorm:"foreignKey:CouponID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"coupon,omitempty"`
}

func (OrderCoupon) TableName() string {
	return "order_coupons"
}
