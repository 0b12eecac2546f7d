package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Order struct {
	ID                uint          `gorm:"primarykey" json:"id"`
	CustomerID        uint          `gorm:"not null;index" json:"customer_id"`
	ShippingAddressID uint          `gorm:"not null" json:"shipping_address_id"`
	BillingAddressID  uint          `gorm:"not null" json:"billing_address_id"`
	Status            OrderStatus   `gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','processing','shipped','delivered','cancelled','refunded')" json:"status"`
	PaymentStatus     PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';check:payment_status IN ('pending','completed','failed','refunded')" json:"payment_status"`
	TotalAmount       float64       `gorm:"not null;check:total_amount >= 0" json:"total_amount"`
	ShippingFee       float64       `gorm:"not null;default:0;check:shipping_fee >= 0" json:"shipping_fee"`
	TaxAmount         float64       `gorm:"not null;default:0;check:tax_amount >= 0" json:"tax_amount"`
	Notes             string        `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`

	// Customers and the referenced addresses are protected while the
	// order exists; the order's own dependents cascade.
	Customer        Customer      `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"customer,omitempty"`
	ShippingAddress Address       `gorm:"foreignKey:ShippingAddressID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"shipping_address,omitempty"`
	BillingAddress  Address       `gorm:"foreignKey:BillingAddressID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"billing_address,omitempty"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items,omitempty"`
	Payment         *Payment      `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"payment,omitempty"`
	Coupons         []OrderCoupon `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"coupons,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"not null;index;uniqueIndex:idx_order_items_order_product" json:"order_id"`
	ProductID uint      `gorm:"not null;index;uniqueIndex:idx_order_items_order_product" json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice float64   `gorm:"not null;check:unit_price >= 0" json:"unit_price"`
	Subtotal  float64   `gorm:"not null" json:"subtotal"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Order   Order   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Product Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeSave keeps the subtotal derived from its factors. It runs on both
// insert and update, so the stored value can never drift from
// quantity * unit_price.
func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	i.Subtotal = float64(i.Quantity) * i.UnitPrice
	return nil
}
