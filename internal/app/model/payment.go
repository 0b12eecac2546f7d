package model

import (
	"time"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "credit_card"
	PaymentMethodPayPal         PaymentMethod = "paypal"
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Payment is one-to-one with an order. TransactionID is assigned by the
// payment provider, so it stays NULL until the payment settles; the unique
// index ignores NULLs.
type Payment struct {
	ID            uint          `gorm:"primarykey" json:"id"`
	OrderID       uint          `gorm:"not null;uniqueIndex" json:"order_id"`
	Method        PaymentMethod `gorm:"type:varchar(20);not null;check:method IN ('credit_card','paypal','bank_transfer','cash_on_delivery')" json:"method"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','completed','failed','refunded')" json:"status"`
	Amount        float64       `gorm:"not null;check:amount >= 0" json:"amount"`
	TransactionID *string       `gorm:"size:64;uniqueIndex" json:"transaction_id,omitempty"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Order Order `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
