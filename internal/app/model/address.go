package model

import (
	"time"
)

type AddressType string

const (
	AddressTypeBilling  AddressType = "billing"
	AddressTypeShipping AddressType = "shipping"
)

type Address struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	CustomerID uint        `gorm:"not null;index" json:"customer_id"`
	Type       AddressType `gorm:"type:varchar(20);not null;check:type IN ('billing','shipping')" json:"type"`
	Street     string      `gorm:"size:255;not null" json:"street"`
	City       string      `gorm:"size:100;not null" json:"city"`
	State      string      `gorm:"size:100" json:"state"`
	PostalCode string      `gorm:"size:20;not null" json:"postal_code"`
	Country    string      `gorm:"size:100;not null" json:"country"`
	IsDefault  bool        `gorm:"default:false" json:"is_default"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}
