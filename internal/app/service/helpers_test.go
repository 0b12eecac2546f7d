package service

import (
	"testing"
	"time"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

func seedCustomer(t *testing.T, testDB *gorm.DB, email string) *model.Customer {
	t.Helper()
	customer := &model.Customer{
		Email:        email,
		PasswordHash: "$2a$12$abcdefghijklmnopqrstuv",
		FirstName:    "Ada",
		LastName:     "Lovelace",
	}
	require.NoError(t, testDB.Create(customer).Error)
	return customer
}

func seedAddress(t *testing.T, testDB *gorm.DB, customerID uint, addrType model.AddressType) *model.Address {
	t.Helper()
	address := &model.Address{
		CustomerID: customerID,
		Type:       addrType,
		Street:     "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
	}
	require.NoError(t, testDB.Create(address).Error)
	return address
}

func seedProduct(t *testing.T, testDB *gorm.DB, sku string, price float64, stock int) *model.Product {
	t.Helper()
	category := &model.Category{Name: "Category " + sku}
	require.NoError(t, testDB.Create(category).Error)

	product := &model.Product{
		CategoryID: category.ID,
		SKU:        sku,
		Name:       "Product " + sku,
		Price:      price,
	}
	require.NoError(t, testDB.Create(product).Error)
	require.NoError(t, testDB.Create(&model.Inventory{ProductID: product.ID, Quantity: stock}).Error)
	return product
}

func seedCoupon(t *testing.T, testDB *gorm.DB, code string, discountType model.DiscountType, value float64, maxUses *int) *model.Coupon {
	t.Helper()
	coupon := &model.Coupon{
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: value,
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidUntil:    time.Now().Add(24 * time.Hour),
		MaxUses:       maxUses,
		IsActive:      true,
	}
	require.NoError(t, testDB.Create(coupon).Error)
	return coupon
}

func stockOf(t *testing.T, testDB *gorm.DB, productID uint) int {
	t.Helper()
	var inventory model.Inventory
	require.NoError(t, testDB.Where("product_id = ?", productID).First(&inventory).Error)
	return inventory.Quantity
}
