package service

import (
	"testing"

	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWishlistTest(t *testing.T) (WishlistService, *gorm.DB) {
	testDB := setupTestDB(t)
	wishlistRepo := repository.NewWishlistRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	return NewWishlistService(wishlistRepo, productRepo), testDB
}

func TestWishlistService_Add(t *testing.T) {
	svc, testDB := setupWishlistTest(t)

	customer := seedCustomer(t, testDB, "ada@example.com")
	product := seedProduct(t, testDB, "BOOK-0001", 39.99, 75)

	item, err := svc.Add(customer.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, item.ProductID)

	_, err = svc.Add(customer.ID, product.ID)
	assert.ErrorIs(t, err, ErrWishlistDuplicate)

	_, err = svc.Add(customer.ID, product.ID+999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlistService_ListAndRemove(t *testing.T) {
	svc, testDB := setupWishlistTest(t)

	customer := seedCustomer(t, testDB, "ada@example.com")
	other := seedCustomer(t, testDB, "other@example.com")
	book := seedProduct(t, testDB, "BOOK-0001", 39.99, 75)
	phone := seedProduct(t, testDB, "ELEC-0001", 699.99, 50)

	_, err := svc.Add(customer.ID, book.ID)
	require.NoError(t, err)
	_, err = svc.Add(customer.ID, phone.ID)
	require.NoError(t, err)
	_, err = svc.Add(other.ID, book.ID)
	require.NoError(t, err)

	items, err := svc.List(customer.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEmpty(t, item.Product.SKU)
	}

	require.NoError(t, svc.Remove(customer.ID, book.ID))

	items, err = svc.List(customer.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// The other customer's list is untouched.
	items, err = svc.List(other.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
