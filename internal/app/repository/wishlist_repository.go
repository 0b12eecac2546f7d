package repository

import (
	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/pkg/logger"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(item *model.WishlistItem) error
	FindByCustomerID(customerID uint) ([]model.WishlistItem, error)
	FindByCustomerAndProduct(customerID, productID uint) (*model.WishlistItem, error)
	Delete(customerID, productID uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(item *model.WishlistItem) error {
	logger.Debug("Creating wishlist item in database", map[string]interface{}{
		"customer_id": item.CustomerID,
		"product_id":  item.ProductID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create wishlist item in database", err, map[string]interface{}{
			"customer_id": item.CustomerID,
			"product_id":  item.ProductID,
		})
		return err
	}
	return nil
}

func (r *wishlistRepository) FindByCustomerID(customerID uint) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := r.db.Where("customer_id = ?", customerID).
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find wishlist items by customer ID", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return items, nil
}

func (r *wishlistRepository) FindByCustomerAndProduct(customerID, productID uint) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) Delete(customerID, productID uint) error {
	if err := r.db.Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&model.WishlistItem{}).Error; err != nil {
		logger.Error("Failed to delete wishlist item from database", err, map[string]interface{}{
			"customer_id": customerID,
			"product_id":  productID,
		})
		return err
	}
	return nil
}
