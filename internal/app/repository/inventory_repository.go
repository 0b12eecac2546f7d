package repository

import (
	"errors"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientStock is returned when an adjustment would take the
// on-hand quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

type InventoryRepository interface {
	Create(inventory *model.Inventory) error
	FindByProductID(productID uint) (*model.Inventory, error)
	SetQuantity(productID uint, quantity int) error
	Adjust(productID uint, delta int) error
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(inventory *model.Inventory) error {
	logger.Debug("Creating inventory row in database", map[string]interface{}{
		"product_id": inventory.ProductID,
		"quantity":   inventory.Quantity,
	})

	if err := r.db.Create(inventory).Error; err != nil {
		logger.Error("Failed to create inventory row in database", err, map[string]interface{}{
			"product_id": inventory.ProductID,
		})
		return err
	}
	return nil
}

func (r *inventoryRepository) FindByProductID(productID uint) (*model.Inventory, error) {
	var inventory model.Inventory
	err := r.db.Where("product_id = ?", productID).First(&inventory).Error
	if err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *inventoryRepository) SetQuantity(productID uint, quantity int) error {
	result := r.db.Model(&model.Inventory{}).
		Where("product_id = ?", productID).
		Update("quantity", quantity)
	if result.Error != nil {
		logger.Error("Failed to set inventory quantity", result.Error, map[string]interface{}{
			"product_id": productID,
			"quantity":   quantity,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Adjust applies a signed delta under a row lock. Going below zero fails
// before the check constraint would fire, so callers get a typed error.
func (r *inventoryRepository) Adjust(productID uint, delta int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var inventory model.Inventory
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", productID).
			First(&inventory).Error; err != nil {
			return err
		}

		if inventory.Quantity+delta < 0 {
			logger.Warn("Inventory adjustment rejected: would go negative", map[string]interface{}{
				"product_id": productID,
				"on_hand":    inventory.Quantity,
				"delta":      delta,
			})
			return ErrInsufficientStock
		}

		return tx.Model(&model.Inventory{}).
			Where("product_id = ?", productID).
			Update("quantity", gorm.Expr("quantity + ?", delta)).Error
	})
}
