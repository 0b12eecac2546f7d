package db

import (
	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/pkg/logger"
)

// Migrate runs database migrations. Models are listed parents-first so the
// foreign key constraints can be created in one pass.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Customer{},
		&model.Address{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.Inventory{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Review{},
		&model.WishlistItem{},
		&model.Coupon{},
		&model.OrderCoupon{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
