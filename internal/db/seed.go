package db

import (
	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/pkg/logger"
)

// Seed inserts the bootstrap catalog: three categories, three products and
// their inventory rows. Safe to run repeatedly.
func Seed() error {
	logger.Info("Seeding initial data...")

	if err := seedCatalog(); err != nil {
		logger.Error("Failed to seed catalog", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedCatalog() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Catalog already seeded, skipping...", map[string]interface{}{
			"existing_categories": count,
		})
		return nil
	}

	categories := []model.Category{
		{Name: "Electronics", Description: "Phones, laptops and accessories"},
		{Name: "Clothing", Description: "Apparel for all seasons"},
		{Name: "Books", Description: "Print and audio books"},
	}

	for i := range categories {
		if err := DB.Create(&categories[i]).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"name": categories[i].Name,
			})
			return err
		}
	}

	products := []struct {
		product  model.Product
		quantity int
	}{
		{
			product: model.Product{
				CategoryID:  categories[0].ID,
				SKU:         "ELEC-0001",
				Name:        "Smartphone X",
				Description: "6.1\" OLED smartphone, 128GB",
				Price:       699.99,
			},
			quantity: 50,
		},
		{
			product: model.Product{
				CategoryID:  categories[1].ID,
				SKU:         "CLOT-0001",
				Name:        "Classic T-Shirt",
				Description: "100% cotton crew neck",
				Price:       19.99,
			},
			quantity: 200,
		},
		{
			product: model.Product{
				CategoryID:  categories[2].ID,
				SKU:         "BOOK-0001",
				Name:        "The Go Programming Language",
				Description: "Donovan & Kernighan",
				Price:       39.99,
			},
			quantity: 75,
		},
	}

	for i := range products {
		if err := DB.Create(&products[i].product).Error; err != nil {
			logger.Error("Failed to create product", err, map[string]interface{}{
				"sku": products[i].product.SKU,
			})
			return err
		}
		inv := model.Inventory{
			ProductID: products[i].product.ID,
			Quantity:  products[i].quantity,
		}
		if err := DB.Create(&inv).Error; err != nil {
			logger.Error("Failed to create inventory row", err, map[string]interface{}{
				"product_id": products[i].product.ID,
			})
			return err
		}
	}

	logger.Info("Catalog seeded successfully", map[string]interface{}{
		"categories": len(categories),
		"products":   len(products),
	})
	return nil
}
