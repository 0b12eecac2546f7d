package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/mkenani/storefront/internal/app/service"
	"github.com/mkenani/storefront/internal/db"
	"github.com/mkenani/storefront/pkg/logger"
)

// storefront demo walks the integrity rules end to end: create a category,
// a product in it and its stock, then show that the category delete is
// rejected while the product references it.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through the referential-integrity rules against a live database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootDB(); err != nil {
			return err
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return err
		}

		categoryRepo := repository.NewCategoryRepository(db.GetDB())
		productRepo := repository.NewProductRepository(db.GetDB())
		inventoryRepo := repository.NewInventoryRepository(db.GetDB())

		catalog := service.NewCatalogService(categoryRepo)
		products := service.NewProductService(productRepo, inventoryRepo)

		category := &model.Category{Name: "Electronics (demo)"}
		if err := catalog.CreateCategory(category); err != nil {
			return err
		}
		logger.Info("Created category", map[string]interface{}{
			"category_id": category.ID,
			"name":        category.Name,
		})

		product, err := products.CreateProduct(&model.Product{
			CategoryID: category.ID,
			SKU:        "DEMO-SMX-699",
			Name:       "Smartphone X",
			Price:      699.99,
		}, 50)
		if err != nil {
			return err
		}
		logger.Info("Created product with inventory", map[string]interface{}{
			"product_id": product.ID,
			"sku":        product.SKU,
			"stock":      50,
		})

		err = catalog.DeleteCategory(category.ID)
		if errors.Is(err, service.ErrCategoryInUse) {
			logger.Info("Category delete rejected as expected: still referenced by a product", map[string]interface{}{
				"category_id": category.ID,
			})
		} else if err != nil {
			return err
		} else {
			logger.Warn("Category delete unexpectedly succeeded", map[string]interface{}{
				"category_id": category.ID,
			})
		}

		// Clean up demo rows, children first.
		if err := products.DeleteProduct(product.ID); err != nil {
			return err
		}
		return catalog.DeleteCategory(category.ID)
	},
}
