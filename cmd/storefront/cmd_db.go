package main

import (
	"github.com/spf13/cobra"

	"github.com/mkenani/storefront/config"
	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/mkenani/storefront/internal/app/service"
	"github.com/mkenani/storefront/internal/db"
	"github.com/mkenani/storefront/pkg/logger"
)

// bootDB loads config, configures logging and opens the database.
func bootDB() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Environment == "development",
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		return nil, err
	}
	return cfg, nil
}

// storefront migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootDB(); err != nil {
			return err
		}
		defer db.Close()
		return db.Migrate()
	},
}

// storefront seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the bootstrap categories, products and inventory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootDB(); err != nil {
			return err
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return err
		}
		return db.Seed()
	},
}

// storefront expire-coupons
var expireCouponsCmd = &cobra.Command{
	Use:   "expire-coupons",
	Short: "Deactivate coupons whose validity window has passed",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootDB(); err != nil {
			return err
		}
		defer db.Close()

		couponService := service.NewCouponService(repository.NewCouponRepository(db.GetDB()))
		count, err := couponService.ExpireLapsed()
		if err != nil {
			return err
		}
		logger.Info("Expired coupons deactivated", map[string]interface{}{
			"count": count,
		})
		return nil
	},
}
