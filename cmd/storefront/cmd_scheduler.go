package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/mkenani/storefront/internal/app/service"
	"github.com/mkenani/storefront/internal/db"
	"github.com/mkenani/storefront/internal/scheduler"
	"github.com/mkenani/storefront/pkg/logger"
)

// storefront scheduler runs the recurring maintenance jobs in the
// foreground until interrupted.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the recurring maintenance jobs (daily coupon expiry)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootDB(); err != nil {
			return err
		}
		defer db.Close()

		couponService := service.NewCouponService(repository.NewCouponRepository(db.GetDB()))
		couponScheduler := scheduler.NewCouponScheduler(couponService)
		if err := couponScheduler.Start(); err != nil {
			return err
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("Shutting down", nil)
		couponScheduler.Stop()
		return nil
	},
}
