package scheduler

import (
	"github.com/mkenani/storefront/internal/app/service"
	"github.com/mkenani/storefront/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CouponScheduler deactivates coupons whose validity window has passed.
type CouponScheduler struct {
	cron          *cron.Cron
	couponService service.CouponService
}

func NewCouponScheduler(couponService service.CouponService) *CouponScheduler {
	return &CouponScheduler{
		cron:          cron.New(),
		couponService: couponService,
	}
}

// Start schedules the expiry sweep shortly after midnight every day.
func (s *CouponScheduler) Start() error {
	_, err := s.cron.AddFunc("5 0 * * *", func() {
		logger.Info("Starting scheduled coupon expiry sweep", nil)

		count, err := s.couponService.ExpireLapsed()
		if err != nil {
			logger.Error("Failed to expire lapsed coupons", err)
			return
		}

		logger.Info("Coupon expiry sweep finished", map[string]interface{}{
			"deactivated": count,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for coupon expiry", err)
		return err
	}

	s.cron.Start()
	logger.Info("Coupon scheduler started (daily at 00:05)", nil)
	return nil
}

func (s *CouponScheduler) Stop() {
	logger.Info("Stopping coupon scheduler...", nil)
	s.cron.Stop()
}
