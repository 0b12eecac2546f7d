package repository

import (
	"time"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/pkg/logger"
	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(coupon *model.Coupon) error
	FindByID(id uint) (*model.Coupon, error)
	FindByCode(code string) (*model.Coupon, error)
	FindActive() ([]model.Coupon, error)
	Update(coupon *model.Coupon) error
	Delete(id uint) error
	DeactivateExpired(now time.Time) (int64, error)
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *model.Coupon) error {
	logger.Debug("Creating coupon in database", map[string]interface{}{
		"code":          coupon.Code,
		"discount_type": coupon.DiscountType,
	})

	if err := r.db.Create(coupon).Error; err != nil {
		logger.Error("Failed to create coupon in database", err, map[string]interface{}{
			"code": coupon.Code,
		})
		return err
	}
	return nil
}

func (r *couponRepository) FindByID(id uint) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindByCode(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindActive() ([]model.Coupon, error) {
	var coupons []model.Coupon
	err := r.db.Where("is_active = ?", true).
		Order("valid_until ASC").
		Find(&coupons).Error
	if err != nil {
		logger.Error("Failed to list active coupons", err)
		return nil, err
	}
	return coupons, nil
}

func (r *couponRepository) Update(coupon *model.Coupon) error {
	if err := r.db.Save(coupon).Error; err != nil {
		logger.Error("Failed to update coupon in database", err, map[string]interface{}{
			"coupon_id": coupon.ID,
		})
		return err
	}
	return nil
}

// Delete removes a coupon. Redemptions reference coupons with RESTRICT, so
// a coupon that has been applied to an order cannot be removed.
func (r *couponRepository) Delete(id uint) error {
	logger.Debug("Deleting coupon from database", map[string]interface{}{
		"coupon_id": id,
	})

	if err := r.db.Delete(&model.Coupon{}, id).Error; err != nil {
		logger.Error("Failed to delete coupon from database", err, map[string]interface{}{
			"coupon_id": id,
		})
		return err
	}
	return nil
}

// DeactivateExpired flips is_active off for coupons whose validity window
// has passed. Returns how many rows changed.
func (r *couponRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&model.Coupon{}).
		Where("is_active = ? AND valid_until < ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate expired coupons", result.Error)
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		logger.Info("Deactivated expired coupons", map[string]interface{}{
			"count": result.RowsAffected,
		})
	}
	return result.RowsAffected, nil
}
