package service

import (
	"errors"
	"strings"
	"time"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/mkenani/storefront/pkg/logger"
	"github.com/mkenani/storefront/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponInvalid   = errors.New("invalid coupon input")
	ErrCouponExpired   = errors.New("coupon is outside its validity window")
	ErrCouponExhausted = errors.New("coupon usage cap reached")
	ErrCouponInactive  = errors.New("coupon is not active")
)

type CreateCouponInput struct {
	Code          string // generated when empty
	Description   string
	DiscountType  model.DiscountType
	DiscountValue float64
	ValidFrom     time.Time
	ValidUntil    time.Time
	MaxUses       *int
}

type CouponService interface {
	CreateCoupon(input CreateCouponInput) (*model.Coupon, error)
	GetByCode(code string) (*model.Coupon, error)
	Validate(code string, at time.Time) (*model.Coupon, error)
	PreviewDiscount(code string, itemsTotal float64) (float64, error)
	Deactivate(id uint) error
	ExpireLapsed() (int64, error)
}

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) CreateCoupon(input CreateCouponInput) (*model.Coupon, error) {
	if input.DiscountValue < 0 {
		return nil, ErrCouponInvalid
	}
	switch input.DiscountType {
	case model.DiscountTypePercentage:
		if input.DiscountValue > 100 {
			return nil, ErrCouponInvalid
		}
	case model.DiscountTypeFixedAmount:
	default:
		return nil, ErrCouponInvalid
	}
	if !input.ValidUntil.After(input.ValidFrom) {
		return nil, ErrCouponInvalid
	}
	if input.MaxUses != nil && *input.MaxUses <= 0 {
		return nil, ErrCouponInvalid
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		code = util.NewCouponCode("SALE", 8)
	}

	coupon := &model.Coupon{
		Code:          code,
		Description:   input.Description,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		ValidFrom:     input.ValidFrom,
		ValidUntil:    input.ValidUntil,
		MaxUses:       input.MaxUses,
		IsActive:      true,
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}

	logger.Info("Coupon created", map[string]interface{}{
		"coupon_id":     coupon.ID,
		"code":          coupon.Code,
		"discount_type": coupon.DiscountType,
	})
	return coupon, nil
}

func (s *couponService) GetByCode(code string) (*model.Coupon, error) {
	coupon, err := s.couponRepo.FindByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return coupon, nil
}

// Validate checks whether the coupon could be redeemed at the given time.
// It does not consume a use; redemption happens inside order placement.
func (s *couponService) Validate(code string, at time.Time) (*model.Coupon, error) {
	coupon, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}
	if at.Before(coupon.ValidFrom) || at.After(coupon.ValidUntil) {
		return nil, ErrCouponExpired
	}
	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return nil, ErrCouponExhausted
	}
	return coupon, nil
}

func (s *couponService) PreviewDiscount(code string, itemsTotal float64) (float64, error) {
	coupon, err := s.Validate(code, time.Now())
	if err != nil {
		return 0, err
	}
	return couponDiscount(coupon, itemsTotal), nil
}

func (s *couponService) Deactivate(id uint) error {
	coupon, err := s.couponRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCouponNotFound
		}
		return err
	}
	coupon.IsActive = false
	return s.couponRepo.Update(coupon)
}

// ExpireLapsed deactivates coupons past their validity window. Called by
// the scheduler.
func (s *couponService) ExpireLapsed() (int64, error) {
	return s.couponRepo.DeactivateExpired(time.Now())
}
