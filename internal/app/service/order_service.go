package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/mkenani/storefront/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyOrder          = errors.New("order has no items")
	ErrDuplicateOrderLine  = errors.New("order lists the same product twice")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidAddress      = errors.New("address does not belong to the customer")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidTransition   = errors.New("illegal order status transition")
	ErrCouponNotApplicable = errors.New("coupon cannot be applied")
)

// orderTransitions is the allowed status graph. The schema leaves status an
// open enum; the service narrows it so an order cannot, say, go from
// delivered back to pending.
var orderTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusProcessing, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:    {model.OrderStatusDelivered},
	model.OrderStatusDelivered:  {model.OrderStatusRefunded},
	model.OrderStatusCancelled:  {model.OrderStatusRefunded},
	model.OrderStatusRefunded:   nil,
}

type OrderLine struct {
	ProductID uint
	Quantity  int
}

type PlaceOrderInput struct {
	CustomerID        uint
	ShippingAddressID uint
	BillingAddressID  uint
	Lines             []OrderLine
	CouponCode        string
	ShippingFee       float64
	TaxAmount         float64
	Notes             string
}

type OrderService interface {
	PlaceOrder(input PlaceOrderInput) (*model.Order, error)
	GetOrderByID(customerID, orderID uint) (*model.Order, error)
	GetCustomerOrders(customerID uint) ([]model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
	UpdatePaymentStatus(orderID uint, status model.PaymentStatus) error
	UpdateItemQuantity(orderID, productID uint, quantity int) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	addressRepo repository.AddressRepository
	db          *gorm.DB
}

func NewOrderService(orderRepo repository.OrderRepository, addressRepo repository.AddressRepository, db *gorm.DB) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		db:          db,
	}
}

// PlaceOrder creates an order with its items, decrements inventory and
// optionally redeems a coupon, all in one transaction. Product and
// inventory rows are locked for the duration so concurrent orders cannot
// oversell.
func (s *orderService) PlaceOrder(input PlaceOrderInput) (*model.Order, error) {
	logger.Info("Placing order", map[string]interface{}{
		"customer_id": input.CustomerID,
		"line_count":  len(input.Lines),
		"coupon_code": input.CouponCode,
	})

	if len(input.Lines) == 0 {
		return nil, ErrEmptyOrder
	}
	seen := make(map[uint]bool, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if seen[line.ProductID] {
			return nil, ErrDuplicateOrderLine
		}
		seen[line.ProductID] = true
	}
	if input.ShippingFee < 0 || input.TaxAmount < 0 {
		return nil, ErrInvalidQuantity
	}

	if err := s.checkAddressOwnership(input.CustomerID, input.ShippingAddressID, input.BillingAddressID); err != nil {
		return nil, err
	}

	var order *model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var itemsTotal float64
		items := make([]model.OrderItem, 0, len(input.Lines))

		for _, line := range input.Lines {
			var product model.Product
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			var inventory model.Inventory
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("product_id = ?", product.ID).
				First(&inventory).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			if inventory.Quantity < line.Quantity {
				logger.Warn("Order rejected: insufficient stock", map[string]interface{}{
					"customer_id": input.CustomerID,
					"product_id":  product.ID,
					"requested":   line.Quantity,
					"available":   inventory.Quantity,
				})
				return ErrInsufficientStock
			}

			if err := tx.Model(&model.Inventory{}).
				Where("product_id = ?", product.ID).
				Update("quantity", gorm.Expr("quantity - ?", line.Quantity)).Error; err != nil {
				return err
			}

			items = append(items, model.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
			itemsTotal += product.Price * float64(line.Quantity)
		}

		var discount float64
		var redeemed *model.Coupon
		if input.CouponCode != "" {
			coupon, amount, err := redeemCoupon(tx, input.CouponCode, itemsTotal)
			if err != nil {
				return err
			}
			redeemed = coupon
			discount = amount
		}

		total := itemsTotal + input.ShippingFee + input.TaxAmount - discount
		if total < 0 {
			total = 0
		}

		order = &model.Order{
			CustomerID:        input.CustomerID,
			ShippingAddressID: input.ShippingAddressID,
			BillingAddressID:  input.BillingAddressID,
			Status:            model.OrderStatusPending,
			PaymentStatus:     model.PaymentStatusPending,
			TotalAmount:       total,
			ShippingFee:       input.ShippingFee,
			TaxAmount:         input.TaxAmount,
			Notes:             input.Notes,
			Items:             items,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		if redeemed != nil {
			redemption := model.OrderCoupon{
				OrderID:         order.ID,
				CouponID:        redeemed.ID,
				DiscountApplied: discount,
			}
			if err := tx.Create(&redemption).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to place order", err, map[string]interface{}{
			"customer_id": input.CustomerID,
		})
		return nil, err
	}

	logger.Info("Order placed", map[string]interface{}{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"total_amount": order.TotalAmount,
	})
	return order, nil
}

func (s *orderService) checkAddressOwnership(customerID uint, addressIDs ...uint) error {
	for _, id := range addressIDs {
		address, err := s.addressRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidAddress
			}
			return err
		}
		if address.CustomerID != customerID {
			return ErrInvalidAddress
		}
	}
	return nil
}

// redeemCoupon validates and consumes one use of a coupon under a row lock.
func redeemCoupon(tx *gorm.DB, code string, itemsTotal float64) (*model.Coupon, float64, error) {
	var coupon model.Coupon
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).
		First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrCouponNotFound
		}
		return nil, 0, err
	}

	now := time.Now()
	if !coupon.IsActive || now.Before(coupon.ValidFrom) || now.After(coupon.ValidUntil) {
		return nil, 0, ErrCouponNotApplicable
	}
	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return nil, 0, ErrCouponNotApplicable
	}

	discount := couponDiscount(&coupon, itemsTotal)

	if err := tx.Model(&model.Coupon{}).
		Where("id = ?", coupon.ID).
		Update("used_count", gorm.Expr("used_count + ?", 1)).Error; err != nil {
		return nil, 0, err
	}
	return &coupon, discount, nil
}

func couponDiscount(coupon *model.Coupon, itemsTotal float64) float64 {
	var discount float64
	switch coupon.DiscountType {
	case model.DiscountTypePercentage:
		discount = itemsTotal * coupon.DiscountValue / 100
	case model.DiscountTypeFixedAmount:
		discount = coupon.DiscountValue
	}
	if discount > itemsTotal {
		discount = itemsTotal
	}
	return discount
}

func (s *orderService) GetOrderByID(customerID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) GetCustomerOrders(customerID uint) ([]model.Order, error) {
	return s.orderRepo.FindByCustomerID(customerID)
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if !transitionAllowed(order.Status, status) {
		logger.Warn("Illegal order status transition rejected", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		})
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	return s.orderRepo.UpdateStatus(orderID, status)
}

func transitionAllowed(from, to model.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *orderService) UpdatePaymentStatus(orderID uint, status model.PaymentStatus) error {
	switch status {
	case model.PaymentStatusPending, model.PaymentStatusCompleted,
		model.PaymentStatusFailed, model.PaymentStatusRefunded:
	default:
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidTransition, status)
	}
	err := s.orderRepo.UpdatePaymentStatus(orderID, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	return err
}

// UpdateItemQuantity changes an order line's quantity and refreshes the
// order total. The item's subtotal is rederived by its BeforeSave hook.
func (s *orderService) UpdateItemQuantity(orderID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var item model.OrderItem
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ? AND product_id = ?", orderID, productID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		delta := quantity - item.Quantity
		if delta != 0 {
			var inventory model.Inventory
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("product_id = ?", productID).
				First(&inventory).Error; err != nil {
				return err
			}
			if inventory.Quantity < delta {
				return ErrInsufficientStock
			}
			if err := tx.Model(&model.Inventory{}).
				Where("product_id = ?", productID).
				Update("quantity", gorm.Expr("quantity - ?", delta)).Error; err != nil {
				return err
			}
		}

		oldSubtotal := item.Subtotal
		item.Quantity = quantity
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		return tx.Model(&model.Order{}).
			Where("id = ?", orderID).
			Update("total_amount", gorm.Expr("total_amount + ?", item.Subtotal-oldSubtotal)).Error
	})
}
