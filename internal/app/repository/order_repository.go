package repository

import (
	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByCustomerID(customerID uint) ([]model.Order, error)
	UpdateStatus(orderID uint, status model.OrderStatus) error
	UpdatePaymentStatus(orderID uint, status model.PaymentStatus) error
	Delete(id uint) error

	FindItem(orderID, productID uint) (*model.OrderItem, error)
	SaveItem(item *model.OrderItem) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"customer_id": order.CustomerID,
		"item_count":  len(order.Items),
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"customer_id": order.CustomerID,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Payment").
		Preload("Coupons").
		Preload("ShippingAddress").
		Preload("BillingAddress").
		First(&order, id).Error
	if err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByCustomerID(customerID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("customer_id = ?", customerID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by customer ID", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(orderID uint, status model.OrderStatus) error {
	result := r.db.Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update order status", result.Error, map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) UpdatePaymentStatus(orderID uint, status model.PaymentStatus) error {
	result := r.db.Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", status)
	if result.Error != nil {
		logger.Error("Failed to update order payment status", result.Error, map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an order; items, the payment row and coupon redemptions
// cascade at the engine level.
func (r *orderRepository) Delete(id uint) error {
	logger.Debug("Deleting order from database", map[string]interface{}{
		"order_id": id,
	})

	if err := r.db.Delete(&model.Order{}, id).Error; err != nil {
		logger.Error("Failed to delete order from database", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}
	return nil
}

func (r *orderRepository) FindItem(orderID, productID uint) (*model.OrderItem, error) {
	var item model.OrderItem
	err := r.db.Where("order_id = ? AND product_id = ?", orderID, productID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveItem persists an order item; the BeforeSave hook recomputes the
// subtotal from quantity and unit price on every write.
func (r *orderRepository) SaveItem(item *model.OrderItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to save order item", err, map[string]interface{}{
			"order_id":   item.OrderID,
			"product_id": item.ProductID,
		})
		return err
	}
	return nil
}
