package service

import (
	"testing"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderTest(t *testing.T) (OrderService, *gorm.DB) {
	testDB := setupTestDB(t)
	orderRepo := repository.NewOrderRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)
	return NewOrderService(orderRepo, addressRepo, testDB), testDB
}

func TestOrderService_PlaceOrder(t *testing.T) {
	svc, testDB := setupOrderTest(t)

	customer := seedCustomer(t, testDB, "buyer@example.com")
	shipping := seedAddress(t, testDB, customer.ID, model.AddressTypeShipping)
	billing := seedAddress(t, testDB, customer.ID, model.AddressTypeBilling)
	phone := seedProduct(t, testDB, "ELEC-0001", 699.99, 50)
	shirt := seedProduct(t, testDB, "CLOT-0001", 19.99, 200)

	order, err := svc.PlaceOrder(PlaceOrderInput{
		CustomerID:        customer.ID,
		ShippingAddressID: shipping.ID,
		BillingAddressID:  billing.ID,
		Lines: []OrderLine{
			{ProductID: phone.ID, Quantity: 2},
			{ProductID: shirt.ID, Quantity: 3},
		},
		ShippingFee: 5.00,
		TaxAmount:   10.00,
	})
	require.NoError(t, err)

	wantItems := 2*699.99 + 3*19.99
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	assert.InDelta(t, wantItems+5.00+10.00, order.TotalAmount, 0.001)

	loaded, err := svc.GetOrderByID(customer.ID, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	for _, item := range loaded.Items {
		assert.InDelta(t, float64(item.Quantity)*item.UnitPrice, item.Subtotal, 0.001)
	}

	assert.Equal(t, 48, stockOf(t, testDB, phone.ID))
	assert.Equal(t, 197, stockOf(t, testDB, shirt.ID))
}

func TestOrderService_PlaceOrderValidation(t *testing.T) {
	svc, testDB := setupOrderTest(t)

	customer := seedCustomer(t, testDB, "buyer@example.com")
	other := seedCustomer(t, testDB, "other@example.com")
	shipping := seedAddress(t, testDB, customer.ID, model.AddressTypeShipping)
	billing := seedAddress(t, testDB, customer.ID, model.AddressTypeBilling)
	foreign := seedAddress(t, testDB, other.ID, model.AddressTypeShipping)
	product := seedProduct(t, testDB, "ELEC-0001", 699.99, 50)

	tests := []struct {
		name    string
		input   PlaceOrderInput
		wantErr error
	}{
		{
			name: "no items",
			input: PlaceOrderInput{
				CustomerID:        customer.ID,
				ShippingAddressID: shipping.ID,
				BillingAddressID:  billing.ID,
			},
			wantErr: ErrEmptyOrder,
		},
		{
			name: "zero quantity",
			input: PlaceOrderInput{
				CustomerID:        customer.ID,
				ShippingAddressID: shipping.ID,
				BillingAddressID:  billing.ID,
				Lines:             []OrderLine{{ProductID: product.ID, Quantity: 0}},
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "same product twice",
			input: PlaceOrderInput{
				CustomerID:        customer.ID,
				ShippingAddressID: shipping.ID,
				BillingAddressID:  billing.ID,
				Lines: []OrderLine{
					{ProductID: product.ID, Quantity: 1},
					{ProductID: product.ID, Quantity: 2},
				},
			},
			wantErr: ErrDuplicateOrderLine,
		},
		{
			name: "address of another customer",
			input: PlaceOrderInput{
				CustomerID:        customer.ID,
				ShippingAddressID: foreign.ID,
				BillingAddressID:  billing.ID,
				Lines:             []OrderLine{{ProductID: product.ID, Quantity: 1}},
			},
			wantErr: ErrInvalidAddress,
		},
		{
			name: "unknown product",
			input: PlaceOrderInput{
				CustomerID:        customer.ID,
				ShippingAddressID: shipping.ID,
				BillingAddressID:  billing.ID,
				Lines:             []OrderLine{{ProductID: product.ID + 999, Quantity: 1}},
			},
			wantErr: ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Nothing above should have touched stock.
	assert.Equal(t, 50, stockOf(t, testDB, product.ID))
}

func TestOrderService_PlaceOrderInsufficientStockRollsBack(t *testing.T) {
	svc, testDB := setupOrderTest(t)

	customer := seedCustomer(t, testDB, "buyer@example.com")
	shipping := seedAddress(t, testDB, customer.ID, model.AddressTypeShipping)
	billing := seedAddress(t, testDB, customer.ID, model.AddressTypeBilling)
	plenty := seedProduct(t, testDB, "ELEC-0001", 699.99, 50)
	scarce := seedProduct(t, testDB, "BOOK-0001", 39.99, 2)

	_, err := svc.PlaceOrder(PlaceOrderInput{
		CustomerID:        customer.ID,
		ShippingAddressID: shipping.ID,
		BillingAddressID:  billing.ID,
		Lines: []OrderLine{
			{ProductID: plenty.ID, Quantity: 5},
			{ProductID: scarce.ID, Quantity: 3},
		},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The first line's decrement must have been rolled back with the rest.
	assert.Equal(t, 50, stockOf(t, testDB, plenty.ID))
	assert.Equal(t, 2, stockOf(t, testDB, scarce.ID))

	var orderCount int64
	require.NoError(t, testDB.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestOrderService_PlaceOrderWithCoupon(t *testing.T) {
	svc, testDB := setupOrderTest(t)

	customer := seedCustomer(t, testDB, "buyer@example.com")
	shipping := seedAddress(t, testDB, customer.ID, model.AddressTypeShipping)
	billing := seedAddress(t, testDB, customer.ID, model.AddressTypeBilling)
	product := seedProduct(t, testDB, "ELEC-0001", 100.00, 50)
	coupon := seedCoupon(t, testDB, "SALE10", model.DiscountTypePercentage, 10, nil)

	order, err := svc.PlaceOrder(PlaceOrderInput{
		CustomerID:        customer.ID,
		ShippingAddressID: shipping.ID,
		BillingAddressID:  billing.ID,
		Lines:             []OrderLine{{ProductID: product.ID, Quantity: 2}},
		CouponCode:        "SALE10",
		ShippingFee:       5.00,
	})
	require.NoError(t, err)

	// 200 items total, 10% off the items, plus shipping.
	assert.InDelta(t, 200.00-20.00+5.00, order.TotalAmount, 0.001)

	var redemption model.OrderCoupon
	require.NoError(t, testDB.Where("order_id = ?", order.ID).First(&redemption).Error)
	assert.Equal(t, coupon.ID, redemption.CouponID)
	assert.InDelta(t, 20.00, redemption.DiscountApplied, 0.001)

	var reloaded model.Coupon
	require.NoError(t, testDB.First(&reloaded, coupon.ID).Error)
	assert.Equal(t, 1, reloaded.UsedCount)
}

func TestOrderService_PlaceOrderCouponRejections(t *testing.T) {
	svc, testDB := setupOrderTest(t)

	customer := seedCustomer(t, testDB, "buyer@example.com")
	shipping := seedAddress(t, testDB, customer.ID, model.AddressTypeShipping)
	billing := seedAddress(t, testDB, customer.ID, model.AddressTypeBilling)
	product := seedProduct(t, testDB, "ELEC-0001", 100.00, 50)

	maxUses := 1
	exhausted := seedCoupon(t, testDB, "ONESHOT", model.DiscountTypeFixedAmount, 5, &maxUses)
	require.NoError(t, testDB.Model(exhausted).Update("used_count", 1).Error)

	inactive := seedCoupon(t, testDB, "RETIRED", model.DiscountTypeFixedAmount, 5, nil)
	require.NoError(t, testDB.Model(inactive).Update("is_active", false).Error)

	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{"unknown code", "NOSUCH", ErrCouponNotFound},
		{"usage cap reached", "ONESHOT", ErrCouponNotApplicable},
		{"deactivated", "RETIRED", ErrCouponNotApplicable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(PlaceOrderInput{
				CustomerID:        customer.ID,
				ShippingAddressID: shipping.ID,
				BillingAddressID:  billing.ID,
				Lines:             []OrderLine{{ProductID: product.ID, Quantity: 1}},
				CouponCode:        tt.code,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Failed redemptions roll the stock decrement back too.
	assert.Equal(t, 50, stockOf(t, testDB, product.ID))
}

func TestOrderService_DiscountNeverExceedsItemsTotal(t *testing.T) {
	svc, testDB := setupOrderTest(t)

	customer := seedCustomer(t, testDB, "buyer@example.com")
	shipping := seedAddress(t, testDB, customer.ID, model.AddressTypeShipping)
	billing := seedAddress(t, testDB, customer.ID, model.AddressTypeBilling)
	product := seedProduct(t, testDB, "CLOT-0001", 10.00, 50)
	seedCoupon(t, testDB, "BIGCUT", model.DiscountTypeFixedAmount, 500, nil)

	order, err := svc.PlaceOrder(PlaceOrderInput{
		CustomerID:        customer.ID,
		ShippingAddressID: shipping.ID,
		BillingAddressID:  billing.ID,
		Lines:             []OrderLine{{ProductID: product.ID, Quantity: 1}},
		CouponCode:        "BIGCUT",
		ShippingFee:       4.00,
	})
	require.NoError(t, err)

	// Discount is capped at the items total; shipping still applies.
	assert.InDelta(t, 4.00, order.TotalAmount, 0.001)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	svc, testDB := setupOrderTest(t)

	customer := seedCustomer(t, testDB, "buyer@example.com")
	shipping := seedAddress(t, testDB, customer.ID, model.AddressTypeShipping)
	billing := seedAddress(t, testDB, customer.ID, model.AddressTypeBilling)
	product := seedProduct(t, testDB, "ELEC-0001", 699.99, 50)

	order, err := svc.PlaceOrder(PlaceOrderInput{
		CustomerID:        customer.ID,
		ShippingAddressID: shipping.ID,
		BillingAddressID:  billing.ID,
		Lines:             []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Skipping straight to delivered is not allowed.
	err = svc.UpdateOrderStatus(order.ID, model.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, svc.UpdateOrderStatus(order.ID, model.OrderStatusProcessing))
	require.NoError(t, svc.UpdateOrderStatus(order.ID, model.OrderStatusShipped))
	require.NoError(t, svc.UpdateOrderStatus(order.ID, model.OrderStatusDelivered))

	// Delivered orders cannot be cancelled.
	err = svc.UpdateOrderStatus(order.ID, model.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = svc.UpdateOrderStatus(order.ID+999, model.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_UpdateItemQuantity(t *testing.T) {
	svc, testDB := setupOrderTest(t)

	customer := seedCustomer(t, testDB, "buyer@example.com")
	shipping := seedAddress(t, testDB, customer.ID, model.AddressTypeShipping)
	billing := seedAddress(t, testDB, customer.ID, model.AddressTypeBilling)
	product := seedProduct(t, testDB, "ELEC-0001", 100.00, 10)

	order, err := svc.PlaceOrder(PlaceOrderInput{
		CustomerID:        customer.ID,
		ShippingAddressID: shipping.ID,
		BillingAddressID:  billing.ID,
		Lines:             []OrderLine{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, stockOf(t, testDB, product.ID))

	require.NoError(t, svc.UpdateItemQuantity(order.ID, product.ID, 5))
	assert.Equal(t, 5, stockOf(t, testDB, product.ID))

	var item model.OrderItem
	require.NoError(t, testDB.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Equal(t, 5, item.Quantity)
	assert.InDelta(t, 500.00, item.Subtotal, 0.001)

	var reloaded model.Order
	require.NoError(t, testDB.First(&reloaded, order.ID).Error)
	assert.InDelta(t, 500.00, reloaded.TotalAmount, 0.001)

	// Shrinking the line returns stock.
	require.NoError(t, svc.UpdateItemQuantity(order.ID, product.ID, 1))
	assert.Equal(t, 9, stockOf(t, testDB, product.ID))

	// More than the remaining stock allows.
	err = svc.UpdateItemQuantity(order.ID, product.ID, 50)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	err = svc.UpdateItemQuantity(order.ID, product.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestOrderService_GetOrderByIDChecksOwnership(t *testing.T) {
	svc, testDB := setupOrderTest(t)

	customer := seedCustomer(t, testDB, "buyer@example.com")
	stranger := seedCustomer(t, testDB, "stranger@example.com")
	shipping := seedAddress(t, testDB, customer.ID, model.AddressTypeShipping)
	billing := seedAddress(t, testDB, customer.ID, model.AddressTypeBilling)
	product := seedProduct(t, testDB, "ELEC-0001", 699.99, 50)

	order, err := svc.PlaceOrder(PlaceOrderInput{
		CustomerID:        customer.ID,
		ShippingAddressID: shipping.ID,
		BillingAddressID:  billing.ID,
		Lines:             []OrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.GetOrderByID(stranger.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	found, err := svc.GetOrderByID(customer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
}
