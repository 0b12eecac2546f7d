package service

import (
	"errors"
	"math"
	"time"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/mkenani/storefront/pkg/logger"
	"github.com/mkenani/storefront/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPaymentExists   = errors.New("order already has a payment")
	ErrAmountMismatch  = errors.New("payment amount does not match order total")
	ErrInvalidMethod   = errors.New("unknown payment method")
	ErrPaymentNotOpen  = errors.New("payment is not in a pending state")
)

type PaymentService interface {
	RecordPayment(orderID uint, method model.PaymentMethod, amount float64) (*model.Payment, error)
	CompletePayment(orderID uint) (*model.Payment, error)
	FailPayment(orderID uint) error
	RefundPayment(orderID uint) error
	GetByOrderID(orderID uint) (*model.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// RecordPayment opens a pending payment for an order. One payment per
// order; the amount must match the order total to the cent.
func (s *paymentService) RecordPayment(orderID uint, method model.PaymentMethod, amount float64) (*model.Payment, error) {
	switch method {
	case model.PaymentMethodCreditCard, model.PaymentMethodPayPal,
		model.PaymentMethodBankTransfer, model.PaymentMethodCashOnDelivery:
	default:
		return nil, ErrInvalidMethod
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if math.Abs(amount-order.TotalAmount) >= 0.01 {
		logger.Warn("Payment rejected: amount mismatch", map[string]interface{}{
			"order_id":    orderID,
			"amount":      amount,
			"order_total": order.TotalAmount,
		})
		return nil, ErrAmountMismatch
	}

	if _, err := s.paymentRepo.FindByOrderID(orderID); err == nil {
		return nil, ErrPaymentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	payment := &model.Payment{
		OrderID: orderID,
		Method:  method,
		Status:  model.PaymentStatusPending,
		Amount:  amount,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	logger.Info("Payment recorded", map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   orderID,
		"method":     method,
	})
	return payment, nil
}

// CompletePayment settles a pending payment: assigns the transaction id,
// stamps paid_at and mirrors the status onto the order.
func (s *paymentService) CompletePayment(orderID uint) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Status != model.PaymentStatusPending {
		return nil, ErrPaymentNotOpen
	}

	txnID := util.NewTransactionID()
	now := time.Now()
	payment.Status = model.PaymentStatusCompleted
	payment.TransactionID = &txnID
	payment.PaidAt = &now
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdatePaymentStatus(orderID, model.PaymentStatusCompleted); err != nil {
		return nil, err
	}

	logger.Info("Payment completed", map[string]interface{}{
		"payment_id":     payment.ID,
		"order_id":       orderID,
		"transaction_id": txnID,
	})
	return payment, nil
}

func (s *paymentService) FailPayment(orderID uint) error {
	return s.setStatus(orderID, model.PaymentStatusFailed, model.PaymentStatusPending)
}

func (s *paymentService) RefundPayment(orderID uint) error {
	return s.setStatus(orderID, model.PaymentStatusRefunded, model.PaymentStatusCompleted)
}

func (s *paymentService) setStatus(orderID uint, to, requiredFrom model.PaymentStatus) error {
	payment, err := s.paymentRepo.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	if payment.Status != requiredFrom {
		return ErrPaymentNotOpen
	}

	payment.Status = to
	if err := s.paymentRepo.Update(payment); err != nil {
		return err
	}
	return s.orderRepo.UpdatePaymentStatus(orderID, to)
}

func (s *paymentService) GetByOrderID(orderID uint) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}
