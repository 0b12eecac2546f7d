package service

import (
	"errors"
	"strings"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/mkenani/storefront/pkg/logger"
	"github.com/mkenani/storefront/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrCustomerHasOrders   = errors.New("customer has orders and cannot be deleted")
	ErrInvalidRegistration = errors.New("invalid registration input")
)

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type CustomerService interface {
	Register(input RegisterInput) (*model.Customer, error)
	Authenticate(email, password string) (*model.Customer, error)
	GetByID(id uint) (*model.Customer, error)
	UpdateProfile(customer *model.Customer) error
	Delete(id uint) error

	AddAddress(address *model.Address) error
	GetAddresses(customerID uint) ([]model.Address, error)
	SetDefaultAddress(customerID, addressID uint) error
	RemoveAddress(customerID, addressID uint) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	addressRepo  repository.AddressRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, addressRepo repository.AddressRepository) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
	}
}

func (s *customerService) Register(input RegisterInput) (*model.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") || len(input.Password) < 8 {
		return nil, ErrInvalidRegistration
	}
	if input.FirstName == "" || input.LastName == "" {
		return nil, ErrInvalidRegistration
	}

	if _, err := s.customerRepo.FindByEmail(email); err == nil {
		logger.Warn("Registration rejected: email already registered", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return nil, err
	}

	customer := &model.Customer{
		Email:        email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}

	logger.Info("Customer registered", map[string]interface{}{
		"customer_id": customer.ID,
		"email":       customer.Email,
	})
	return customer, nil
}

func (s *customerService) Authenticate(email, password string) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(customer.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return customer, nil
}

func (s *customerService) GetByID(id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) UpdateProfile(customer *model.Customer) error {
	return s.customerRepo.Update(customer)
}

// Delete removes a customer together with their addresses, reviews and
// wishlist entries. A customer with order history is kept: the orders FK
// restricts the delete, and the pre-check surfaces the typed error before
// the engine does.
func (s *customerService) Delete(id uint) error {
	count, err := s.customerRepo.CountOrders(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Customer delete rejected: has orders", map[string]interface{}{
			"customer_id": id,
			"order_count": count,
		})
		return ErrCustomerHasOrders
	}
	return s.customerRepo.Delete(id)
}

func (s *customerService) AddAddress(address *model.Address) error {
	if address.Type != model.AddressTypeBilling && address.Type != model.AddressTypeShipping {
		return ErrInvalidRegistration
	}
	return s.addressRepo.Create(address)
}

func (s *customerService) GetAddresses(customerID uint) ([]model.Address, error) {
	return s.addressRepo.FindByCustomerID(customerID)
}

func (s *customerService) SetDefaultAddress(customerID, addressID uint) error {
	return s.addressRepo.SetDefault(customerID, addressID)
}

func (s *customerService) RemoveAddress(customerID, addressID uint) error {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	if address.CustomerID != customerID {
		return ErrCustomerNotFound
	}
	return s.addressRepo.Delete(addressID)
}
