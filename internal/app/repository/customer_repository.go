package repository

import (
	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/pkg/logger"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindByID(id uint) (*model.Customer, error)
	FindByEmail(email string) (*model.Customer, error)
	FindAll(limit, offset int) ([]model.Customer, error)
	Update(customer *model.Customer) error
	Delete(id uint) error
	CountOrders(id uint) (int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *model.Customer) error {
	logger.Debug("Creating customer in database", map[string]interface{}{
		"email": customer.Email,
	})

	if err := r.db.Create(customer).Error; err != nil {
		logger.Error("Failed to create customer in database", err, map[string]interface{}{
			"email": customer.Email,
		})
		return err
	}

	logger.Debug("Customer created in database", map[string]interface{}{
		"customer_id": customer.ID,
		"email":       customer.Email,
	})
	return nil
}

func (r *customerRepository) FindByID(id uint) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.Preload("Addresses").First(&customer, id).Error
	if err != nil {
		logger.Error("Failed to find customer by ID in database", err, map[string]interface{}{
			"customer_id": id,
		})
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByEmail(email string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.Where("email = ?", email).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindAll(limit, offset int) ([]model.Customer, error) {
	var customers []model.Customer
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&customers).Error; err != nil {
		logger.Error("Failed to list customers", err)
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) Update(customer *model.Customer) error {
	logger.Debug("Updating customer in database", map[string]interface{}{
		"customer_id": customer.ID,
	})

	if err := r.db.Save(customer).Error; err != nil {
		logger.Error("Failed to update customer in database", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return err
	}
	return nil
}

// Delete removes the customer row. Addresses, reviews and wishlist entries
// cascade at the engine level; the orders FK rejects the delete while any
// order still references the customer.
func (r *customerRepository) Delete(id uint) error {
	logger.Debug("Deleting customer from database", map[string]interface{}{
		"customer_id": id,
	})

	if err := r.db.Delete(&model.Customer{}, id).Error; err != nil {
		logger.Error("Failed to delete customer from database", err, map[string]interface{}{
			"customer_id": id,
		})
		return err
	}
	return nil
}

func (r *customerRepository) CountOrders(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).Where("customer_id = ?", id).Count(&count).Error
	return count, err
}
