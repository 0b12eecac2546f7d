package repository

import (
	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/pkg/logger"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *model.Address) error
	FindByID(id uint) (*model.Address, error)
	FindByCustomerID(customerID uint) ([]model.Address, error)
	Update(address *model.Address) error
	Delete(id uint) error
	SetDefault(customerID, addressID uint) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *model.Address) error {
	logger.Debug("Creating address in database", map[string]interface{}{
		"customer_id": address.CustomerID,
		"type":        address.Type,
	})

	if err := r.db.Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"customer_id": address.CustomerID,
		})
		return err
	}
	return nil
}

func (r *addressRepository) FindByID(id uint) (*model.Address, error) {
	var address model.Address
	if err := r.db.First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) FindByCustomerID(customerID uint) ([]model.Address, error) {
	var addresses []model.Address
	err := r.db.Where("customer_id = ?", customerID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		logger.Error("Failed to find addresses by customer ID", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) Update(address *model.Address) error {
	if err := r.db.Save(address).Error; err != nil {
		logger.Error("Failed to update address in database", err, map[string]interface{}{
			"address_id": address.ID,
		})
		return err
	}
	return nil
}

// Delete removes an address. Orders reference addresses with RESTRICT, so
// an address used by an order cannot be removed.
func (r *addressRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Address{}, id).Error; err != nil {
		logger.Error("Failed to delete address from database", err, map[string]interface{}{
			"address_id": id,
		})
		return err
	}
	return nil
}

// SetDefault marks one address as the customer's default and clears the
// flag on their other addresses in the same transaction.
func (r *addressRepository) SetDefault(customerID, addressID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Address{}).
			Where("customer_id = ? AND id <> ?", customerID, addressID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.Address{}).
			Where("customer_id = ? AND id = ?", customerID, addressID).
			Update("is_default", true).Error
	})
}
