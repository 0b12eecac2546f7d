package service

import (
	"errors"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/internal/app/repository"
	"gorm.io/gorm"
)

var ErrWishlistDuplicate = errors.New("product is already on the wishlist")

type WishlistService interface {
	Add(customerID, productID uint) (*model.WishlistItem, error)
	Remove(customerID, productID uint) error
	List(customerID uint) ([]model.WishlistItem, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) Add(customerID, productID uint) (*model.WishlistItem, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if _, err := s.wishlistRepo.FindByCustomerAndProduct(customerID, productID); err == nil {
		return nil, ErrWishlistDuplicate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &model.WishlistItem{
		CustomerID: customerID,
		ProductID:  productID,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *wishlistService) Remove(customerID, productID uint) error {
	return s.wishlistRepo.Delete(customerID, productID)
}

func (s *wishlistService) List(customerID uint) ([]model.WishlistItem, error) {
	return s.wishlistRepo.FindByCustomerID(customerID)
}
