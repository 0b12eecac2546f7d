package service

import (
	"errors"
	"strings"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/mkenani/storefront/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product input")
	ErrNegativePrice   = errors.New("price must not be negative")
)

type ProductService interface {
	CreateProduct(product *model.Product, initialStock int) (*model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductBySKU(sku string) (*model.Product, error)
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error

	AddImage(image *model.ProductImage) error
	SetPrimaryImage(productID, imageID uint) error
	AdjustStock(productID uint, delta int) error
	GetStock(productID uint) (int, error)
}

type productService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
}

func NewProductService(productRepo repository.ProductRepository, inventoryRepo repository.InventoryRepository) ProductService {
	return &productService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// CreateProduct creates the product together with its inventory row, so
// every product has exactly one stock record from the start.
func (s *productService) CreateProduct(product *model.Product, initialStock int) (*model.Product, error) {
	product.SKU = strings.ToUpper(strings.TrimSpace(product.SKU))
	if product.SKU == "" || product.Name == "" || product.CategoryID == 0 {
		return nil, ErrInvalidProduct
	}
	if product.Price < 0 {
		return nil, ErrNegativePrice
	}
	if initialStock < 0 {
		return nil, ErrInvalidProduct
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	inventory := &model.Inventory{
		ProductID: product.ID,
		Quantity:  initialStock,
	}
	if err := s.inventoryRepo.Create(inventory); err != nil {
		return nil, err
	}
	product.Inventory = inventory

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
		"stock":      initialStock,
	})
	return product, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductBySKU(sku string) (*model.Product, error) {
	product, err := s.productRepo.FindBySKU(strings.ToUpper(strings.TrimSpace(sku)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindWithFilter(filter)
}

func (s *productService) UpdateProduct(product *model.Product) error {
	if product.Price < 0 {
		return ErrNegativePrice
	}
	return s.productRepo.Update(product)
}

func (s *productService) DeleteProduct(id uint) error {
	return s.productRepo.Delete(id)
}

// AddImage stores the image; when it is marked primary the product's other
// images lose the flag, keeping a single primary per product as service
// policy (the schema allows several).
func (s *productService) AddImage(image *model.ProductImage) error {
	if image.URL == "" || image.ProductID == 0 {
		return ErrInvalidProduct
	}
	if err := s.productRepo.AddImage(image); err != nil {
		return err
	}
	if image.IsPrimary {
		return s.productRepo.SetPrimaryImage(image.ProductID, image.ID)
	}
	return nil
}

func (s *productService) SetPrimaryImage(productID, imageID uint) error {
	err := s.productRepo.SetPrimaryImage(productID, imageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	return err
}

func (s *productService) AdjustStock(productID uint, delta int) error {
	err := s.inventoryRepo.Adjust(productID, delta)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	return err
}

func (s *productService) GetStock(productID uint) (int, error) {
	inventory, err := s.inventoryRepo.FindByProductID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProductNotFound
		}
		return 0, err
	}
	return inventory.Quantity, nil
}
