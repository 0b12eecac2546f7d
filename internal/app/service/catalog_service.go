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
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category is referenced by products")
	ErrCategoryCycle    = errors.New("category cannot be its own ancestor")
	ErrInvalidCategory  = errors.New("invalid category input")
)

type CatalogService interface {
	CreateCategory(category *model.Category) error
	GetCategory(id uint) (*model.Category, error)
	GetCategoryTree() ([]model.Category, error)
	UpdateCategory(category *model.Category) error
	DeleteCategory(id uint) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{categoryRepo: categoryRepo}
}

func (s *catalogService) CreateCategory(category *model.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return ErrInvalidCategory
	}
	if category.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(*category.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}
	return s.categoryRepo.Create(category)
}

func (s *catalogService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) GetCategoryTree() ([]model.Category, error) {
	return s.categoryRepo.FindRoots()
}

func (s *catalogService) UpdateCategory(category *model.Category) error {
	if category.ParentID != nil {
		if *category.ParentID == category.ID {
			return ErrCategoryCycle
		}
		// Walk up from the proposed parent; hitting the category itself
		// means the move would create a cycle.
		parentID := category.ParentID
		for parentID != nil {
			parent, err := s.categoryRepo.FindByID(*parentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCategoryNotFound
				}
				return err
			}
			if parent.ID == category.ID {
				return ErrCategoryCycle
			}
			parentID = parent.ParentID
		}
	}
	return s.categoryRepo.Update(category)
}

// DeleteCategory removes a category. Child categories are detached, not
// deleted; the engine rejects the delete while products reference it.
func (s *catalogService) DeleteCategory(id uint) error {
	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Category delete rejected: referenced by products", map[string]interface{}{
			"category_id":   id,
			"product_count": count,
		})
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(id)
}
