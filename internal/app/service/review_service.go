package service

import (
	"errors"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/mkenani/storefront/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("customer has already reviewed this product")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

type ReviewService interface {
	AddReview(review *model.Review) error
	UpdateReview(customerID uint, review *model.Review) error
	DeleteReview(customerID, reviewID uint) error
	GetProductReviews(productID uint) ([]model.Review, float64, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

func (s *reviewService) AddReview(review *model.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}

	if _, err := s.reviewRepo.FindByCustomerAndProduct(review.CustomerID, review.ProductID); err == nil {
		logger.Warn("Review rejected: duplicate", map[string]interface{}{
			"customer_id": review.CustomerID,
			"product_id":  review.ProductID,
		})
		return ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.reviewRepo.Create(review)
}

func (s *reviewService) UpdateReview(customerID uint, review *model.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}

	existing, err := s.reviewRepo.FindByID(review.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if existing.CustomerID != customerID {
		return ErrReviewNotFound
	}

	existing.Rating = review.Rating
	existing.Title = review.Title
	existing.Comment = review.Comment
	return s.reviewRepo.Update(existing)
}

func (s *reviewService) DeleteReview(customerID, reviewID uint) error {
	existing, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if existing.CustomerID != customerID {
		return ErrReviewNotFound
	}
	return s.reviewRepo.Delete(reviewID)
}

func (s *reviewService) GetProductReviews(productID uint) ([]model.Review, float64, error) {
	reviews, err := s.reviewRepo.FindByProductID(productID)
	if err != nil {
		return nil, 0, err
	}
	avg, err := s.reviewRepo.AverageRating(productID)
	if err != nil {
		return nil, 0, err
	}
	return reviews, avg, nil
}
