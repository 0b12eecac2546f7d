package service

import (
	"testing"

	"github.com/mkenani/storefront/internal/app/model"
	"github.com/mkenani/storefront/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewTest(t *testing.T) (ReviewService, *gorm.DB) {
	testDB := setupTestDB(t)
	return NewReviewService(repository.NewReviewRepository(testDB)), testDB
}

func TestReviewService_AddReview(t *testing.T) {
	svc, testDB := setupReviewTest(t)

	customer := seedCustomer(t, testDB, "ada@example.com")
	product := seedProduct(t, testDB, "BOOK-0001", 39.99, 75)

	err := svc.AddReview(&model.Review{
		CustomerID: customer.ID, ProductID: product.ID, Rating: 6,
	})
	assert.ErrorIs(t, err, ErrInvalidRating)

	require.NoError(t, svc.AddReview(&model.Review{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Rating:     5,
		Title:      "Excellent",
		Comment:    "Would read again.",
	}))

	// One review per customer per product.
	err = svc.AddReview(&model.Review{
		CustomerID: customer.ID, ProductID: product.ID, Rating: 1,
	})
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestReviewService_UpdateAndDelete(t *testing.T) {
	svc, testDB := setupReviewTest(t)

	customer := seedCustomer(t, testDB, "ada@example.com")
	stranger := seedCustomer(t, testDB, "stranger@example.com")
	product := seedProduct(t, testDB, "BOOK-0001", 39.99, 75)

	review := &model.Review{CustomerID: customer.ID, ProductID: product.ID, Rating: 3}
	require.NoError(t, svc.AddReview(review))

	err := svc.UpdateReview(stranger.ID, &model.Review{ID: review.ID, Rating: 1})
	assert.ErrorIs(t, err, ErrReviewNotFound)

	require.NoError(t, svc.UpdateReview(customer.ID, &model.Review{
		ID:     review.ID,
		Rating: 4,
		Title:  "Better on a reread",
	}))

	reviews, avg, err := svc.GetProductReviews(product.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.InDelta(t, 4.0, avg, 0.001)

	err = svc.DeleteReview(stranger.ID, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
	require.NoError(t, svc.DeleteReview(customer.ID, review.ID))

	reviews, avg, err = svc.GetProductReviews(product.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.Zero(t, avg)
}

func TestReviewService_AverageRating(t *testing.T) {
	svc, testDB := setupReviewTest(t)

	product := seedProduct(t, testDB, "BOOK-0001", 39.99, 75)
	ratings := []int{5, 4, 2}
	for i, rating := range ratings {
		customer := seedCustomer(t, testDB, string(rune('a'+i))+"@example.com")
		require.NoError(t, svc.AddReview(&model.Review{
			CustomerID: customer.ID, ProductID: product.ID, Rating: rating,
		}))
	}

	reviews, avg, err := svc.GetProductReviews(product.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
	assert.InDelta(t, 11.0/3.0, avg, 0.001)
}
