package services

import (
	"styleshop/internal/models"
	"styleshop/internal/repositories"
)

// ReviewService handles business logic related to product reviews.
type ReviewService struct {
	repo repositories.ReviewRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{
		repo: repo,
	}
}

// AddReview records a review for a product. Reviews are immutable once
// created; repeated submissions by the same user create additional rows.
func (s *ReviewService) AddReview(review *models.Review) error {
	return s.repo.Create(review)
}

// GetProductReviews retrieves a product's reviews with submitter names,
// newest first.
func (s *ReviewService) GetProductReviews(productID uint) ([]models.ProductReview, error) {
	return s.repo.GetByProduct(productID)
}
