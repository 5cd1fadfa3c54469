package repositories

import "styleshop/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	// GetByProduct returns a product's reviews joined with the submitter's
	// name, newest first.
	GetByProduct(productID uint) ([]models.ProductReview, error)
}
