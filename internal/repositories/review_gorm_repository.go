package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"styleshop/internal/models"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// Create creates a new review in the database.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByProduct retrieves all reviews for a product with the submitter's
// name, newest first. The secondary sort on id keeps the order stable when
// timestamps collide.
func (r *GORMReviewRepository) GetByProduct(productID uint) ([]models.ProductReview, error) {
	reviews := make([]models.ProductReview, 0)
	err := r.db.Model(&models.Review{}).
		Select("reviews.id, reviews.user_id, reviews.product_id, reviews.rating, reviews.comment, reviews.created_at, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at DESC, reviews.id DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews for product %d: %w", productID, err)
	}
	return reviews, nil
}
