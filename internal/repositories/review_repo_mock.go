package repositories

import (
	"sync"
	"time"

	"styleshop/internal/models"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews []models.Review
	names   map[uint][2]string
	nextID  uint
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		names:  make(map[uint][2]string),
		nextID: 1,
	}
}

// SetUserName registers the name joined onto reviews submitted by a user,
// standing in for the users table.
func (r *MockReviewRepository) SetUserName(userID uint, firstName, lastName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[userID] = [2]string{firstName, lastName}
}

// Create adds a new review.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	review.ID = r.nextID
	r.nextID++
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	r.reviews = append(r.reviews, *review)
	return nil
}

// GetByProduct returns a product's reviews newest first.
func (r *MockReviewRepository) GetByProduct(productID uint) ([]models.ProductReview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviewList := make([]models.ProductReview, 0)
	for i := len(r.reviews) - 1; i >= 0; i-- {
		rev := r.reviews[i]
		if rev.ProductID != productID {
			continue
		}
		name := r.names[rev.UserID]
		reviewList = append(reviewList, models.ProductReview{
			ID:        rev.ID,
			UserID:    rev.UserID,
			ProductID: rev.ProductID,
			Rating:    rev.Rating,
			Comment:   rev.Comment,
			CreatedAt: rev.CreatedAt,
			FirstName: name[0],
			LastName:  name[1],
		})
	}
	return reviewList, nil
}
