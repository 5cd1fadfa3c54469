package repositories

import (
	"styleshop/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists the order row and all of its item rows atomically:
	// either everything commits or nothing does.
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	// GetByUser returns the user's orders newest first, line items included.
	// A user with no orders gets an empty slice, not an error.
	GetByUser(userID uint) ([]models.Order, error)
	UpdateStatus(id uint, status, trackingNumber string) error
}
