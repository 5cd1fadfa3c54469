package repositories

import (
	"fmt"
	"sync"
	"time"

	"styleshop/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders []models.Order
	nextID uint
	mu     sync.RWMutex

	// FailCreate makes the next Create call fail, simulating a persistence
	// error with nothing committed.
	FailCreate bool
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		nextID: 1,
	}
}

// Create adds a new order with its items, assigning IDs.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate {
		r.FailCreate = false
		return fmt.Errorf("failed to create order: simulated persistence failure")
	}

	order.ID = r.nextID
	r.nextID++
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		order.Items[i].ID = uint(len(r.orders)*100 + i + 1)
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders = append(r.orders, *order)
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.ID == id {
			o := order
			return &o, nil
		}
	}
	return nil, fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
}

// GetByUser returns a user's orders newest first.
func (r *MockOrderRepository) GetByUser(userID uint) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			orderList = append(orderList, r.orders[i])
		}
	}
	return orderList, nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id uint, status, trackingNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			if trackingNumber != "" {
				r.orders[i].TrackingNumber = trackingNumber
			}
			r.orders[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
}
