package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"styleshop/internal/models"
	"styleshop/internal/repositories"
)

// ErrEmptyOrder is returned when an order is submitted with no items.
var ErrEmptyOrder = errors.New("order has no items")

// EventPublisher publishes order lifecycle events for downstream consumers
// such as the fulfillment process.
type EventPublisher interface {
	PublishOrderCreated(order *models.Order) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
	logger    zerolog.Logger
}

// NewOrderService creates a new OrderService. The publisher may be nil, in
// which case no events are emitted.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher, logger zerolog.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateOrder persists a new order and its items atomically, then emits an
// order.created event. A publish failure is logged but never fails the
// order: the row is already committed at that point.
func (s *OrderService) CreateOrder(order *models.Order) error {
	if len(order.Items) == 0 {
		return ErrEmptyOrder
	}

	order.Status = models.OrderStatusPending
	if err := s.orderRepo.Create(order); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(order); err != nil {
			s.logger.Warn().Err(err).Uint("order_id", order.ID).
				Msg("failed to publish order created event")
		} else {
			s.logger.Info().Uint("order_id", order.ID).
				Msg("published order created event")
		}
	}
	return nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetUserOrders retrieves all orders for a user, newest first. A user with
// no orders gets an empty list.
func (s *OrderService) GetUserOrders(userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// ApplyStatusUpdate applies a status change coming from the fulfillment
// process. Unknown status values are rejected.
func (s *OrderService) ApplyStatusUpdate(orderID uint, status, trackingNumber string) error {
	switch status {
	case models.OrderStatusPending, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered,
		models.OrderStatusCancelled:
	default:
		return fmt.Errorf("unknown order status %q", status)
	}
	if err := s.orderRepo.UpdateStatus(orderID, status, trackingNumber); err != nil {
		return err
	}
	s.logger.Info().Uint("order_id", orderID).Str("status", status).
		Msg("order status updated by fulfillment")
	return nil
}
