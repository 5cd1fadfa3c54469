package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"styleshop/internal/models"
	"styleshop/internal/services"
)

// OrderItemRequest is one line of an order submission. Price is a pointer
// so a missing field can be told apart from a zero price.
type OrderItemRequest struct {
	ProductID uint     `json:"productId" validate:"required"`
	Quantity  int      `json:"quantity" validate:"required,gt=0"`
	Price     *float64 `json:"price" validate:"required"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	UserID          uint                   `json:"userId" validate:"required"`
	Items           []OrderItemRequest     `json:"items" validate:"required,min=1,dive"`
	TotalAmount     *float64               `json:"totalAmount" validate:"required"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// CreateOrderResponse echoes the created order back to the client.
type CreateOrderResponse struct {
	OrderID     uint               `json:"orderId"`
	UserID      uint               `json:"userId"`
	TotalAmount float64            `json:"totalAmount"`
	Items       []models.OrderItem `json:"items"`
}

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/:userId", h.HandleGetUserOrders)
}

// HandleCreateOrder validates the checkout payload and creates the order.
// Persistence failures come back as a generic 500; the detail stays in the
// server log.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order data: userId, items, or totalAmount is missing",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     *item.Price,
		})
	}

	order := models.Order{
		UserID:          req.UserID,
		Items:           items,
		TotalAmount:     *req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}

	if err := h.service.CreateOrder(&order); err != nil {
		h.logger.Error().Err(err).Uint("user_id", req.UserID).Msg("failed to create order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create order",
		})
	}

	h.logger.Info().Uint("order_id", order.ID).Uint("user_id", order.UserID).
		Float64("total", order.TotalAmount).Msg("order created")

	return c.Status(fiber.StatusCreated).JSON(CreateOrderResponse{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
	})
}

// HandleGetUserOrders retrieves all orders for a user, newest first. A user
// with no orders gets an empty list, not an error.
func (h *OrderHandler) HandleGetUserOrders(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing or invalid userId",
		})
	}

	orders, err := h.service.GetUserOrders(uint(userID))
	if err != nil {
		h.logger.Error().Err(err).Int("user_id", userID).Msg("failed to fetch orders")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to get orders",
		})
	}
	return c.JSON(orders)
}
