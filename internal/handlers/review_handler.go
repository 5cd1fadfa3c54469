package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"styleshop/internal/middleware"
	"styleshop/internal/models"
	"styleshop/internal/services"
)

// AddReviewRequest is the body for submitting a review. The submitter is
// taken from the authenticated session, never from the body.
type AddReviewRequest struct {
	ProductID uint   `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"required"`
	Comment   string `json:"comment" validate:"omitempty,max=1000"`
}

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the review routes with the Fiber app. Submitting
// a review requires authentication; reading reviews does not.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Post("/", authRequired, h.HandleAddReview)
	reviewRoutes.Get("/:productId", h.HandleGetProductReviews)
}

// HandleAddReview records a review tied to the authenticated user.
func (h *ReviewHandler) HandleAddReview(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	var req AddReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	review := models.Review{
		UserID:    userID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.service.AddReview(&review); err != nil {
		h.logger.Error().Err(err).Uint("user_id", userID).Uint("product_id", req.ProductID).
			Msg("failed to submit review")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to submit review",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review submitted successfully",
		"review":  review,
	})
}

// HandleGetProductReviews retrieves a product's reviews, newest first.
func (h *ReviewHandler) HandleGetProductReviews(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
		})
	}

	reviews, err := h.service.GetProductReviews(uint(productID))
	if err != nil {
		h.logger.Error().Err(err).Int("product_id", productID).Msg("failed to fetch reviews")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch reviews",
		})
	}
	return c.JSON(reviews)
}
