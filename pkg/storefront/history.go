package storefront

import (
	"context"
	"sync"

	"styleshop/internal/models"
)

// History holds the order-history view for one signed-in user: the fetched
// orders plus purely local UI state — which orders are expanded, which
// product's review form is open and which products' review panels are
// visible.
type History struct {
	client *Client

	mu             sync.Mutex
	userID         uint
	loaded         bool
	orders         []models.Order
	expanded       map[uint]bool
	reviewing      uint // product whose review form is open, 0 = none
	visibleReviews map[uint]bool
}

// NewHistory creates an empty order-history view.
func NewHistory(client *Client) *History {
	return &History{
		client:         client,
		expanded:       make(map[uint]bool),
		visibleReviews: make(map[uint]bool),
	}
}

// Load fetches the user's orders. Orders are fetched once per user-identity
// change; loading the same user again is a no-op. Switching users resets
// all local view state.
func (h *History) Load(ctx context.Context, userID uint) error {
	h.mu.Lock()
	if h.loaded && h.userID == userID {
		h.mu.Unlock()
		return nil
	}
	h.mu.Unlock()

	orders, err := h.client.Orders(ctx, userID)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.userID = userID
	h.loaded = true
	h.orders = orders
	h.expanded = make(map[uint]bool)
	h.reviewing = 0
	h.visibleReviews = make(map[uint]bool)
	return nil
}

// Refresh refetches the current user's orders, keeping the view state.
func (h *History) Refresh(ctx context.Context) error {
	h.mu.Lock()
	userID := h.userID
	loaded := h.loaded
	h.mu.Unlock()
	if !loaded {
		return nil
	}

	orders, err := h.client.Orders(ctx, userID)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.orders = orders
	return nil
}

// Orders returns the fetched orders, newest first as served by the API.
func (h *History) Orders() []models.Order {
	h.mu.Lock()
	defer h.mu.Unlock()
	orders := make([]models.Order, len(h.orders))
	copy(orders, h.orders)
	return orders
}

// ToggleExpanded flips whether an order's line items are shown and returns
// the new state.
func (h *History) ToggleExpanded(orderID uint) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.expanded[orderID] = !h.expanded[orderID]
	return h.expanded[orderID]
}

// IsExpanded reports whether an order is expanded.
func (h *History) IsExpanded(orderID uint) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.expanded[orderID]
}

// OpenReviewForm opens the review form for a product. Only one form is
// open at a time.
func (h *History) OpenReviewForm(productID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reviewing = productID
}

// CloseReviewForm closes any open review form.
func (h *History) CloseReviewForm() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reviewing = 0
}

// ReviewingProduct returns the product whose review form is open, or 0.
func (h *History) ReviewingProduct() uint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reviewing
}

// ToggleReviews flips a product's review panel and returns the new state.
func (h *History) ToggleReviews(productID uint) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.visibleReviews[productID] = !h.visibleReviews[productID]
	return h.visibleReviews[productID]
}

// ReviewsVisible reports whether a product's review panel is shown.
func (h *History) ReviewsVisible(productID uint) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visibleReviews[productID]
}

// SubmitReview posts a review for a product and closes the review form.
// There is no optimistic update: the review list shows the new entry only
// after the panel is refetched or toggled open again.
func (h *History) SubmitReview(ctx context.Context, productID uint, rating int, comment string) error {
	if err := h.client.SubmitReview(ctx, productID, rating, comment); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.reviewing == productID {
		h.reviewing = 0
	}
	return nil
}
