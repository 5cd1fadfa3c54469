package storefront

import (
	"context"
	"errors"
	"sync"

	"styleshop/internal/models"
)

// Checkout errors reported before any request is issued.
var (
	ErrNotAuthenticated = errors.New("storefront: not authenticated")
	ErrEmptyCart        = errors.New("storefront: cart is empty")
)

// Checkout drives the order submission flow: idle until submitted, loading
// while the request is in flight, then back to idle. Success clears the
// cart; failure leaves it intact so the user can resubmit. There is no
// retry and no duplicate-submission guard: submitting twice creates two
// orders.
type Checkout struct {
	client *Client
	cart   *Cart

	mu      sync.Mutex
	loading bool
}

// NewCheckout creates a checkout flow over a client and a cart.
func NewCheckout(client *Client, cart *Cart) *Checkout {
	return &Checkout{
		client: client,
		cart:   cart,
	}
}

// Loading reports whether an order submission is in flight.
func (co *Checkout) Loading() bool {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.loading
}

// PlaceOrder assembles the cart into an order payload and submits it. An
// authenticated session and a non-empty cart are required; both are checked
// before any request goes out.
func (co *Checkout) PlaceOrder(ctx context.Context, userID uint, shipping models.ShippingAddress, paymentMethod string) (*OrderConfirmation, error) {
	if _, ok := co.client.Tokens().Token(); !ok {
		return nil, ErrNotAuthenticated
	}

	items := co.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	co.setLoading(true)
	defer co.setLoading(false)

	payload := OrderPayload{
		UserID:          userID,
		TotalAmount:     co.cart.Total(),
		ShippingAddress: shipping,
		PaymentMethod:   paymentMethod,
	}
	for _, item := range items {
		payload.Items = append(payload.Items, OrderItemPayload{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	conf, err := co.client.CreateOrder(ctx, payload)
	if err != nil {
		// The cart stays as it was; the user resubmits manually.
		return nil, err
	}

	co.cart.Clear()
	return conf, nil
}

func (co *Checkout) setLoading(v bool) {
	co.mu.Lock()
	defer co.mu.Unlock()
	co.loading = v
}
