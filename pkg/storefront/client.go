package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"styleshop/internal/models"
)

// APIError is a non-2xx response from the store API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("store api: %d %s", e.StatusCode, e.Message)
}

// Client is a typed REST client for the store API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// NewClient creates a store client. A nil token store gets an in-memory one.
func NewClient(baseURL string, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// Tokens exposes the client's token store.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// OrderItemPayload is one line of an order submission.
type OrderItemPayload struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderPayload is the checkout request body.
type OrderPayload struct {
	UserID          uint                   `json:"userId"`
	Items           []OrderItemPayload     `json:"items"`
	TotalAmount     float64                `json:"totalAmount"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// OrderConfirmation is the server's echo of a created order.
type OrderConfirmation struct {
	OrderID     uint               `json:"orderId"`
	UserID      uint               `json:"userId"`
	TotalAmount float64            `json:"totalAmount"`
	Items       []models.OrderItem `json:"items"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type registerResponse struct {
	User models.User `json:"user"`
}

// ReviewPayload is the body for submitting a product review.
type ReviewPayload struct {
	ProductID uint   `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	var resp registerResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and stores the session token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.tokens.SetToken(resp.Token)
	return &resp.User, nil
}

// Logout drops the stored session token.
func (c *Client) Logout() {
	c.tokens.Clear()
}

// Products fetches the full catalogue.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single product.
func (c *Client) Product(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateOrder submits a checkout payload.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (*OrderConfirmation, error) {
	var conf OrderConfirmation
	if err := c.do(ctx, http.MethodPost, "/api/orders", payload, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Orders fetches a user's orders, newest first.
func (c *Client) Orders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", userID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SubmitReview posts a review for a product. Requires a stored session
// token; the server derives the submitter from it.
func (c *Client) SubmitReview(ctx context.Context, productID uint, rating int, comment string) error {
	return c.do(ctx, http.MethodPost, "/api/reviews", ReviewPayload{
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}, nil)
}

// Reviews fetches a product's reviews, newest first.
func (c *Client) Reviews(ctx context.Context, productID uint) ([]models.ProductReview, error) {
	var reviews []models.ProductReview
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/reviews/%d", productID), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// do issues one request and decodes the response into out (when non-nil).
// Non-2xx responses become an *APIError carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
