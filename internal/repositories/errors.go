package repositories

import "errors"

// Sentinel errors returned by repositories so handlers can map them to
// HTTP status codes with errors.Is.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
)
