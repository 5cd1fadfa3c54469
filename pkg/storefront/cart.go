package storefront

import "sync"

// CartItem is one product line in the cart.
type CartItem struct {
	ProductID uint
	Name      string
	Price     float64
	Quantity  int
}

// Cart is a concurrency-safe shopping cart. Adding a product already in
// the cart merges quantities.
type Cart struct {
	mu    sync.Mutex
	items []CartItem
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add puts an item in the cart, merging with an existing line for the same
// product.
func (c *Cart) Add(item CartItem) {
	if item.Quantity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// Remove drops a product's line from the cart.
func (c *Cart) Remove(productID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the cart's lines in insertion order.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Len returns the number of distinct product lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Total returns the sum of price times quantity over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
