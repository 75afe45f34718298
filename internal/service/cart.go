package service

import (
	"sync"

	"bravonest/internal/domain"
)

// Cart is the in-memory order basket. All line items belong to one
// restaurant at a time; nothing is persisted across process restarts.
// Totals are recomputed on every read, never cached.
type Cart struct {
	mu             sync.Mutex
	restaurantID   string
	restaurantName string
	items          []domain.CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem appends a line item. An item from a different restaurant than the
// current cart's restaurant is rejected; the caller must clear the cart
// first. Adding an item already in the cart merges by summing quantities.
func (c *Cart) AddItem(item domain.CartItem) error {
	const op = "AddItem"
	if item.MenuItemID == "" {
		return domain.E(domain.KindValidation, op, "menu item id is required", nil)
	}
	if item.Quantity <= 0 {
		return domain.E(domain.KindValidation, op, "quantity must be positive", nil)
	}
	if item.UnitPrice < 0 {
		return domain.E(domain.KindValidation, op, "price must not be negative", nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) > 0 && item.RestaurantID != c.restaurantID {
		return domain.E(domain.KindValidation, op,
			"your cart has items from "+c.restaurantName+"; clear it to order from another restaurant", nil)
	}

	for i := range c.items {
		if c.items[i].MenuItemID == item.MenuItemID {
			c.items[i].Quantity += item.Quantity
			return nil
		}
	}

	c.restaurantID = item.RestaurantID
	c.restaurantName = item.RestaurantName
	c.items = append(c.items, item)
	return nil
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes
// the line; no zero or negative line ever persists.
func (c *Cart) UpdateQuantity(menuItemID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(menuItemID)
		return
	}
	for i := range c.items {
		if c.items[i].MenuItemID == menuItemID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem drops a line item.
func (c *Cart) RemoveItem(menuItemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(menuItemID)
}

func (c *Cart) removeLocked(menuItemID string) {
	for i := range c.items {
		if c.items[i].MenuItemID == menuItemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	if len(c.items) == 0 {
		c.restaurantID = ""
		c.restaurantName = ""
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.restaurantID = ""
	c.restaurantName = ""
}

// Items returns a copy of the current line items.
func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]domain.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// RestaurantID returns the restaurant the cart is scoped to, empty when the
// cart is empty.
func (c *Cart) RestaurantID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restaurantID
}

// TotalItems is the sum of line quantities.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity across all lines.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, item := range c.items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// OrderItems converts the cart lines into order item inputs for checkout.
func (c *Cart) OrderItems() []domain.OrderItemInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]domain.OrderItemInput, 0, len(c.items))
	for _, line := range c.items {
		items = append(items, domain.OrderItemInput{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			Note:       line.Note,
		})
	}
	return items
}
