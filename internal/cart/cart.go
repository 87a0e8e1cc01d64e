package cart

import (
	"sort"

	"github.com/quickbite/ordering/internal/catalog"
)

// Line is one cart entry handed to order placement.
type Line struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Cart is a pure in-memory value: product id -> requested quantity. It is
// owned by one session, never persisted, and holds no prices of its own —
// totals are computed against a catalog snapshot supplied by the caller.
type Cart struct {
	UserID int64
	items  map[int64]int
}

func New(userID int64) *Cart {
	return &Cart{UserID: userID, items: make(map[int64]int)}
}

// Add increments the stored quantity for the product. Quantities of zero
// or less leave the cart unchanged.
func (c *Cart) Add(productID int64, qty int) {
	if qty <= 0 {
		return
	}
	c.items[productID] += qty
}

// Remove decrements the stored quantity. An entry that reaches zero or
// below is deleted entirely, never left at zero.
func (c *Cart) Remove(productID int64, qty int) {
	if qty <= 0 {
		return
	}
	if current, ok := c.items[productID]; ok {
		if current-qty <= 0 {
			delete(c.items, productID)
			return
		}
		c.items[productID] = current - qty
	}
}

func (c *Cart) Clear() {
	c.items = make(map[int64]int)
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) Quantity(productID int64) int {
	return c.items[productID]
}

// Items returns the entries sorted by product id, so placement and
// display see the same order on every call.
func (c *Cart) Items() []Line {
	lines := make([]Line, 0, len(c.items))
	for pid, qty := range c.items {
		lines = append(lines, Line{ProductID: pid, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

// Total sums unit price times quantity over entries present in the
// snapshot. Entries referencing a product absent from the snapshot
// contribute zero.
func (c *Cart) Total(snap catalog.Snapshot) float64 {
	total := 0.0
	for pid, qty := range c.items {
		if p, ok := snap[pid]; ok {
			total += p.Price * float64(qty)
		}
	}
	return total
}
