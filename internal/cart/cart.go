package cart

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/talkincode/streamstore/internal/domain"
)

var ErrItemNotFound = errors.New("item not in cart")

// Item is a product plus the quantity selected. Quantity is never below 1.
type Item struct {
	domain.Product
	Quantity int `json:"quantity"`
}

// Subtotal is price x quantity.
func (i Item) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Line is the persisted form of an item: the product is looked up again
// whenever the cart is read.
type Line struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Cart keeps items in insertion order, at most one per product id.
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// Hydrate rebuilds a cart from persisted lines. Lines whose product is not in
// products are dropped, duplicate lines are merged and quantities below 1 are
// raised to 1.
func Hydrate(lines []Line, products []domain.Product) *Cart {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	c := New()
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			continue
		}
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		if idx := c.index(p.ID); idx >= 0 {
			c.items[idx].Quantity += qty
			continue
		}
		c.items = append(c.items, Item{Product: p, Quantity: qty})
	}
	return c
}

func (c *Cart) index(id int64) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add increments the quantity when p is already in the cart, otherwise it
// appends p with quantity 1.
func (c *Cart) Add(p domain.Product) Item {
	if idx := c.index(p.ID); idx >= 0 {
		c.items[idx].Quantity++
		return c.items[idx]
	}
	item := Item{Product: p, Quantity: 1}
	c.items = append(c.items, item)
	return item
}

// UpdateQuantity applies a signed delta and floors the result at 1. It never
// removes an item.
func (c *Cart) UpdateQuantity(id int64, delta int) (Item, error) {
	idx := c.index(id)
	if idx < 0 {
		return Item{}, ErrItemNotFound
	}
	qty := c.items[idx].Quantity + delta
	if qty < 1 {
		qty = 1
	}
	c.items[idx].Quantity = qty
	return c.items[idx], nil
}

func (c *Cart) Remove(id int64) bool {
	idx := c.index(id)
	if idx < 0 {
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Count is the sum of all quantities.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Total is recomputed on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// ProductIDs returns the ids in cart order.
func (c *Cart) ProductIDs() []int64 {
	ids := make([]int64, 0, len(c.items))
	for _, it := range c.items {
		ids = append(ids, it.ID)
	}
	return ids
}

func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.items))
	for _, it := range c.items {
		lines = append(lines, Line{ProductID: it.ID, Quantity: it.Quantity})
	}
	return lines
}
