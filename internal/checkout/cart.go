package checkout

import (
	"errors"

	"scentpos/internal/domain"
)

// ErrOutOfStock is returned when a product with zero stock is added.
var ErrOutOfStock = errors.New("product out of stock")

// Line is one product and its requested quantity within a session.
type Line struct {
	Product  domain.Product
	Quantity int
}

// Cart is the in-memory line item store for one checkout session. It
// keeps at most one line per product id, in insertion order, and
// notifies subscribers after every mutation. It is not safe for
// concurrent use; a session belongs to a single terminal.
type Cart struct {
	lines []Line
	subs  []func()
}

func NewCart() *Cart {
	return &Cart{}
}

// Subscribe registers fn to run after every mutation.
func (c *Cart) Subscribe(fn func()) {
	c.subs = append(c.subs, fn)
}

func (c *Cart) notify() {
	for _, fn := range c.subs {
		fn()
	}
}

// Add puts one unit of product in the cart. An existing line is
// incremented instead of duplicated, clamped to the on-hand stock.
func (c *Cart) Add(product domain.Product) error {
	if product.Stock <= 0 {
		return ErrOutOfStock
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			if c.lines[i].Quantity < product.Stock {
				c.lines[i].Quantity++
			}
			c.notify()
			return nil
		}
	}
	c.lines = append(c.lines, Line{Product: product, Quantity: 1})
	c.notify()
	return nil
}

// SetQuantity sets a line's quantity, clamped to [1, stock]. A quantity
// of zero or less removes the line.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			if quantity > c.lines[i].Product.Stock {
				quantity = c.lines[i].Product.Stock
			}
			c.lines[i].Quantity = quantity
			c.notify()
			return
		}
	}
}

// Remove deletes the line unconditionally.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.notify()
			return
		}
	}
}

// Clear empties the cart. Called after a successful checkout.
func (c *Cart) Clear() {
	if len(c.lines) == 0 {
		return
	}
	c.lines = c.lines[:0]
	c.notify()
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
