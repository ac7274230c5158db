package cart

import (
	"github.com/barbarashop/storefront-backend/pkg/errors"
	"github.com/barbarashop/storefront-backend/pkg/money"
	"github.com/shopspring/decimal"
)

// Item is the product snapshot a cart line carries. Prices are captured at
// add time so a later catalog edit does not silently reprice an open cart.
type Item struct {
	ProductID  int64
	Name       string
	PriceCents money.Cents
	ImageURL   string
}

// Line is one cart entry: an item plus how many of it.
type Line struct {
	Item     Item
	Quantity int
}

// Config tunes the checkout math. Defaults match the storefront rules:
// free shipping from $100, $9.99 flat fee below that, 8% tax on the subtotal.
type Config struct {
	FreeShippingThresholdCents money.Cents
	FlatShippingFeeCents       money.Cents
	TaxRate                    decimal.Decimal
}

// DefaultConfig returns the storefront's standard checkout rules.
func DefaultConfig() Config {
	return Config{
		FreeShippingThresholdCents: 10000,
		FlatShippingFeeCents:       999,
		TaxRate:                    decimal.New(8, -2),
	}
}

// Cart accumulates lines in insertion order and derives totals on demand.
// It is not safe for concurrent use; callers own the locking.
type Cart struct {
	cfg   Config
	lines []Line
	index map[int64]int
}

// New constructs an empty cart with the provided config.
func New(cfg Config) (*Cart, error) {
	if cfg.FreeShippingThresholdCents < 0 {
		return nil, errors.New(errors.CodeValidation, "free shipping threshold cannot be negative")
	}
	if cfg.FlatShippingFeeCents < 0 {
		return nil, errors.New(errors.CodeValidation, "flat shipping fee cannot be negative")
	}
	if cfg.TaxRate.IsNegative() {
		return nil, errors.New(errors.CodeValidation, "tax rate cannot be negative")
	}
	return &Cart{
		cfg:   cfg,
		index: make(map[int64]int),
	}, nil
}

// AddItem adds one unit of the item. Adding an item already in the cart
// increments its quantity rather than creating a second line.
func (c *Cart) AddItem(item Item) error {
	if item.ProductID <= 0 {
		return errors.New(errors.CodeValidation, "product id is required")
	}
	if item.PriceCents < 0 {
		return errors.New(errors.CodeValidation, "item price cannot be negative")
	}
	if pos, ok := c.index[item.ProductID]; ok {
		c.lines[pos].Quantity++
		return nil
	}
	c.index[item.ProductID] = len(c.lines)
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
	return nil
}

// RemoveItem drops the whole line for the product. Removing an absent
// product is a no-op.
func (c *Cart) RemoveItem(productID int64) {
	pos, ok := c.index[productID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:pos], c.lines[pos+1:]...)
	delete(c.index, productID)
	for i := pos; i < len(c.lines); i++ {
		c.index[c.lines[i].Item.ProductID] = i
	}
}

// SetQuantity replaces the quantity for the product's line. A quantity of
// zero or less removes the line. Setting an absent product is a no-op.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	if pos, ok := c.index[productID]; ok {
		c.lines[pos].Quantity = quantity
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[int64]int)
}

// Lines returns a copy of the cart entries in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItemCount sums quantities across all lines.
func (c *Cart) TotalItemCount() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// SubtotalCents is the sum of line price times quantity.
func (c *Cart) SubtotalCents() money.Cents {
	var subtotal money.Cents
	for _, line := range c.lines {
		subtotal += line.Item.PriceCents * money.Cents(line.Quantity)
	}
	return subtotal
}

// ShippingFeeCents is zero for an empty cart and once the subtotal reaches
// the free shipping threshold, otherwise the flat fee.
func (c *Cart) ShippingFeeCents() money.Cents {
	subtotal := c.SubtotalCents()
	if subtotal == 0 || subtotal >= c.cfg.FreeShippingThresholdCents {
		return 0
	}
	return c.cfg.FlatShippingFeeCents
}

// TaxCents applies the tax rate to the subtotal, rounding half up at the
// cent boundary. Shipping is not taxed.
func (c *Cart) TaxCents() money.Cents {
	return money.ApplyRate(c.SubtotalCents(), c.cfg.TaxRate)
}

// GrandTotalCents is subtotal plus shipping plus tax.
func (c *Cart) GrandTotalCents() money.Cents {
	return c.SubtotalCents() + c.ShippingFeeCents() + c.TaxCents()
}

// AmountToFreeShippingCents is how much more the subtotal needs before
// shipping becomes free. Zero once the threshold is met.
func (c *Cart) AmountToFreeShippingCents() money.Cents {
	subtotal := c.SubtotalCents()
	if subtotal >= c.cfg.FreeShippingThresholdCents {
		return 0
	}
	return c.cfg.FreeShippingThresholdCents - subtotal
}
