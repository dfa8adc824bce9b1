package order

import (
	"errors"
	"strconv"
	"time"
)

var (
	// ErrEmptyCart is returned when a cart with no rows is submitted.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidPaymentMode is returned when the payment mode is not one of
	// the known labels.
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
)

// Cart assembles finalized line items into a new order. It is not safe for
// concurrent use; each order is built by a single caller.
type Cart struct {
	lines []LineItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts a finalized line into the cart. If an existing row is the same
// configuration (same catalog item, sauce, sauce cup, drink, add-on set,
// spicy flag, and remarks), the quantities are summed on that row; otherwise
// the line is appended, preserving insertion order.
func (c *Cart) Add(item LineItem) {
	for i := range c.lines {
		if sameConfiguration(c.lines[i], item) {
			c.lines[i].Quantity += item.Quantity
			return
		}
	}
	c.lines = append(c.lines, item)
}

// SetQuantity sets a row's quantity exactly; zero or below removes the row.
// An out-of-range index is a defensive no-op.
func (c *Cart) SetQuantity(index, quantity int) {
	if index < 0 || index >= len(c.lines) {
		return
	}
	if quantity <= 0 {
		c.lines = append(c.lines[:index], c.lines[index+1:]...)
		return
	}
	c.lines[index].Quantity = quantity
}

// Lines returns a copy of the cart rows in insertion order.
func (c *Cart) Lines() []LineItem {
	out := make([]LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Total is the sum of unit price times quantity over all rows.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

// Submit finalizes the cart into an order in status "preparing". The order
// number is allocated through nextNumber, which must persist the counter
// before returning so numbers are never reused (gaps are fine). On success
// the cart is cleared; on any failure it is left untouched.
func (c *Cart) Submit(nextNumber func() (int, error), now time.Time, mode PaymentMode) (*Order, error) {
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}
	if !mode.Valid() {
		return nil, ErrInvalidPaymentMode
	}

	number, err := nextNumber()
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:          strconv.FormatInt(now.UnixNano(), 10),
		OrderNumber: number,
		Timestamp:   now,
		Items:       c.Lines(),
		TotalPrice:  c.Total(),
		Status:      StatusPreparing,
		PaymentMode: mode,
	}
	c.lines = nil
	return o, nil
}

// sameConfiguration is the merge identity: every field except quantity must
// match, with add-ons compared as a set.
func sameConfiguration(a, b LineItem) bool {
	return a.MenuItem.ID == b.MenuItem.ID &&
		a.Sauce == b.Sauce &&
		a.SauceCup == b.SauceCup &&
		a.Drink == b.Drink &&
		a.Spicy == b.Spicy &&
		a.Remarks == b.Remarks &&
		sameAddOnSet(a.AddOns, b.AddOns)
}

func sameAddOnSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, n := range a {
		set[n] = struct{}{}
	}
	for _, n := range b {
		if _, ok := set[n]; !ok {
			return false
		}
	}
	return true
}
