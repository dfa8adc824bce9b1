package order

import (
	"time"

	"github.com/saucerburger/pos-service/internal/menu"
)

type Status string

const (
	StatusPreparing Status = "preparing"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

// PaymentMode carries the user-facing labels the counter staff pick from.
type PaymentMode string

const (
	PaymentCardTerminal PaymentMode = "Card - Terminal"
	PaymentBankTransfer PaymentMode = "Bank Transfer"
	PaymentCash         PaymentMode = "Cash"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentCardTerminal, PaymentBankTransfer, PaymentCash:
		return true
	}
	return false
}

// LineItem is a finalized, priced cart line. MenuItem is a by-value snapshot
// of the catalog entry whose Price field holds the effective unit price
// (base price plus the add-on surcharge at finalize time), so historical
// orders are immune to later catalog edits.
type LineItem struct {
	MenuItem menu.Item `json:"menuItem"`
	Sauce    string    `json:"sauce,omitempty"`
	SauceCup string    `json:"sauceCup,omitempty"`
	Drink    string    `json:"drink,omitempty"`
	AddOns   []string  `json:"addons,omitempty"`
	Spicy    bool      `json:"spicy,omitempty"`
	Remarks  string    `json:"remarks,omitempty"`
	Quantity int       `json:"quantity"`
}

// LineTotal is the line's contribution to the order total.
func (li LineItem) LineTotal() float64 {
	return li.MenuItem.Price * float64(li.Quantity)
}

// Order is immutable once created, except for the status field; records are
// removed outright on cancellation or history deletion.
type Order struct {
	ID          string      `json:"id"`
	OrderNumber int         `json:"orderNumber"`
	Timestamp   time.Time   `json:"timestamp"`
	Items       []LineItem  `json:"items"`
	TotalPrice  float64     `json:"totalPrice"`
	Status      Status      `json:"status"`
	PaymentMode PaymentMode `json:"paymentMode"`
}

// Normalize applies forward-migration defaults to records loaded from older
// persisted snapshots: early schema versions had no add-ons, spicy flag,
// status, or payment mode.
func (o *Order) Normalize() {
	if o.Status == "" {
		o.Status = StatusPreparing
	}
	if o.PaymentMode == "" {
		o.PaymentMode = PaymentCash
	}
	for i := range o.Items {
		if o.Items[i].AddOns == nil {
			o.Items[i].AddOns = []string{}
		}
		if o.Items[i].Quantity == 0 {
			o.Items[i].Quantity = 1
		}
	}
}

// NormalizeAll is Normalize over a freshly loaded order list.
func NormalizeAll(orders []Order) {
	for i := range orders {
		orders[i].Normalize()
	}
}
