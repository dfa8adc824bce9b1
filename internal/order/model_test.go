package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saucerburger/pos-service/internal/order"
)

func TestPaymentModeValid(t *testing.T) {
	tests := []struct {
		mode order.PaymentMode
		want bool
	}{
		{mode: order.PaymentCash, want: true},
		{mode: order.PaymentCardTerminal, want: true},
		{mode: order.PaymentBankTransfer, want: true},
		{mode: order.PaymentMode(""), want: false},
		{mode: order.PaymentMode("cash"), want: false},
		{mode: order.PaymentMode("Barter"), want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.Valid())
		})
	}
}

func TestNormalizeDefaultsLegacyFields(t *testing.T) {
	o := order.Order{
		ID:    "1",
		Items: []order.LineItem{{Quantity: 0}, {Quantity: 3, AddOns: []string{"Add Cheese"}}},
	}

	o.Normalize()

	assert.Equal(t, order.StatusPreparing, o.Status)
	assert.Equal(t, order.PaymentCash, o.PaymentMode)
	assert.Equal(t, 1, o.Items[0].Quantity)
	assert.NotNil(t, o.Items[0].AddOns)
	assert.Equal(t, 3, o.Items[1].Quantity)
	assert.Equal(t, []string{"Add Cheese"}, o.Items[1].AddOns)
}

func TestNormalizeLeavesModernRecordsAlone(t *testing.T) {
	o := order.Order{
		Status:      order.StatusCompleted,
		PaymentMode: order.PaymentBankTransfer,
		Items:       []order.LineItem{{Quantity: 2, AddOns: []string{}}},
	}

	o.Normalize()

	assert.Equal(t, order.StatusCompleted, o.Status)
	assert.Equal(t, order.PaymentBankTransfer, o.PaymentMode)
	assert.Equal(t, 2, o.Items[0].Quantity)
}
