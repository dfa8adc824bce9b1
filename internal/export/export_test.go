package export_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saucerburger/pos-service/internal/export"
	"github.com/saucerburger/pos-service/internal/menu"
	"github.com/saucerburger/pos-service/internal/order"
)

func TestParseItemDetails(t *testing.T) {
	tests := []struct {
		name string
		item string
		want export.ItemDetails
	}{
		{
			name: "beef_burger",
			item: "Beef Burger",
			want: export.ItemDetails{MainItem: "Burger", Protein: "Beef", Load: "Single", Type: "A la carte"},
		},
		{
			name: "double_chicken_burger",
			item: "Double Chicken Burger",
			want: export.ItemDetails{MainItem: "Burger", Protein: "Chicken", Load: "Double", Type: "A la carte"},
		},
		{
			name: "combo",
			item: "Beef Burger Combo",
			want: export.ItemDetails{MainItem: "Burger", Protein: "Beef", Load: "Single", Type: "Combo"},
		},
		{
			name: "wrap",
			item: "Chicken Wrap",
			want: export.ItemDetails{MainItem: "Wrap", Protein: "Chicken", Load: "Single", Type: "A la carte"},
		},
		{
			name: "drink",
			item: "Coca Cola",
			want: export.ItemDetails{MainItem: "Coca Cola", Protein: "N/A", Load: "N/A", Type: "Drink"},
		},
		{
			name: "sauce",
			item: "Special Sauce Cup",
			want: export.ItemDetails{MainItem: "Special Sauce Cup", Protein: "N/A", Load: "N/A", Type: "Sauce"},
		},
		{
			name: "side",
			item: "Fries",
			want: export.ItemDetails{MainItem: "Fries", Protein: "N/A", Load: "N/A", Type: "Side"},
		},
		{
			name: "add_on",
			item: "Add Cheese",
			want: export.ItemDetails{MainItem: "Add Cheese", Protein: "N/A", Load: "N/A", Type: "Add-on"},
		},
		{
			name: "unclassified",
			item: "Mystery Box",
			want: export.ItemDetails{MainItem: "Mystery Box", Protein: "N/A", Load: "N/A", Type: "Other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, export.ParseItemDetails(tt.item))
		})
	}
}

func TestOrdersCSV(t *testing.T) {
	ts := time.Date(2026, 8, 28, 14, 45, 30, 0, time.Local)
	orders := []order.Order{
		{
			ID:          "1",
			OrderNumber: 1001,
			Timestamp:   ts,
			Items: []order.LineItem{
				{
					MenuItem: menu.Item{ID: "m6", Name: "Beef Burger Combo", Price: 20, IsCombo: true},
					Sauce:    "BBQ",
					SauceCup: "Special Sauce",
					Drink:    "Fanta",
					AddOns:   []string{"Add Cheese"},
					Spicy:    true,
					Quantity: 1,
				},
				{
					MenuItem: menu.Item{ID: "s1", Name: "Fries", Price: 5},
					Quantity: 2,
				},
			},
			TotalPrice:  30,
			Status:      order.StatusCompleted,
			PaymentMode: order.PaymentCardTerminal,
		},
	}

	out, err := export.OrdersCSV(orders)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per line item")

	assert.Equal(t, "Order ID", records[0][0])
	assert.Equal(t, "Price (GEL)", records[0][15])

	combo := records[1]
	assert.Equal(t, "1001", combo[0])
	assert.Equal(t, "28/08/2026", combo[1])
	assert.Equal(t, "14:45:30", combo[2])
	assert.Equal(t, "Combo", combo[6])
	assert.Equal(t, "BBQ", combo[8])
	assert.Equal(t, "Fanta", combo[9])
	assert.Equal(t, "Special Sauce", combo[10])
	assert.Equal(t, "Add Cheese, Spicy", combo[11])
	assert.Equal(t, "Card - Terminal", combo[13])
	assert.Equal(t, "completed", combo[14])
	assert.Equal(t, "₾20.00", combo[15])

	fries := records[2]
	assert.Equal(t, "Side", fries[6])
	assert.Equal(t, "2", fries[7])
	assert.Equal(t, "N/A", fries[8], "no sauce recorded")
	assert.Equal(t, "N/A", fries[9], "drink column is combo-only")
	assert.Equal(t, "N/A", fries[10], "sauce cup column is combo-only")
	assert.Equal(t, "₾10.00", fries[15])
}

func TestOrdersCSVEmptyList(t *testing.T) {
	out, err := export.OrdersCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 28, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "orders_2026-08-28.csv", export.Filename(now))
}
