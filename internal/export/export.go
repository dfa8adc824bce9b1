// Package export renders order lists into the tabular representations the
// presentation layer hands off to downloads and backup email.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/saucerburger/pos-service/internal/order"
)

// ItemDetails is the breakdown of a menu-item name used in export columns.
// The fields come from substring heuristics over the name, because the
// catalog carries no structured attributes for them.
type ItemDetails struct {
	MainItem string
	Protein  string
	Load     string
	Type     string
}

var (
	drinkNames = []string{"coca cola", "fanta", "sprite", "cappy", "ice tea", "water"}
	sauceNames = []string{"sauce", "cup", "jalapeno"}
	sideNames  = []string{"fries", "onion rings", "strips"}
)

// ParseItemDetails classifies a menu-item name for the export columns.
// Drinks, sauces, sides, and add-ons are recognized first; burgers and wraps
// get the protein/load/type breakdown; anything else is "Other".
func ParseItemDetails(name string) ItemDetails {
	lower := strings.ToLower(name)

	if containsAny(lower, drinkNames) {
		return ItemDetails{MainItem: name, Protein: "N/A", Load: "N/A", Type: "Drink"}
	}
	if containsAny(lower, sauceNames) {
		return ItemDetails{MainItem: name, Protein: "N/A", Load: "N/A", Type: "Sauce"}
	}
	if containsAny(lower, sideNames) {
		return ItemDetails{MainItem: name, Protein: "N/A", Load: "N/A", Type: "Side"}
	}
	if strings.Contains(lower, "add ") {
		return ItemDetails{MainItem: name, Protein: "N/A", Load: "N/A", Type: "Add-on"}
	}

	isWrap := strings.Contains(lower, "wrap")
	if !isWrap && !strings.Contains(lower, "burger") {
		return ItemDetails{MainItem: name, Protein: "N/A", Load: "N/A", Type: "Other"}
	}

	d := ItemDetails{MainItem: "Burger", Protein: "N/A", Load: "Single", Type: "A la carte"}
	if isWrap {
		d.MainItem = "Wrap"
	}
	if strings.Contains(lower, "chicken") {
		d.Protein = "Chicken"
	} else if strings.Contains(lower, "beef") {
		d.Protein = "Beef"
	}
	if strings.Contains(lower, "double") {
		d.Load = "Double"
	}
	if strings.Contains(lower, "combo") {
		d.Type = "Combo"
	}
	return d
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var csvHeader = []string{
	"Order ID",
	"Date",
	"Time",
	"Main Item",
	"Protein",
	"Load",
	"Type",
	"Quantity",
	"Sauce",
	"Drink",
	"Side Sauce",
	"Add Ons",
	"Remarks",
	"Payment Mode",
	"Status",
	"Price (GEL)",
}

// OrdersCSV renders one CSV row per line item.
func OrdersCSV(orders []order.Order) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("export: failed to write csv header: %w", err)
	}
	for _, o := range orders {
		for _, item := range o.Items {
			if err := w.Write(csvRow(o, item)); err != nil {
				return "", fmt.Errorf("export: failed to write csv row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export: failed to flush csv: %w", err)
	}
	return buf.String(), nil
}

func csvRow(o order.Order, item order.LineItem) []string {
	d := ParseItemDetails(item.MenuItem.Name)
	return []string{
		strconv.Itoa(o.OrderNumber),
		o.Timestamp.Format("02/01/2006"),
		o.Timestamp.Format("15:04:05"),
		d.MainItem,
		d.Protein,
		d.Load,
		d.Type,
		strconv.Itoa(item.Quantity),
		orNA(item.Sauce),
		comboOnly(d.Type, item.Drink),
		comboOnly(d.Type, item.SauceCup),
		orNA(addOnList(item)),
		orNA(item.Remarks),
		string(o.PaymentMode),
		string(o.Status),
		fmt.Sprintf("₾%.2f", item.LineTotal()),
	}
}

// addOnList folds the free spicy option into the add-on column.
func addOnList(item order.LineItem) string {
	addons := append([]string{}, item.AddOns...)
	if item.Spicy {
		addons = append(addons, "Spicy")
	}
	return strings.Join(addons, ", ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// comboOnly reports drink and sauce-cup columns for combo rows only, the
// convention the restaurant's spreadsheets use.
func comboOnly(itemType, value string) string {
	if itemType != "Combo" {
		return "N/A"
	}
	return orNA(value)
}

// Filename returns the default download name for a CSV export.
func Filename(now time.Time) string {
	return "orders_" + now.Format("2006-01-02") + ".csv"
}
