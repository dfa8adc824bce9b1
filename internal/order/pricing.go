package order

import (
	"errors"
	"sort"
	"strings"

	"github.com/saucerburger/pos-service/internal/menu"
)

// ErrMissingRequiredModifier is returned when a pending item is finalized
// without a mandatory sauce or drink selection.
var ErrMissingRequiredModifier = errors.New("missing required modifier")

// PendingItem is a cart line mid-configuration: a selected catalog item plus
// whatever modifiers the user has picked so far.
type PendingItem struct {
	MenuItem menu.Item
	Sauce    string
	SauceCup string
	Drink    string
	AddOns   []string
	Spicy    bool
	Remarks  string
}

// StartConfiguration seeds a pending item from a catalog entry with empty
// modifiers.
func StartConfiguration(item menu.Item) *PendingItem {
	return &PendingItem{MenuItem: item, AddOns: []string{}}
}

// NeedsConfiguration reports whether an item must go through an explicit
// configuration step before it can be added to the cart. Main dishes always
// expose the add-on and spicy options even without a sauce requirement.
func NeedsConfiguration(item menu.Item) bool {
	return item.RequiresSauce ||
		item.IsCombo ||
		item.Category == menu.CategoryMains ||
		item.Category == menu.CategoryValue
}

// IsMealStyle reports whether an item is sold as an informal meal: the name
// contains "Meal" but the item is not flagged as a combo. This is a naming
// convention in the catalog, not an attribute; any item whose name happens
// to contain the substring takes this path. Meal-style items offer the
// sauce-cup and drink pickers, with the drink mandatory.
func IsMealStyle(item menu.Item) bool {
	return strings.Contains(item.Name, "Meal") && !item.IsCombo
}

// AllowsExtras reports whether the add-on and spicy options are offered for
// an item. Only main and value dishes take extras.
func AllowsExtras(item menu.Item) bool {
	return item.Category == menu.CategoryMains || item.Category == menu.CategoryValue
}

// AddOnTotal sums the catalog surcharge of the selected add-on names.
// Unknown names contribute zero.
func AddOnTotal(catalog *menu.Catalog, names []string) float64 {
	total := 0.0
	for _, name := range names {
		total += catalog.AddOnPrice(name)
	}
	return total
}

// Validate checks that every mandatory modifier of a pending item is set.
// Sauce is mandatory for sauce-requiring items outside the value category;
// a drink is mandatory for combos and meal-style items. Sauce cup, add-ons,
// spicy, and remarks are always optional.
func Validate(p *PendingItem) error {
	if p.MenuItem.RequiresSauce && p.MenuItem.Category != menu.CategoryValue && p.Sauce == "" {
		return ErrMissingRequiredModifier
	}
	if (p.MenuItem.IsCombo || IsMealStyle(p.MenuItem)) && p.Drink == "" {
		return ErrMissingRequiredModifier
	}
	return nil
}

// Finalize turns a pending item into an immutable priced cart line. The
// line's unit price is the base price plus the add-on surcharge. Quantities
// below one are treated as one. The pending item is not modified.
func Finalize(p *PendingItem, catalog *menu.Catalog, quantity int) (LineItem, error) {
	if err := Validate(p); err != nil {
		return LineItem{}, err
	}
	if quantity < 1 {
		quantity = 1
	}

	addOns := normalizeAddOns(p.AddOns)
	item := p.MenuItem
	item.Price += AddOnTotal(catalog, addOns)

	return LineItem{
		MenuItem: item,
		Sauce:    p.Sauce,
		SauceCup: p.SauceCup,
		Drink:    p.Drink,
		AddOns:   addOns,
		Spicy:    p.Spicy,
		Remarks:  p.Remarks,
		Quantity: quantity,
	}, nil
}

// normalizeAddOns dedupes and sorts the selection so equal sets compare and
// serialize identically.
func normalizeAddOns(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
