package menu

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is the closed set of menu sections.
type Category string

const (
	CategoryValue  Category = "value"
	CategoryMains  Category = "mains"
	CategorySides  Category = "sides"
	CategorySauces Category = "sauces"
	CategoryDrinks Category = "drinks"
	CategoryAddons Category = "addons"
)

// Item is a catalog entry. Items are immutable after catalog load; orders
// keep their own by-value copies so later catalog edits never touch history.
type Item struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Price         float64  `json:"price" yaml:"price"`
	Category      Category `json:"category" yaml:"category"`
	RequiresSauce bool     `json:"requiresSauce,omitempty" yaml:"requiresSauce"`
	IsCombo       bool     `json:"isCombo,omitempty" yaml:"isCombo"`
}

// AddOn is a named optional extra with a fixed surcharge.
type AddOn struct {
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}

// Catalog bundles the purchasable items with the modifier option lists
// offered during item configuration.
type Catalog struct {
	Items  []Item   `yaml:"items"`
	Sauces []string `yaml:"sauces"`
	Drinks []string `yaml:"drinks"`
	AddOns []AddOn  `yaml:"addons"`
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("menu: failed to read catalog file %s: %w", path, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("menu: failed to parse catalog file %s: %w", path, err)
	}
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("menu: catalog file %s contains no items", path)
	}
	return &c, nil
}

// ItemByID looks up a catalog item.
func (c *Catalog) ItemByID(id string) (Item, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// AddOnPrice returns the surcharge for a named add-on. Unknown names price
// at zero; callers treat them as a tolerated edge case, not an error.
func (c *Catalog) AddOnPrice(name string) float64 {
	for _, a := range c.AddOns {
		if a.Name == name {
			return a.Price
		}
	}
	return 0
}

// ItemsByCategory returns the catalog items in a section, preserving
// catalog order.
func (c *Catalog) ItemsByCategory(cat Category) []Item {
	var items []Item
	for _, item := range c.Items {
		if item.Category == cat {
			items = append(items, item)
		}
	}
	return items
}

// Default returns the built-in Saucer Burger catalog, used when no catalog
// file is configured.
func Default() *Catalog {
	return &Catalog{
		Items: []Item{
			// Value meals: the sauce picker is offered but never mandatory
			// for this category, and the "Meal" name makes the drink picker
			// mandatory (see order.IsMealStyle).
			{ID: "v1", Name: "Beef Burger Value Meal", Price: 15.00, Category: CategoryValue, RequiresSauce: true},
			{ID: "v2", Name: "Chicken Burger Value Meal", Price: 14.00, Category: CategoryValue, RequiresSauce: true},

			// Mains.
			{ID: "m1", Name: "Beef Burger", Price: 12.00, Category: CategoryMains, RequiresSauce: true},
			{ID: "m2", Name: "Cheese Burger", Price: 13.00, Category: CategoryMains, RequiresSauce: true},
			{ID: "m3", Name: "Double Beef Burger", Price: 17.00, Category: CategoryMains, RequiresSauce: true},
			{ID: "m4", Name: "Chicken Burger", Price: 11.00, Category: CategoryMains, RequiresSauce: true},
			{ID: "m5", Name: "Chicken Wrap", Price: 10.00, Category: CategoryMains, RequiresSauce: true},
			{ID: "m6", Name: "Beef Burger Combo", Price: 18.00, Category: CategoryMains, RequiresSauce: true, IsCombo: true},
			{ID: "m7", Name: "Chicken Wrap Combo", Price: 16.00, Category: CategoryMains, RequiresSauce: true, IsCombo: true},

			// Sides.
			{ID: "s1", Name: "Fries", Price: 5.00, Category: CategorySides},
			{ID: "s2", Name: "Onion Rings", Price: 5.50, Category: CategorySides},
			{ID: "s3", Name: "Chicken Strips", Price: 8.00, Category: CategorySides},

			// Sauces sold on their own.
			{ID: "c1", Name: "Sauce Cup", Price: 1.00, Category: CategorySauces},
			{ID: "c2", Name: "Jalapeno Cup", Price: 1.50, Category: CategorySauces},

			// Drinks.
			{ID: "d1", Name: "Coca Cola", Price: 2.50, Category: CategoryDrinks},
			{ID: "d2", Name: "Fanta", Price: 2.50, Category: CategoryDrinks},
			{ID: "d3", Name: "Sprite", Price: 2.50, Category: CategoryDrinks},
			{ID: "d4", Name: "Cappy", Price: 3.00, Category: CategoryDrinks},
			{ID: "d5", Name: "Ice Tea", Price: 2.50, Category: CategoryDrinks},
			{ID: "d6", Name: "Water", Price: 1.50, Category: CategoryDrinks},

			// Standalone add-on portions.
			{ID: "a1", Name: "Add Cheese", Price: 2.00, Category: CategoryAddons},
			{ID: "a2", Name: "Add Bacon", Price: 3.00, Category: CategoryAddons},
		},
		Sauces: []string{"Special Sauce", "BBQ", "Garlic", "Spicy Mayo", "Ketchup"},
		Drinks: []string{"Coca Cola", "Fanta", "Sprite", "Cappy", "Ice Tea", "Water"},
		AddOns: []AddOn{
			{Name: "Add Cheese", Price: 2.00},
			{Name: "Add Bacon", Price: 3.00},
			{Name: "Add Patty", Price: 4.50},
			{Name: "Add Egg", Price: 2.00},
		},
	}
}
