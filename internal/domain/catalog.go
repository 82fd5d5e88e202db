package domain

import (
	"strings"
	"time"
)

// PlaceholderPrice is the unit price used when an item is resolved without a live catalog
const PlaceholderPrice = 12.99

// CatalogEntry represents one orderable menu item as returned by the catalog service
type CatalogEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Available   bool     `json:"available"`
	Description string   `json:"description,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// Commentary returns a short human-readable blurb for the entry.
// Description wins; otherwise the ingredient list is summarised.
func (e CatalogEntry) Commentary() string {
	if d := strings.TrimSpace(e.Description); d != "" {
		return d
	}
	switch n := len(e.Ingredients); {
	case n == 0:
		return ""
	case n == 1:
		return "Made with " + e.Ingredients[0]
	default:
		return "Made with " + strings.Join(e.Ingredients[:n-1], ", ") + " and " + e.Ingredients[n-1]
	}
}

// Snapshot is an immutable view of the catalog at a point in time
type Snapshot struct {
	Entries   []CatalogEntry `json:"entries"`
	FetchedAt time.Time      `json:"fetchedAt"`
	Stale     bool           `json:"stale"`    // served from a previous fetch after a refresh failed
	Degraded  bool           `json:"degraded"` // no catalog was ever fetched; FallbackNames apply
	// FallbackNames is the static menu used in degraded mode
	FallbackNames []string `json:"fallbackNames,omitempty"`
}

// Source reports where the snapshot's data came from
func (s Snapshot) Source() string {
	switch {
	case s.Degraded:
		return "Fallback"
	case s.Stale:
		return "Stale"
	default:
		return "GraphQL"
	}
}

// AvailableNames returns the names of every orderable item, in catalog order
func (s Snapshot) AvailableNames() []string {
	if s.Degraded {
		return append([]string(nil), s.FallbackNames...)
	}
	names := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e.Available {
			names = append(names, e.Name)
		}
	}
	return names
}

// Categories returns the distinct categories of available entries in first-seen order
func (s Snapshot) Categories() []string {
	if s.Degraded {
		return append([]string(nil), FallbackCategories...)
	}
	seen := make(map[string]bool)
	var categories []string
	for _, e := range s.Entries {
		if !e.Available || e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		categories = append(categories, e.Category)
	}
	return categories
}

// CartLine is one line of the caller's cart
type CartLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price,omitempty"`
	Total    float64 `json:"total,omitempty"`
}

// LineTotal returns the explicit total when present, else price times quantity
func (c CartLine) LineTotal() float64 {
	if c.Total > 0 {
		return c.Total
	}
	qty := c.Quantity
	if qty <= 0 {
		qty = 1
	}
	return c.Price * float64(qty)
}

// FallbackMenuNames is the static menu served when the catalog service has never answered
var FallbackMenuNames = []string{
	"Margherita Pizza", "Pepperoni Pizza", "BBQ Chicken Pizza", "Veggie Supreme Pizza",
	"Caesar Salad", "Greek Salad", "Garden Salad", "Chicken Caesar Salad",
	"Spaghetti Carbonara", "Penne Arrabbiata", "Fettuccine Alfredo", "Lasagna",
	"Grilled Salmon", "Grilled Shrimp", "Fish and Chips", "Seafood Platter",
	"Grilled Chicken Breast", "Beef Burger", "Veggie Burger", "Steak",
	"Garlic Bread", "Mozzarella Sticks", "Chicken Wings", "Onion Rings", "Bruschetta",
	"Chocolate Cake", "Tiramisu", "Ice Cream", "Cheesecake",
	"Coca Cola", "Pepsi", "Orange Juice", "Apple Juice", "Water", "Coffee", "Tea",
}

// FallbackCategories mirrors FallbackMenuNames
var FallbackCategories = []string{
	"Pizza", "Pasta", "Salads", "Seafood", "Main Courses", "Appetizers", "Desserts", "Beverages",
}
