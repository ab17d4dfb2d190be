package services

import "strings"

// SelectionPolicy says how many items of a category a quotation may hold.
type SelectionPolicy string

const (
	// PolicySingle allows one item per category, always at quantity 1.
	PolicySingle SelectionPolicy = "single"
	// PolicyMulti allows any number of items, each with its own quantity.
	PolicyMulti SelectionPolicy = "multi"
)

var singleSelectCategories = map[string]bool{
	CategoryEnvelope:    true,
	CategoryBasket:      true,
	CategoryBurner:      true,
	CategoryBurnerFrame: true,
}

// PolicyFor returns the selection policy of a category name.
func PolicyFor(category string) SelectionPolicy {
	if singleSelectCategories[strings.ToUpper(strings.TrimSpace(category))] {
		return PolicySingle
	}
	return PolicyMulti
}

// AcceptsCustomDescription reports whether an item takes free-text notes.
// Artwork and Hyperlast fabric are made to order.
func AcceptsCustomDescription(item CatalogItem) bool {
	name := strings.ToUpper(item.Name)
	return strings.Contains(name, "ARTWORK") || strings.Contains(name, "HYPERLAST")
}

// AcceptsCustomPrice reports whether an item is priced per quotation.
func AcceptsCustomPrice(item CatalogItem) bool {
	return strings.Contains(strings.ToUpper(item.Name), "ARTWORK")
}
