package services

import (
	"log"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Selection is one chosen catalog item with its quantity and overrides.
type Selection struct {
	Item              CatalogItem      `json:"item"`
	Quantity          int              `json:"quantity"`
	CustomPrice       *decimal.Decimal `json:"customPrice,omitempty"`
	CustomDescription string           `json:"customDescription,omitempty"`
}

// Configurator holds the selection set of one in-progress quotation and
// applies category policy and the compatibility cascade to it.
//
// A Configurator has a single owner and is not safe for concurrent use.
type Configurator struct {
	vendor     Vendor
	catalog    *Catalog
	rules      CompatibilityRules
	selections map[string]Selection
}

// NewConfigurator returns an empty configurator over a vendor catalog.
func NewConfigurator(vendor Vendor, catalog *Catalog, rules CompatibilityRules) *Configurator {
	return &Configurator{
		vendor:     vendor,
		catalog:    catalog,
		rules:      rules,
		selections: make(map[string]Selection),
	}
}

// Vendor returns the vendor whose catalog is being configured.
func (c *Configurator) Vendor() Vendor {
	return c.vendor
}

// Catalog returns the catalog snapshot the configurator reads from.
func (c *Configurator) Catalog() *Catalog {
	return c.catalog
}

// Select stores item in the selection set, replacing any previous
// selection of the same item. In a single-select category every other item
// of that category is dropped first and the quantity is always 1. In a
// multi-select category quantities below 1 are raised to 1.
func (c *Configurator) Select(item CatalogItem, quantity int, customPrice *decimal.Decimal, customDescription string) {
	if PolicyFor(item.Category) == PolicySingle {
		for id, s := range c.selections {
			if id != item.ID && strings.EqualFold(s.Item.Category, item.Category) {
				delete(c.selections, id)
			}
		}
		quantity = 1
	} else if quantity < 1 {
		quantity = 1
	}

	var price *decimal.Decimal
	if customPrice != nil {
		p := *customPrice
		price = &p
	}

	c.selections[item.ID] = Selection{
		Item:              item,
		Quantity:          quantity,
		CustomPrice:       price,
		CustomDescription: customDescription,
	}
}

// Remove drops the selection of itemID. Unknown ids are ignored.
func (c *Configurator) Remove(itemID string) {
	delete(c.selections, itemID)
}

// Selection returns the current selection of an item.
func (c *Configurator) Selection(itemID string) (Selection, bool) {
	s, ok := c.selections[itemID]
	return s, ok
}

// Len returns the number of selected items.
func (c *Configurator) Len() int {
	return len(c.selections)
}

// selectedIn returns the selection held in a single-select category.
func (c *Configurator) selectedIn(category string) (Selection, bool) {
	for _, s := range c.selections {
		if strings.EqualFold(s.Item.Category, category) {
			return s, true
		}
	}
	return Selection{}, false
}

// VisibleItems returns the items of category the user may pick given the
// current selections. An envelope narrows baskets and burners to its rule
// entry; a burner narrows frames to the frame type named in the burner.
// Selections made incompatible by a later change are kept as they are.
func (c *Configurator) VisibleItems(category string) []CatalogItem {
	cat, ok := c.catalog.Category(category)
	if !ok {
		return nil
	}

	switch strings.ToUpper(strings.TrimSpace(category)) {
	case CategoryBasket:
		if env, ok := c.selectedIn(CategoryEnvelope); ok {
			return filterByName(cat.Items, c.rules.CompatibleBaskets(c.vendor, env.Item.Name))
		}
	case CategoryBurner:
		if env, ok := c.selectedIn(CategoryEnvelope); ok {
			return filterByName(cat.Items, c.rules.CompatibleBurners(c.vendor, env.Item.Name))
		}
	case CategoryBurnerFrame:
		if burner, ok := c.selectedIn(CategoryBurner); ok {
			if frameType := RequiredFrameType(burner.Item.Name); frameType != "" {
				var visible []CatalogItem
				for _, item := range cat.Items {
					if strings.Contains(strings.ToUpper(item.Name), frameType) {
						visible = append(visible, item)
					}
				}
				return visible
			}
		}
	}
	return cat.Items
}

func filterByName(items []CatalogItem, names []string) []CatalogItem {
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	var visible []CatalogItem
	for _, item := range items {
		if allowed[item.Name] {
			visible = append(visible, item)
		}
	}
	return visible
}

// Snapshot returns the selections ordered by catalog position, so the
// result does not depend on the order items were picked in.
func (c *Configurator) Snapshot() []Selection {
	out := make([]Selection, 0, len(c.selections))
	for _, s := range c.selections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, iok := c.catalog.position[out[i].Item.ID]
		pj, jok := c.catalog.position[out[j].Item.ID]
		if iok != jok {
			return iok
		}
		if pi != pj {
			return pi < pj
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	return out
}

// Total prices the current selections with discountPercent applied.
func (c *Configurator) Total(discountPercent decimal.Decimal) decimal.Decimal {
	return CalcQuotationTotals(c.Snapshot(), discountPercent).Total
}

// LoadKit replaces the selection set with the kit's items at quantity 1.
// Kit entries that name no catalog item are skipped.
func (c *Configurator) LoadKit(kit Kit) {
	c.selections = make(map[string]Selection)
	for _, entry := range kit.Items {
		item, ok := c.catalog.ItemByName(entry.Category, entry.ItemName)
		if !ok {
			log.Printf("configurator: kit %q: no %s named %q in %s catalog, skipping", kit.ID, entry.Category, entry.ItemName, c.vendor)
			continue
		}
		c.Select(item, 1, nil, "")
	}
}

// Restore replaces the selection set with previously saved selections,
// for example when a stored quotation is reopened. Items are re-read from
// the catalog when still present so prices reflect the current snapshot.
func (c *Configurator) Restore(selections []Selection) {
	c.selections = make(map[string]Selection)
	for _, s := range selections {
		item := s.Item
		if current, ok := c.catalog.Item(item.ID); ok {
			item = current
		}
		c.Select(item, s.Quantity, s.CustomPrice, s.CustomDescription)
	}
}
