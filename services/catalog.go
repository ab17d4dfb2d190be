package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Vendor identifies a manufacturer. Values are upper-case.
type Vendor string

const (
	VendorSchroeder Vendor = "SCHROEDER"
	VendorPasha     Vendor = "PASHA"
)

// Vendors lists the manufacturers the tool ships catalogs for.
var Vendors = []Vendor{VendorSchroeder, VendorPasha}

// ParseVendor normalizes a vendor identifier from a URL or form value.
func ParseVendor(s string) (Vendor, bool) {
	v := Vendor(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Vendors {
		if v == known {
			return v, true
		}
	}
	return "", false
}

// Key is the lower-cased form used by rule files and catalog file names.
func (v Vendor) Key() string {
	return strings.ToLower(string(v))
}

// CatalogItem is one purchasable product. Items never change after load.
type CatalogItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
}

// CatalogCategory groups items under a category name such as "ENVELOPE".
type CatalogCategory struct {
	Name  string        `json:"name"`
	Items []CatalogItem `json:"items"`
}

// Catalog is a vendor's point-in-time product list.
type Catalog struct {
	Categories []CatalogCategory `json:"categories"`

	byID     map[string]CatalogItem
	position map[string]int
}

// Category returns the category with the given name, compared case-insensitively.
func (c *Catalog) Category(name string) (CatalogCategory, bool) {
	for _, cat := range c.Categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return CatalogCategory{}, false
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (CatalogItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// ItemByName finds an item by exact name within a category.
func (c *Catalog) ItemByName(category, name string) (CatalogItem, bool) {
	cat, ok := c.Category(category)
	if !ok {
		return CatalogItem{}, false
	}
	for _, item := range cat.Items {
		if item.Name == name {
			return item, true
		}
	}
	return CatalogItem{}, false
}

// index fills item categories and the lookup tables, and validates the catalog.
func (c *Catalog) index() error {
	c.byID = make(map[string]CatalogItem)
	c.position = make(map[string]int)
	pos := 0
	for ci := range c.Categories {
		cat := &c.Categories[ci]
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("category %d has no name", ci)
		}
		for ii := range cat.Items {
			item := &cat.Items[ii]
			if item.ID == "" {
				return fmt.Errorf("category %q: item %d has no id", cat.Name, ii)
			}
			if _, dup := c.byID[item.ID]; dup {
				return fmt.Errorf("duplicate item id %q", item.ID)
			}
			if item.UnitPrice.IsNegative() {
				return fmt.Errorf("item %q has a negative price", item.ID)
			}
			item.Category = cat.Name
			c.byID[item.ID] = *item
			c.position[item.ID] = pos
			pos++
		}
	}
	return nil
}

// ParseCatalog decodes and indexes a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// KitEntry names one item of a kit by category and exact item name.
type KitEntry struct {
	Category string `yaml:"category" json:"category"`
	ItemName string `yaml:"item" json:"item"`
}

// Kit is a predefined envelope/basket/burner bundle.
type Kit struct {
	ID    string     `yaml:"id" json:"id"`
	Name  string     `yaml:"name" json:"name"`
	Items []KitEntry `yaml:"items" json:"items"`
}

// ParseKits decodes a kits document keyed by vendor.
func ParseKits(data []byte) (map[Vendor][]Kit, error) {
	var raw map[string][]Kit
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse kits: %w", err)
	}
	kits := make(map[Vendor][]Kit, len(raw))
	for vendor, list := range raw {
		kits[Vendor(strings.ToUpper(vendor))] = list
	}
	return kits, nil
}

// CatalogLibrary holds every vendor catalog plus compatibility rules and kits.
// It is loaded once at startup and only read afterwards.
type CatalogLibrary struct {
	catalogs map[Vendor]*Catalog
	Rules    CompatibilityRules
	kits     map[Vendor][]Kit
}

// NewCatalogLibrary assembles a library from already parsed parts.
func NewCatalogLibrary(catalogs map[Vendor]*Catalog, rules CompatibilityRules, kits map[Vendor][]Kit) *CatalogLibrary {
	if kits == nil {
		kits = map[Vendor][]Kit{}
	}
	return &CatalogLibrary{catalogs: catalogs, Rules: rules, kits: kits}
}

// Catalog returns the catalog of a vendor.
func (l *CatalogLibrary) Catalog(v Vendor) (*Catalog, bool) {
	c, ok := l.catalogs[v]
	return c, ok
}

// Kits returns the kits defined for a vendor.
func (l *CatalogLibrary) Kits(v Vendor) []Kit {
	return l.kits[v]
}

// Kit finds a vendor kit by id.
func (l *CatalogLibrary) Kit(v Vendor, id string) (Kit, bool) {
	for _, k := range l.kits[v] {
		if k.ID == id {
			return k, true
		}
	}
	return Kit{}, false
}

// LoadCatalogLibrary reads catalog-{vendor}.json for every vendor,
// compatibility-rules.json and kits.yaml from dir. A missing kits file is
// not an error.
func LoadCatalogLibrary(dir string) (*CatalogLibrary, error) {
	catalogs := make([]*Catalog, len(Vendors))

	var g errgroup.Group
	for i, v := range Vendors {
		g.Go(func() error {
			path := filepath.Join(dir, fmt.Sprintf("catalog-%s.json", v.Key()))
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read catalog for %s: %w", v, err)
			}
			c, err := ParseCatalog(data)
			if err != nil {
				return fmt.Errorf("%s: %w", v, err)
			}
			catalogs[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byVendor := make(map[Vendor]*Catalog, len(Vendors))
	for i, v := range Vendors {
		byVendor[v] = catalogs[i]
	}

	rulesData, err := os.ReadFile(filepath.Join(dir, "compatibility-rules.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read compatibility rules: %w", err)
	}
	rules, err := ParseCompatibilityRules(rulesData)
	if err != nil {
		return nil, err
	}

	kits := map[Vendor][]Kit{}
	kitsData, err := os.ReadFile(filepath.Join(dir, "kits.yaml"))
	switch {
	case err == nil:
		if kits, err = ParseKits(kitsData); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		log.Printf("catalog: no kits.yaml in %s, kits disabled", dir)
	default:
		return nil, fmt.Errorf("failed to read kits: %w", err)
	}

	for _, v := range Vendors {
		c := byVendor[v]
		log.Printf("catalog: loaded %s: %d categories, %d items, %d kits", v, len(c.Categories), len(c.byID), len(kits[v]))
	}
	return NewCatalogLibrary(byVendor, rules, kits), nil
}
