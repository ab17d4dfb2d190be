package services

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"

	"balloonbudget/testhelpers"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// testLibrary parses the fixture catalogs, rules and kits.
func testLibrary(t *testing.T) *CatalogLibrary {
	t.Helper()

	schroeder, err := ParseCatalog([]byte(testhelpers.SchroederCatalogJSON))
	if err != nil {
		t.Fatalf("failed to parse schroeder fixture: %v", err)
	}
	pasha, err := ParseCatalog([]byte(testhelpers.PashaCatalogJSON))
	if err != nil {
		t.Fatalf("failed to parse pasha fixture: %v", err)
	}
	rules, err := ParseCompatibilityRules([]byte(testhelpers.RulesJSON))
	if err != nil {
		t.Fatalf("failed to parse rules fixture: %v", err)
	}
	kits, err := ParseKits([]byte(testhelpers.KitsYAML))
	if err != nil {
		t.Fatalf("failed to parse kits fixture: %v", err)
	}

	return NewCatalogLibrary(map[Vendor]*Catalog{
		VendorSchroeder: schroeder,
		VendorPasha:     pasha,
	}, rules, kits)
}

// newTestConfigurator returns an empty configurator over the Schroeder fixture.
func newTestConfigurator(t *testing.T) *Configurator {
	t.Helper()
	lib := testLibrary(t)
	cat, _ := lib.Catalog(VendorSchroeder)
	return NewConfigurator(VendorSchroeder, cat, lib.Rules)
}

// mustItem looks up a fixture item by id.
func mustItem(t *testing.T, c *Configurator, id string) CatalogItem {
	t.Helper()
	item, ok := c.Catalog().Item(id)
	if !ok {
		t.Fatalf("fixture item %q not found", id)
	}
	return item
}

func itemIDs(items []CatalogItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func selectionIDs(sel []Selection) []string {
	ids := make([]string, 0, len(sel))
	for _, s := range sel {
		ids = append(ids, s.Item.ID)
	}
	return ids
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
