// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"balloonbudget/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestQuotation stores a minimal quotation record with the given
// reference and returns it.
func CreateTestQuotation(t *testing.T, app *pocketbase.PocketBase, reference string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		t.Fatalf("failed to find quotations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("reference_number", reference)
	record.Set("vendor", "SCHROEDER")
	record.Set("customer", map[string]string{"name": "Test Client", "country": "ES", "phone": "", "email": "client@example.com"})
	record.Set("items", []any{})
	record.Set("discount_percent", 0)
	record.Set("total", "0.00")
	record.Set("terms", "Net 30")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quotation: %v", err)
	}

	return record
}

// WriteCatalogDir writes the fixture catalogs, rules and kits to a temporary
// directory laid out the way the catalog loader expects, and returns it.
func WriteCatalogDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"catalog-schroeder.json":   SchroederCatalogJSON,
		"catalog-pasha.json":       PashaCatalogJSON,
		"compatibility-rules.json": RulesJSON,
		"kits.yaml":                KitsYAML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
