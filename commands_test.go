package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"balloonbudget/services"
	"balloonbudget/testhelpers"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	return cmd, &out
}

func TestCheckCatalogs_ReportsMissingKitItems(t *testing.T) {
	cmd, out := newTestCommand()

	err := checkCatalogs(cmd, testhelpers.WriteCatalogDir(t))
	if err == nil || !strings.Contains(err.Error(), "1 kit entries") {
		t.Fatalf("expected one missing kit entry, got %v", err)
	}
	for _, want := range []string{"SCHROEDER: 7 categories, 15 items, 1 kits", "PASHA: 4 categories", `no ACCESSORIES named "Discontinued Tank"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCheckCatalogs_ShippedData(t *testing.T) {
	cmd, out := newTestCommand()

	if err := checkCatalogs(cmd, "data"); err != nil {
		t.Fatalf("shipped catalogs have problems: %v\n%s", err, out.String())
	}
}

func TestImportCatalog(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prices.csv")
	csv := "category,id,name,description,price\n" +
		"envelope,x-env,X 2000,,\"11,500\"\n" +
		"basket,x-bsk,X Basket,Two person,2100\n"
	if err := os.WriteFile(src, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, out := newTestCommand()
	if err := importCatalog(cmd, services.VendorPasha, src, dir); err != nil {
		t.Fatalf("importCatalog() error = %v", err)
	}
	if !strings.Contains(out.String(), "catalog-pasha.json") {
		t.Errorf("unexpected output %q", out.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, "catalog-pasha.json"))
	if err != nil {
		t.Fatalf("catalog not written: %v", err)
	}
	catalog, err := services.ParseCatalog(data)
	if err != nil {
		t.Fatalf("written catalog does not parse: %v", err)
	}
	item, ok := catalog.Item("x-env")
	if !ok || item.Category != "ENVELOPE" || item.UnitPrice.String() != "11500" {
		t.Errorf("imported envelope = %+v", item)
	}
}

func TestImportCatalog_WritesErrorReport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prices.csv")
	csv := "category,id,name,price\nenvelope,x-env,X 2000,abc\n"
	if err := os.WriteFile(src, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, _ := newTestCommand()
	err := importCatalog(cmd, services.VendorPasha, src, dir)
	if err == nil || !strings.Contains(err.Error(), "1 rows rejected") {
		t.Fatalf("expected a rejected row, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "prices-errors.xlsx")); err != nil {
		t.Errorf("expected error report: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "catalog-pasha.json")); !os.IsNotExist(err) {
		t.Error("no catalog should be written when rows are rejected")
	}
}
