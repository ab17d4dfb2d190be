package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"balloonbudget/collections"
	"balloonbudget/services"
)

// registerCommands adds the tool's subcommands to the PocketBase CLI.
func registerCommands(app *pocketbase.PocketBase, saver *services.QuotationSaver, settings services.Settings) {
	quotationsCmd := &cobra.Command{
		Use:   "quotations",
		Short: "Inspect saved quotations",
	}
	quotationsCmd.AddCommand(&cobra.Command{
		Use:   "next-ref",
		Short: "Print the reference the next saved quotation would get",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collections.Setup(app)
			ref, err := saver.PeekNextReference()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ref)
			return nil
		},
	})

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate and import vendor catalogs",
	}
	catalogCmd.AddCommand(newCatalogCheckCmd(settings), newCatalogImportCmd(settings), newCatalogTemplateCmd())

	app.RootCmd.AddCommand(quotationsCmd, catalogCmd)
}

func newCatalogCheckCmd(settings services.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Load every catalog, rule file and kit and report problems",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := settings.CatalogDir
			if len(args) == 1 {
				dir = args[0]
			}
			return checkCatalogs(cmd, dir)
		},
	}
}

// checkCatalogs loads dir and reports kit entries that name missing items.
func checkCatalogs(cmd *cobra.Command, dir string) error {
	lib, err := services.LoadCatalogLibrary(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	missing := 0
	for _, v := range services.Vendors {
		catalog, ok := lib.Catalog(v)
		if !ok {
			fmt.Fprintf(out, "%s: no catalog\n", v)
			continue
		}
		items := 0
		for _, cat := range catalog.Categories {
			items += len(cat.Items)
		}
		kits := lib.Kits(v)
		fmt.Fprintf(out, "%s: %d categories, %d items, %d kits\n", v, len(catalog.Categories), items, len(kits))

		for _, kit := range kits {
			for _, entry := range kit.Items {
				if _, ok := catalog.ItemByName(entry.Category, entry.ItemName); !ok {
					fmt.Fprintf(out, "  kit %s: no %s named %q\n", kit.ID, entry.Category, entry.ItemName)
					missing++
				}
			}
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d kit entries reference missing items", missing)
	}
	return nil
}

func newCatalogImportCmd(settings services.Settings) *cobra.Command {
	var vendorName, file, outDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert a vendor price list (CSV or XLSX) into a catalog file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vendor, ok := services.ParseVendor(vendorName)
			if !ok {
				return fmt.Errorf("unknown vendor %q", vendorName)
			}
			if outDir == "" {
				outDir = settings.CatalogDir
			}
			return importCatalog(cmd, vendor, file, outDir)
		},
	}
	cmd.Flags().StringVar(&vendorName, "vendor", "", "vendor the price list belongs to")
	cmd.Flags().StringVar(&file, "file", "", "price list to import")
	cmd.Flags().StringVar(&outDir, "out", "", "directory to write the catalog to (default CATALOG_DIR)")
	cmd.MarkFlagRequired("vendor")
	cmd.MarkFlagRequired("file")
	return cmd
}

// importCatalog writes catalog-{vendor}.json from a price list. When rows
// are rejected an error report is written next to the input instead.
func importCatalog(cmd *cobra.Command, vendor services.Vendor, file, outDir string) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	catalog, problems, err := services.ImportCatalogSheet(bytes.NewReader(raw), file)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		report, err := services.GenerateErrorReport(problems)
		if err != nil {
			return err
		}
		reportPath := strings.TrimSuffix(file, filepath.Ext(file)) + "-errors.xlsx"
		if err := os.WriteFile(reportPath, report, 0o644); err != nil {
			return err
		}
		return fmt.Errorf("%d rows rejected, see %s", len(problems), reportPath)
	}

	data, err := services.MarshalCatalog(catalog)
	if err != nil {
		return err
	}
	target := filepath.Join(outDir, "catalog-"+vendor.Key()+".json")
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d categories)\n", target, len(catalog.Categories))
	return nil
}

func newCatalogTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template <file.xlsx>",
		Short: "Write an empty price list with the expected columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := services.GenerateCatalogTemplate()
			if err != nil {
				return err
			}
			return os.WriteFile(args[0], data, 0o644)
		},
	}
}
