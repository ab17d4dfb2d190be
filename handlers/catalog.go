package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"balloonbudget/services"
)

// VendorSummary is one entry of the vendor picker.
type VendorSummary struct {
	Vendor     services.Vendor `json:"vendor"`
	Key        string          `json:"key"`
	HasCatalog bool            `json:"hasCatalog"`
	KitCount   int             `json:"kitCount"`
}

// CatalogItemView is a catalog item plus the overrides it accepts.
type CatalogItemView struct {
	ID                       string          `json:"id"`
	Name                     string          `json:"name"`
	Description              string          `json:"description"`
	Price                    decimal.Decimal `json:"price"`
	Category                 string          `json:"category"`
	AcceptsCustomPrice       bool            `json:"acceptsCustomPrice"`
	AcceptsCustomDescription bool            `json:"acceptsCustomDescription"`
}

// CatalogCategoryView is one category with its selection policy.
type CatalogCategoryView struct {
	Name   string                   `json:"name"`
	Policy services.SelectionPolicy `json:"policy"`
	Items  []CatalogItemView        `json:"items"`
}

func newCatalogItemView(item services.CatalogItem) CatalogItemView {
	return CatalogItemView{
		ID:                       item.ID,
		Name:                     item.Name,
		Description:              item.Description,
		Price:                    item.UnitPrice,
		Category:                 item.Category,
		AcceptsCustomPrice:       services.AcceptsCustomPrice(item),
		AcceptsCustomDescription: services.AcceptsCustomDescription(item),
	}
}

func newCatalogCategoryViews(c *services.Catalog) []CatalogCategoryView {
	views := make([]CatalogCategoryView, 0, len(c.Categories))
	for _, cat := range c.Categories {
		items := make([]CatalogItemView, 0, len(cat.Items))
		for _, item := range cat.Items {
			items = append(items, newCatalogItemView(item))
		}
		views = append(views, CatalogCategoryView{
			Name:   cat.Name,
			Policy: services.PolicyFor(cat.Name),
			Items:  items,
		})
	}
	return views
}

// HandleVendorList returns a handler listing the known vendors.
func HandleVendorList(lib *services.CatalogLibrary) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		out := make([]VendorSummary, 0, len(services.Vendors))
		for _, v := range services.Vendors {
			_, ok := lib.Catalog(v)
			out = append(out, VendorSummary{
				Vendor:     v,
				Key:        v.Key(),
				HasCatalog: ok,
				KitCount:   len(lib.Kits(v)),
			})
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleVendorCatalog returns the full catalog of the vendor resolved by
// RequireVendor.
func HandleVendorCatalog() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		catalog := GetCatalog(e.Request)
		if catalog == nil {
			return errorJSON(e, http.StatusNotFound, "catalog not found")
		}
		return e.JSON(http.StatusOK, map[string]any{
			"vendor":     GetVendor(e.Request),
			"categories": newCatalogCategoryViews(catalog),
		})
	}
}

// HandleVendorKits returns the predefined kits of the resolved vendor.
func HandleVendorKits(lib *services.CatalogLibrary) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kits := lib.Kits(GetVendor(e.Request))
		if kits == nil {
			kits = []services.Kit{}
		}
		return e.JSON(http.StatusOK, kits)
	}
}
