package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"balloonbudget/services"
)

type contextKey string

const VendorKey contextKey = "vendor"
const CatalogKey contextKey = "catalog"

// GetVendor extracts the vendor resolved by RequireVendor.
func GetVendor(r *http.Request) services.Vendor {
	if val, ok := r.Context().Value(VendorKey).(services.Vendor); ok {
		return val
	}
	return ""
}

// GetCatalog extracts the vendor catalog resolved by RequireVendor.
func GetCatalog(r *http.Request) *services.Catalog {
	if val, ok := r.Context().Value(CatalogKey).(*services.Catalog); ok {
		return val
	}
	return nil
}

// RequireVendor resolves the {vendor} path segment against the loaded
// catalogs and stores the vendor and its catalog in the request context.
// Unknown vendors, or vendors without a catalog, get a 404.
func RequireVendor(lib *services.CatalogLibrary) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		raw := e.Request.PathValue("vendor")
		vendor, ok := services.ParseVendor(raw)
		if !ok {
			return errorJSON(e, http.StatusNotFound, "unknown vendor: "+raw)
		}
		catalog, ok := lib.Catalog(vendor)
		if !ok {
			return errorJSON(e, http.StatusNotFound, "no catalog loaded for "+string(vendor))
		}

		ctx := context.WithValue(e.Request.Context(), VendorKey, vendor)
		ctx = context.WithValue(ctx, CatalogKey, catalog)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
