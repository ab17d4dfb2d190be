package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"balloonbudget/services"
	"balloonbudget/templates"
)

// HandleQuotationListPage returns a handler that renders the saved
// quotations page, or only its table for HTMX requests.
func HandleQuotationListPage(store *services.QuotationStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotations, err := store.ListAll()
		if err != nil {
			log.Printf("quotation_page: failed to list quotations: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to load quotations")
		}

		items := make([]templates.QuotationListItem, 0, len(quotations))
		for _, q := range quotations {
			items = append(items, templates.QuotationListItem{
				ID:              q.ID,
				ReferenceNumber: q.ReferenceNumber,
				Vendor:          string(q.Vendor),
				ClientName:      q.Customer.Name,
				Country:         q.Customer.Country,
				Total:           services.FormatEUR(q.Total),
				CreatedDate:     q.CreatedAt.Format("02 Jan 2006"),
			})
		}
		data := templates.QuotationListData{Quotations: items, TotalCount: len(items)}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.QuotationListContent(data)
		} else {
			component = templates.QuotationListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleQuotationDeletePage returns the HTMX delete action of the
// quotations page.
func HandleQuotationDeletePage(store *services.QuotationStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		q, err := store.FindByID(id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Quotation not found")
		}

		if err := store.DeleteByID(id); err != nil {
			if errors.Is(err, services.ErrQuotationNotFound) {
				return ErrorToast(e, http.StatusNotFound, "Quotation not found")
			}
			log.Printf("quotation_page: failed to delete quotation %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Quotation "+q.ReferenceNumber+" deleted")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/quotations")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/quotations")
	}
}
