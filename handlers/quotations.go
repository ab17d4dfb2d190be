package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"balloonbudget/services"
)

// saveFailure maps a QuotationSaver error to a response.
func saveFailure(e *core.RequestEvent, err error) error {
	switch {
	case errors.Is(err, services.ErrReferenceTaken):
		return errorJSON(e, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrAllocationUnavailable):
		return errorJSON(e, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("quotations: failed to save quotation: %v", err)
		return errorJSON(e, http.StatusInternalServerError, "failed to save quotation")
	}
}

// HandleSessionSave returns a handler that commits a session as a numbered
// quotation. An empty or draft reference gets the next reference of the
// year; a chosen reference is kept or rejected with 409 when taken.
func HandleSessionSave(sessions *services.SessionStore, saver *services.QuotationSaver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withSession(e, sessions, func(s *services.Session) error {
			customer := s.Customer.Normalize()
			if errs := services.ValidateClientDetails(customer); len(errs) > 0 {
				return validationJSON(e, "client details are incomplete", errs)
			}
			if s.Engine.Len() == 0 {
				return errorJSON(e, http.StatusBadRequest, "add at least one item before saving")
			}

			q := s.Quotation()
			q.Customer = customer
			if err := saver.Save(q); err != nil {
				return saveFailure(e, err)
			}
			log.Printf("quotations: saved %s for session %s", q.ReferenceNumber, s.ID)
			return e.JSON(http.StatusCreated, q)
		})
	}
}

type quotationCreateRequest struct {
	ReferenceNumber string                 `json:"referenceNumber"`
	Vendor          string                 `json:"vendor"`
	Customer        services.ClientDetails `json:"customer"`
	Lines           []selectionRequest     `json:"lines"`
	DiscountPercent decimal.Decimal        `json:"discountPercent"`
	Terms           string                 `json:"terms"`
}

// HandleQuotationCreate returns a handler that saves a quotation posted in
// one request. Lines go through the same selection policy as a session.
func HandleQuotationCreate(lib *services.CatalogLibrary, saver *services.QuotationSaver, settings services.Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req quotationCreateRequest
		if err := e.BindBody(&req); err != nil {
			return errorJSON(e, http.StatusBadRequest, "invalid request body")
		}

		vendor, ok := services.ParseVendor(req.Vendor)
		if !ok {
			return errorJSON(e, http.StatusBadRequest, "unknown vendor: "+req.Vendor)
		}
		catalog, ok := lib.Catalog(vendor)
		if !ok {
			return errorJSON(e, http.StatusNotFound, "no catalog loaded for "+string(vendor))
		}

		customer := req.Customer.Normalize()
		if errs := services.ValidateClientDetails(customer); len(errs) > 0 {
			return validationJSON(e, "client details are incomplete", errs)
		}
		if len(req.Lines) == 0 {
			return errorJSON(e, http.StatusBadRequest, "add at least one item before saving")
		}

		engine := services.NewConfigurator(vendor, catalog, lib.Rules)
		for _, line := range req.Lines {
			line.CustomDescription = strings.TrimSpace(line.CustomDescription)
			item, ok := catalog.Item(strings.TrimSpace(line.ItemID))
			if !ok {
				return errorJSON(e, http.StatusBadRequest, "item not found: "+line.ItemID)
			}
			if msg := selectionProblem(item, line); msg != "" {
				return errorJSON(e, http.StatusBadRequest, msg)
			}
			engine.Select(item, line.Quantity, line.CustomPrice, line.CustomDescription)
		}

		terms := strings.TrimSpace(req.Terms)
		if terms == "" {
			terms = settings.DefaultTerms
		}
		q := services.NewQuotation(strings.TrimSpace(req.ReferenceNumber), vendor, customer, engine.Snapshot(), req.DiscountPercent, terms)
		if err := saver.Save(q); err != nil {
			return saveFailure(e, err)
		}
		return e.JSON(http.StatusCreated, q)
	}
}

// HandleQuotationList returns a handler listing stored quotations, newest
// first.
func HandleQuotationList(store *services.QuotationStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotations, err := store.ListAll()
		if err != nil {
			log.Printf("quotations: failed to list: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "failed to load quotations")
		}
		if quotations == nil {
			quotations = []*services.Quotation{}
		}
		return e.JSON(http.StatusOK, quotations)
	}
}

// HandleQuotationGet returns a handler for one stored quotation.
func HandleQuotationGet(store *services.QuotationStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, err := store.FindByID(e.Request.PathValue("id"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "quotation not found")
		}
		return e.JSON(http.StatusOK, q)
	}
}

// HandleQuotationLookup returns a handler that finds a quotation by its
// reference and creation date (YYYY-MM-DD). Both must match.
func HandleQuotationLookup(store *services.QuotationStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ref := strings.TrimSpace(e.Request.URL.Query().Get("ref"))
		date := strings.TrimSpace(e.Request.URL.Query().Get("date"))
		if ref == "" || date == "" {
			return errorJSON(e, http.StatusBadRequest, "ref and date are required")
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return errorJSON(e, http.StatusBadRequest, "date must be YYYY-MM-DD")
		}

		q, err := store.FindByReferenceAndDate(ref, date)
		if errors.Is(err, services.ErrQuotationNotFound) {
			return errorJSON(e, http.StatusNotFound, "quotation not found")
		}
		if err != nil {
			log.Printf("quotations: lookup %s on %s failed: %v", ref, date, err)
			return errorJSON(e, http.StatusInternalServerError, "failed to look up quotation")
		}
		return e.JSON(http.StatusOK, q)
	}
}

// HandleQuotationDelete returns a handler that deletes a stored quotation.
func HandleQuotationDelete(store *services.QuotationStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		err := store.DeleteByID(id)
		if errors.Is(err, services.ErrQuotationNotFound) {
			return errorJSON(e, http.StatusNotFound, "quotation not found")
		}
		if err != nil {
			log.Printf("quotations: failed to delete %s: %v", id, err)
			return errorJSON(e, http.StatusInternalServerError, "failed to delete quotation")
		}
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleQuotationReopen returns a handler that starts a session from a
// stored quotation so it can be edited and saved as a new one.
func HandleQuotationReopen(lib *services.CatalogLibrary, store *services.QuotationStore, sessions *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, err := store.FindByID(e.Request.PathValue("id"))
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "quotation not found")
		}
		catalog, ok := lib.Catalog(q.Vendor)
		if !ok {
			return errorJSON(e, http.StatusNotFound, "no catalog loaded for "+string(q.Vendor))
		}

		id := sessions.Create(q.Vendor, catalog, lib.Rules, q.Terms)
		var view SessionView
		err = sessions.With(id, func(s *services.Session) error {
			s.Engine.Restore(q.Lines)
			s.Customer = q.Customer
			s.DiscountPercent = q.DiscountPercent
			view = newSessionView(s)
			return nil
		})
		if err != nil {
			log.Printf("quotations: failed to reopen %s: %v", q.ID, err)
			return errorJSON(e, http.StatusInternalServerError, "failed to reopen quotation")
		}
		return e.JSON(http.StatusCreated, view)
	}
}
