package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"balloonbudget/services"
)

// SelectionView is one priced line of a session.
type SelectionView struct {
	ItemID            string           `json:"itemId"`
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	Quantity          int              `json:"quantity"`
	UnitPrice         decimal.Decimal  `json:"unitPrice"`
	CustomPrice       *decimal.Decimal `json:"customPrice,omitempty"`
	CustomDescription string           `json:"customDescription,omitempty"`
	LineTotal         decimal.Decimal  `json:"lineTotal"`
}

// SessionView is the client-facing state of a configuration session.
type SessionView struct {
	ID              string                   `json:"id"`
	Vendor          services.Vendor          `json:"vendor"`
	ReferenceNumber string                   `json:"referenceNumber"`
	Customer        services.ClientDetails   `json:"customer"`
	Terms           string                   `json:"terms"`
	Selections      []SelectionView          `json:"selections"`
	Visible         map[string][]string      `json:"visible"`
	Totals          services.QuotationTotals `json:"totals"`
}

func newSessionView(s *services.Session) SessionView {
	snapshot := s.Engine.Snapshot()

	lines := make([]SelectionView, 0, len(snapshot))
	for _, sel := range snapshot {
		lines = append(lines, SelectionView{
			ItemID:            sel.Item.ID,
			Name:              sel.Item.Name,
			Category:          sel.Item.Category,
			Quantity:          sel.Quantity,
			UnitPrice:         sel.Item.UnitPrice,
			CustomPrice:       sel.CustomPrice,
			CustomDescription: sel.CustomDescription,
			LineTotal:         services.CalcLineTotal(sel),
		})
	}

	visible := make(map[string][]string)
	for _, cat := range s.Engine.Catalog().Categories {
		ids := []string{}
		for _, item := range s.Engine.VisibleItems(cat.Name) {
			ids = append(ids, item.ID)
		}
		visible[cat.Name] = ids
	}

	return SessionView{
		ID:              s.ID,
		Vendor:          s.Vendor,
		ReferenceNumber: s.ReferenceNumber,
		Customer:        s.Customer,
		Terms:           s.Terms,
		Selections:      lines,
		Visible:         visible,
		Totals:          services.CalcQuotationTotals(snapshot, s.DiscountPercent),
	}
}

// withSession runs fn on the session named by the {id} path value and
// answers 404 for unknown sessions.
func withSession(e *core.RequestEvent, sessions *services.SessionStore, fn func(*services.Session) error) error {
	id := e.Request.PathValue("id")
	err := sessions.With(id, fn)
	if errors.Is(err, services.ErrSessionNotFound) {
		return errorJSON(e, http.StatusNotFound, "session not found")
	}
	return err
}

type sessionCreateRequest struct {
	Vendor string `json:"vendor"`
	Kit    string `json:"kit"`
}

// HandleSessionCreate returns a handler that starts a configuration session
// for a vendor, optionally pre-loaded with a kit.
func HandleSessionCreate(lib *services.CatalogLibrary, sessions *services.SessionStore, settings services.Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req sessionCreateRequest
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

		var kit services.Kit
		if req.Kit != "" {
			if kit, ok = lib.Kit(vendor, req.Kit); !ok {
				return errorJSON(e, http.StatusNotFound, "kit not found: "+req.Kit)
			}
		}

		id := sessions.Create(vendor, catalog, lib.Rules, settings.DefaultTerms)

		var view SessionView
		err := sessions.With(id, func(s *services.Session) error {
			if req.Kit != "" {
				s.Engine.LoadKit(kit)
			}
			view = newSessionView(s)
			return nil
		})
		if err != nil {
			log.Printf("sessions: failed to open new session %s: %v", id, err)
			return errorJSON(e, http.StatusInternalServerError, "failed to create session")
		}
		return e.JSON(http.StatusCreated, view)
	}
}

// HandleSessionGet returns a handler that reports a session's state.
func HandleSessionGet(sessions *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return withSession(e, sessions, func(s *services.Session) error {
			return e.JSON(http.StatusOK, newSessionView(s))
		})
	}
}

type sessionUpdateRequest struct {
	DiscountPercent *decimal.Decimal        `json:"discountPercent"`
	Customer        *services.ClientDetails `json:"customer"`
	Terms           *string                 `json:"terms"`
	ReferenceNumber *string                 `json:"referenceNumber"`
}

// HandleSessionUpdate returns a handler that changes the quotation-level
// fields of a session. Discounts outside [0, 100] are clamped.
func HandleSessionUpdate(sessions *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req sessionUpdateRequest
		if err := e.BindBody(&req); err != nil {
			return errorJSON(e, http.StatusBadRequest, "invalid request body")
		}

		if req.Customer != nil {
			customer := req.Customer.Normalize()
			errs := services.ValidateClientDetails(customer)
			delete(errs, "name") // only required on save
			if len(errs) > 0 {
				return validationJSON(e, "invalid client details", errs)
			}
		}

		return withSession(e, sessions, func(s *services.Session) error {
			if req.DiscountPercent != nil {
				s.DiscountPercent = services.ClampDiscount(*req.DiscountPercent)
			}
			if req.Customer != nil {
				s.Customer = req.Customer.Normalize()
			}
			if req.Terms != nil {
				s.Terms = strings.TrimSpace(*req.Terms)
			}
			if req.ReferenceNumber != nil {
				s.ReferenceNumber = strings.TrimSpace(*req.ReferenceNumber)
			}
			return e.JSON(http.StatusOK, newSessionView(s))
		})
	}
}

type selectionRequest struct {
	ItemID            string           `json:"itemId"`
	Quantity          int              `json:"quantity"`
	CustomPrice       *decimal.Decimal `json:"customPrice"`
	CustomDescription string           `json:"customDescription"`
}

// selectionProblem returns why req cannot be applied to item, or "".
func selectionProblem(item services.CatalogItem, req selectionRequest) string {
	if req.CustomPrice != nil {
		if !services.AcceptsCustomPrice(item) {
			return item.Name + " does not accept a custom price"
		}
		if req.CustomPrice.IsNegative() {
			return "custom price cannot be negative"
		}
	}
	if req.CustomDescription != "" && !services.AcceptsCustomDescription(item) {
		return item.Name + " does not accept a custom description"
	}
	return ""
}

// HandleSelectionAdd returns a handler that selects a catalog item in a
// session, applying the category's selection policy.
func HandleSelectionAdd(sessions *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req selectionRequest
		if err := e.BindBody(&req); err != nil {
			return errorJSON(e, http.StatusBadRequest, "invalid request body")
		}
		req.ItemID = strings.TrimSpace(req.ItemID)
		req.CustomDescription = strings.TrimSpace(req.CustomDescription)
		if req.ItemID == "" {
			return errorJSON(e, http.StatusBadRequest, "itemId is required")
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		return withSession(e, sessions, func(s *services.Session) error {
			item, ok := s.Engine.Catalog().Item(req.ItemID)
			if !ok {
				return errorJSON(e, http.StatusNotFound, "item not found: "+req.ItemID)
			}
			if msg := selectionProblem(item, req); msg != "" {
				return errorJSON(e, http.StatusBadRequest, msg)
			}

			s.Engine.Select(item, req.Quantity, req.CustomPrice, req.CustomDescription)
			return e.JSON(http.StatusOK, newSessionView(s))
		})
	}
}

// HandleSelectionRemove returns a handler that drops an item from a
// session. Removing an item that is not selected is not an error.
func HandleSelectionRemove(sessions *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		return withSession(e, sessions, func(s *services.Session) error {
			s.Engine.Remove(itemID)
			return e.JSON(http.StatusOK, newSessionView(s))
		})
	}
}

// HandleKitLoad returns a handler that replaces a session's selections with
// a predefined kit.
func HandleKitLoad(lib *services.CatalogLibrary, sessions *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kitID := e.Request.PathValue("kitId")
		return withSession(e, sessions, func(s *services.Session) error {
			kit, ok := lib.Kit(s.Vendor, kitID)
			if !ok {
				return errorJSON(e, http.StatusNotFound, "kit not found: "+kitID)
			}
			s.Engine.LoadKit(kit)
			return e.JSON(http.StatusOK, newSessionView(s))
		})
	}
}

// HandleSessionDelete returns a handler that discards a session.
func HandleSessionDelete(sessions *services.SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sessions.Delete(e.Request.PathValue("id"))
		return e.NoContent(http.StatusNoContent)
	}
}
