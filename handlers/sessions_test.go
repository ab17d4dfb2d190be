package handlers

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func selectionIDs(v SessionView) []string {
	var ids []string
	for _, s := range v.Selections {
		ids = append(ids, s.ItemID)
	}
	return ids
}

func TestHandleSessionCreate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(HandleSessionCreate(env.lib, env.sessions, env.settings),
		jsonRequest(http.MethodPost, "/api/sessions", `{"vendor":"schroeder"}`), nil)
	assertStatus(t, rec, http.StatusCreated)

	view := decodeJSON[SessionView](t, rec)
	if view.ID == "" || view.Vendor != "SCHROEDER" {
		t.Errorf("unexpected session %+v", view)
	}
	if len(view.Selections) != 0 || !view.Totals.Total.IsZero() {
		t.Errorf("expected an empty session, got %+v", view)
	}
	if view.Terms != env.settings.DefaultTerms {
		t.Errorf("terms = %q, want default terms", view.Terms)
	}
	if got := len(view.Visible["BASKET"]); got != 3 {
		t.Errorf("expected all 3 baskets visible without an envelope, got %d", got)
	}
	if env.sessions.Len() != 1 {
		t.Errorf("expected 1 live session, got %d", env.sessions.Len())
	}
}

func TestHandleSessionCreate_WithKit(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(HandleSessionCreate(env.lib, env.sessions, env.settings),
		jsonRequest(http.MethodPost, "/api/sessions", `{"vendor":"SCHROEDER","kit":"sport-30"}`), nil)
	assertStatus(t, rec, http.StatusCreated)

	view := decodeJSON[SessionView](t, rec)
	want := []string{"env-g30", "bsk-10", "brn-single"}
	if got := selectionIDs(view); !reflect.DeepEqual(got, want) {
		t.Errorf("kit selections = %v, want %v", got, want)
	}
}

func TestHandleSessionCreate_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"unknown vendor", `{"vendor":"cameron"}`, http.StatusBadRequest},
		{"missing vendor", `{}`, http.StatusBadRequest},
		{"unknown kit", `{"vendor":"pasha","kit":"sport-30"}`, http.StatusNotFound},
		{"malformed body", `{"vendor":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.serve(HandleSessionCreate(env.lib, env.sessions, env.settings),
				jsonRequest(http.MethodPost, "/api/sessions", tt.body), nil)
			assertStatus(t, rec, tt.want)
			if env.sessions.Len() != 0 {
				t.Errorf("expected no session to be created, got %d", env.sessions.Len())
			}
		})
	}
}

func TestHandleSessionGet_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(HandleSessionGet(env.sessions),
		jsonRequest(http.MethodGet, "/api/sessions/nope", ""), map[string]string{"id": "nope"})
	assertStatus(t, rec, http.StatusNotFound)

	body := decodeJSON[map[string]string](t, rec)
	if body["error"] != "session not found" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestHandleSelectionAdd_FiltersBaskets(t *testing.T) {
	env := newTestEnv(t)
	id := env.newSession(t)
	add := HandleSelectionAdd(env.sessions)

	rec := env.serve(add, jsonRequest(http.MethodPost, "/", `{"itemId":"env-g40"}`), map[string]string{"id": id})
	assertStatus(t, rec, http.StatusOK)

	view := decodeJSON[SessionView](t, rec)
	if got := view.Visible["BASKET"]; !reflect.DeepEqual(got, []string{"bsk-13"}) {
		t.Errorf("visible baskets for G 40/24 = %v, want [bsk-13]", got)
	}
	if got := view.Visible["BURNER"]; !reflect.DeepEqual(got, []string{"brn-double", "brn-quad"}) {
		t.Errorf("visible burners = %v", got)
	}
}

func TestHandleSelectionAdd_SingleCategoryReplaces(t *testing.T) {
	env := newTestEnv(t)
	id := env.newSession(t, "env-g30")

	rec := env.serve(HandleSelectionAdd(env.sessions),
		jsonRequest(http.MethodPost, "/", `{"itemId":"env-g40","quantity":4}`), map[string]string{"id": id})
	assertStatus(t, rec, http.StatusOK)

	view := decodeJSON[SessionView](t, rec)
	if len(view.Selections) != 1 || view.Selections[0].ItemID != "env-g40" || view.Selections[0].Quantity != 1 {
		t.Errorf("selections = %+v, want only env-g40 at quantity 1", view.Selections)
	}
}

func TestHandleSelectionAdd_MultiQuantity(t *testing.T) {
	env := newTestEnv(t)
	id := env.newSession(t)

	rec := env.serve(HandleSelectionAdd(env.sessions),
		jsonRequest(http.MethodPost, "/", `{"itemId":"acc-tank","quantity":3}`), map[string]string{"id": id})
	assertStatus(t, rec, http.StatusOK)

	view := decodeJSON[SessionView](t, rec)
	if len(view.Selections) != 1 || view.Selections[0].Quantity != 3 {
		t.Fatalf("selections = %+v", view.Selections)
	}
	if !view.Selections[0].LineTotal.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("line total = %s, want 1800", view.Selections[0].LineTotal)
	}
	if !view.Totals.Subtotal.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("subtotal = %s, want 1800", view.Totals.Subtotal)
	}
}

func TestHandleSelectionAdd_CustomPriceAndDescription(t *testing.T) {
	env := newTestEnv(t)
	id := env.newSession(t)

	rec := env.serve(HandleSelectionAdd(env.sessions),
		jsonRequest(http.MethodPost, "/", `{"itemId":"art-logo","customPrice":349.5,"customDescription":"Red dragon"}`),
		map[string]string{"id": id})
	assertStatus(t, rec, http.StatusOK)

	view := decodeJSON[SessionView](t, rec)
	line := view.Selections[0]
	if line.CustomPrice == nil || !line.CustomPrice.Equal(decimal.RequireFromString("349.5")) {
		t.Errorf("custom price = %v, want 349.5", line.CustomPrice)
	}
	if line.CustomDescription != "Red dragon" || !line.LineTotal.Equal(decimal.RequireFromString("349.5")) {
		t.Errorf("unexpected line %+v", line)
	}
}

func TestHandleSelectionAdd_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing item id", `{"quantity":1}`, http.StatusBadRequest},
		{"unknown item", `{"itemId":"nope"}`, http.StatusNotFound},
		{"custom price on catalog item", `{"itemId":"acc-tank","customPrice":10}`, http.StatusBadRequest},
		{"custom price on hyperlast", `{"itemId":"fab-hyperlast","customPrice":10}`, http.StatusBadRequest},
		{"negative custom price", `{"itemId":"art-logo","customPrice":-5}`, http.StatusBadRequest},
		{"description on catalog item", `{"itemId":"acc-fan","customDescription":"blue"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			id := env.newSession(t)

			rec := env.serve(HandleSelectionAdd(env.sessions),
				jsonRequest(http.MethodPost, "/", tt.body), map[string]string{"id": id})
			assertStatus(t, rec, tt.want)

			get := env.serve(HandleSessionGet(env.sessions), jsonRequest(http.MethodGet, "/", ""), map[string]string{"id": id})
			if view := decodeJSON[SessionView](t, get); len(view.Selections) != 0 {
				t.Errorf("rejected request changed the session: %+v", view.Selections)
			}
		})
	}
}

func TestHandleSelectionRemove(t *testing.T) {
	env := newTestEnv(t)
	id := env.newSession(t, "env-g30", "acc-tank")
	remove := HandleSelectionRemove(env.sessions)

	rec := env.serve(remove, jsonRequest(http.MethodDelete, "/", ""), map[string]string{"id": id, "itemId": "acc-tank"})
	assertStatus(t, rec, http.StatusOK)
	if got := selectionIDs(decodeJSON[SessionView](t, rec)); !reflect.DeepEqual(got, []string{"env-g30"}) {
		t.Errorf("after remove selections = %v", got)
	}

	rec = env.serve(remove, jsonRequest(http.MethodDelete, "/", ""), map[string]string{"id": id, "itemId": "acc-tank"})
	assertStatus(t, rec, http.StatusOK)
	if got := selectionIDs(decodeJSON[SessionView](t, rec)); !reflect.DeepEqual(got, []string{"env-g30"}) {
		t.Errorf("removing an absent item changed selections to %v", got)
	}
}

func TestHandleKitLoad(t *testing.T) {
	env := newTestEnv(t)
	id := env.newSession(t, "acc-fan")

	rec := env.serve(HandleKitLoad(env.lib, env.sessions), jsonRequest(http.MethodPost, "/", ""),
		map[string]string{"id": id, "kitId": "sport-30"})
	assertStatus(t, rec, http.StatusOK)

	want := []string{"env-g30", "bsk-10", "brn-single"}
	if got := selectionIDs(decodeJSON[SessionView](t, rec)); !reflect.DeepEqual(got, want) {
		t.Errorf("selections = %v, want %v", got, want)
	}

	rec = env.serve(HandleKitLoad(env.lib, env.sessions), jsonRequest(http.MethodPost, "/", ""),
		map[string]string{"id": id, "kitId": "pasha-starter"})
	assertStatus(t, rec, http.StatusNotFound)
}

func TestHandleSessionUpdate(t *testing.T) {
	tests := []struct {
		discount string
		want     string
		total    string
	}{
		{"10", "10", "13500"},
		{"150", "100", "0"},
		{"-5", "0", "15000"},
	}
	for _, tt := range tests {
		t.Run(tt.discount, func(t *testing.T) {
			env := newTestEnv(t)
			id := env.newSession(t, "env-g30")

			body := `{"discountPercent":` + tt.discount + `,"terms":" Net 15 ","referenceNumber":" QT-7 ","customer":{"name":" Ana "}}`
			rec := env.serve(HandleSessionUpdate(env.sessions), jsonRequest(http.MethodPatch, "/", body), map[string]string{"id": id})
			assertStatus(t, rec, http.StatusOK)

			view := decodeJSON[SessionView](t, rec)
			if !view.Totals.DiscountPercent.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("discount = %s, want %s", view.Totals.DiscountPercent, tt.want)
			}
			if !view.Totals.Total.Equal(decimal.RequireFromString(tt.total)) {
				t.Errorf("total = %s, want %s", view.Totals.Total, tt.total)
			}
			if view.Terms != "Net 15" || view.ReferenceNumber != "QT-7" || view.Customer.Name != "Ana" {
				t.Errorf("fields not trimmed: %+v", view)
			}
		})
	}
}

func TestHandleSessionUpdate_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)
	id := env.newSession(t)

	rec := env.serve(HandleSessionUpdate(env.sessions),
		jsonRequest(http.MethodPatch, "/", `{"customer":{"name":"Ana","email":"not-an-email"}}`), map[string]string{"id": id})
	assertStatus(t, rec, http.StatusBadRequest)

	body := decodeJSON[struct {
		Fields map[string]string `json:"fields"`
	}](t, rec)
	if _, ok := body.Fields["email"]; !ok {
		t.Errorf("expected an email field error, got %v", body.Fields)
	}
}

func TestHandleSessionDelete(t *testing.T) {
	env := newTestEnv(t)
	id := env.newSession(t)

	rec := env.serve(HandleSessionDelete(env.sessions), jsonRequest(http.MethodDelete, "/", ""), map[string]string{"id": id})
	assertStatus(t, rec, http.StatusNoContent)
	if env.sessions.Len() != 0 {
		t.Errorf("expected session to be deleted")
	}
}

// Envelope, compatible basket, then an envelope that excludes the basket:
// the basket stays selected and priced while the visible list changes.
func TestSessionFlow_StaleBasketIsKept(t *testing.T) {
	env := newTestEnv(t)
	id := env.newSession(t)
	add := HandleSelectionAdd(env.sessions)
	path := map[string]string{"id": id}

	for _, body := range []string{`{"itemId":"env-g30"}`, `{"itemId":"bsk-10"}`, `{"itemId":"env-g40"}`} {
		assertStatus(t, env.serve(add, jsonRequest(http.MethodPost, "/", body), path), http.StatusOK)
	}

	view := decodeJSON[SessionView](t, env.serve(HandleSessionGet(env.sessions), jsonRequest(http.MethodGet, "/", ""), path))
	if got := selectionIDs(view); !reflect.DeepEqual(got, []string{"env-g40", "bsk-10"}) {
		t.Errorf("selections = %v", got)
	}
	if got := view.Visible["BASKET"]; !reflect.DeepEqual(got, []string{"bsk-13"}) {
		t.Errorf("visible baskets = %v", got)
	}
	if !view.Totals.Total.Equal(decimal.NewFromInt(21000)) {
		t.Errorf("total = %s, want 21000", view.Totals.Total)
	}
}
