package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"balloonbudget/services"
	"balloonbudget/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// testEnv bundles the collaborators main wires into the handlers.
type testEnv struct {
	app      *pocketbase.PocketBase
	lib      *services.CatalogLibrary
	sessions *services.SessionStore
	store    *services.QuotationStore
	saver    *services.QuotationSaver
	settings services.Settings
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	app := testhelpers.NewTestApp(t)
	lib, err := services.LoadCatalogLibrary(testhelpers.WriteCatalogDir(t))
	if err != nil {
		t.Fatalf("failed to load fixture catalogs: %v", err)
	}
	store := services.NewQuotationStore(app)
	return &testEnv{
		app:      app,
		lib:      lib,
		sessions: services.NewSessionStore(),
		store:    store,
		saver:    services.NewQuotationSaver(store, services.DefaultReferenceAttempts),
		settings: services.Settings{
			CompanyName:          "Balloon Budget",
			DefaultTerms:         services.DefaultTerms,
			MaxReferenceAttempts: services.DefaultReferenceAttempts,
		},
	}
}

// serve runs handler against req with path values set and returns the
// recorder.
func (env *testEnv) serve(handler func(*core.RequestEvent) error, req *http.Request, pathValues map[string]string) *httptest.ResponseRecorder {
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(env.app, req, rec)
	if err := handler(e); err != nil {
		rec.Code = http.StatusInternalServerError
		rec.Body.WriteString(err.Error())
	}
	return rec
}

// newSession opens a Schroeder session and selects the given item ids.
func (env *testEnv) newSession(t *testing.T, itemIDs ...string) string {
	t.Helper()

	catalog, _ := env.lib.Catalog(services.VendorSchroeder)
	id := env.sessions.Create(services.VendorSchroeder, catalog, env.lib.Rules, services.DefaultTerms)
	err := env.sessions.With(id, func(s *services.Session) error {
		for _, itemID := range itemIDs {
			item, ok := catalog.Item(itemID)
			if !ok {
				t.Fatalf("fixture item %s not found", itemID)
			}
			s.Engine.Select(item, 1, nil, "")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to prepare session: %v", err)
	}
	return id
}

// saveQuotation stores a customer-complete quotation through the saver.
func (env *testEnv) saveQuotation(t *testing.T, ref string) *services.Quotation {
	t.Helper()

	catalog, _ := env.lib.Catalog(services.VendorSchroeder)
	engine := services.NewConfigurator(services.VendorSchroeder, catalog, env.lib.Rules)
	envelope, _ := catalog.Item("env-g30")
	tank, _ := catalog.Item("acc-tank")
	engine.Select(envelope, 1, nil, "")
	engine.Select(tank, 2, nil, "")

	q := services.NewQuotation(ref, services.VendorSchroeder, testCustomer(), engine.Snapshot(), decimal.NewFromInt(10), "Net 30")
	if err := env.saver.Save(q); err != nil {
		t.Fatalf("failed to save quotation: %v", err)
	}
	return q
}

func testCustomer() services.ClientDetails {
	return services.ClientDetails{Name: "Ana Ruiz", Country: "ES", Phone: "+34 600 123 456", Email: "ana@example.com"}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d\nbody: %s", want, rec.Code, rec.Body.String())
	}
}
