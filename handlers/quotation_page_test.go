package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"balloonbudget/testhelpers"
)

func TestHandleQuotationListPage_Empty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(HandleQuotationListPage(env.store), httptest.NewRequest(http.MethodGet, "/quotations", nil), nil)
	assertStatus(t, rec, http.StatusOK)

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "<!DOCTYPE html>", "No quotations yet", "0 quotation(s)")
}

func TestHandleQuotationListPage_Rows(t *testing.T) {
	env := newTestEnv(t)
	saved := env.saveQuotation(t, "")

	rec := env.serve(HandleQuotationListPage(env.store), httptest.NewRequest(http.MethodGet, "/quotations", nil), nil)
	assertStatus(t, rec, http.StatusOK)

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		saved.ReferenceNumber,
		"Ana Ruiz",
		"SCHROEDER",
		"€14,580.00",
		`hx-delete="/quotations/`+saved.ID+`"`,
		"/api/quotations/"+saved.ID+"/export/pdf",
	)
}

func TestHandleQuotationListPage_HTMXFragment(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/quotations", nil)
	req.Header.Set("HX-Request", "true")

	rec := env.serve(HandleQuotationListPage(env.store), req, nil)
	assertStatus(t, rec, http.StatusOK)

	body := rec.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("HTMX request should get the fragment only")
	}
	testhelpers.AssertHTMLContains(t, body, `<div id="quotation-list">`)
}

func TestHandleQuotationListPage_EscapesClientName(t *testing.T) {
	env := newTestEnv(t)
	q := env.saveQuotation(t, "")
	record, err := env.app.FindRecordById("quotations", q.ID)
	if err != nil {
		t.Fatalf("failed to load record: %v", err)
	}
	record.Set("customer", map[string]string{"name": "<b>Evil</b>"})
	if err := env.app.Save(record); err != nil {
		t.Fatalf("failed to update record: %v", err)
	}

	rec := env.serve(HandleQuotationListPage(env.store), httptest.NewRequest(http.MethodGet, "/quotations", nil), nil)

	if strings.Contains(rec.Body.String(), "<b>Evil</b>") {
		t.Error("client name was not escaped")
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "&lt;b&gt;Evil&lt;/b&gt;")
}

func TestHandleQuotationDeletePage_HTMX(t *testing.T) {
	env := newTestEnv(t)
	saved := env.saveQuotation(t, "")

	req := httptest.NewRequest(http.MethodDelete, "/quotations/"+saved.ID, nil)
	req.Header.Set("HX-Request", "true")
	rec := env.serve(HandleQuotationDeletePage(env.store), req, map[string]string{"id": saved.ID})
	assertStatus(t, rec, http.StatusOK)

	if got := rec.Header().Get("HX-Redirect"); got != "/quotations" {
		t.Errorf("HX-Redirect = %q, want /quotations", got)
	}
	_, toast := decodeTrigger(t, rec)
	if toast["type"] != "success" || !strings.Contains(toast["message"], saved.ReferenceNumber) {
		t.Errorf("toast = %v", toast)
	}
	if _, err := env.store.FindByID(saved.ID); err == nil {
		t.Error("expected quotation to be deleted")
	}
}

func TestHandleQuotationDeletePage_Redirect(t *testing.T) {
	env := newTestEnv(t)
	saved := env.saveQuotation(t, "")

	rec := env.serve(HandleQuotationDeletePage(env.store), httptest.NewRequest(http.MethodDelete, "/", nil),
		map[string]string{"id": saved.ID})
	assertStatus(t, rec, http.StatusFound)
	if loc := rec.Header().Get("Location"); loc != "/quotations" {
		t.Errorf("Location = %q", loc)
	}
}

func TestHandleQuotationDeletePage_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(HandleQuotationDeletePage(env.store), httptest.NewRequest(http.MethodDelete, "/", nil),
		map[string]string{"id": "missing"})
	assertStatus(t, rec, http.StatusNotFound)
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("expected HX-Reswap: none on error")
	}
}
