package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleHealth(t *testing.T) {
	env := newTestEnv(t)
	env.saveQuotation(t, "")

	rec := env.serve(HandleHealth(env.app), httptest.NewRequest(http.MethodGet, "/api/health", nil), nil)
	assertStatus(t, rec, http.StatusOK)

	body := decodeJSON[struct {
		Status     string `json:"status"`
		Quotations int    `json:"quotations"`
	}](t, rec)
	if body.Status != "ok" || body.Quotations != 1 {
		t.Errorf("health = %+v, want ok with 1 quotation", body)
	}
}
