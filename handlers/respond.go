package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// errorJSON writes {"error": msg} with the given status.
func errorJSON(e *core.RequestEvent, status int, msg string) error {
	return e.JSON(status, map[string]string{"error": msg})
}

// validationJSON writes a 400 with per-field messages.
func validationJSON(e *core.RequestEvent, msg string, fields map[string]string) error {
	return e.JSON(http.StatusBadRequest, map[string]any{"error": msg, "fields": fields})
}
