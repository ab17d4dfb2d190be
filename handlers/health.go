package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"balloonbudget/services"
)

// HandleHealth returns a handler that checks the database and reports how
// many quotations it holds.
func HandleHealth(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		total, err := app.CountRecords(services.QuotationsCollection)
		if err != nil {
			log.Printf("health: database check failed: %v", err)
			return e.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "error",
				"error":  "database unavailable",
			})
		}
		return e.JSON(http.StatusOK, map[string]any{
			"status":     "ok",
			"quotations": total,
		})
	}
}
