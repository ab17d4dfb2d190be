package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"balloonbudget/collections"
	"balloonbudget/handlers"
	"balloonbudget/services"
)

func main() {
	// Outside production a local .env overrides the environment.
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env not loaded, using system environment variables: %v", err)
		}
	}

	settings := services.LoadSettings()

	lib, err := services.LoadCatalogLibrary(settings.CatalogDir)
	if err != nil {
		log.Fatalf("failed to load catalogs from %s: %v", settings.CatalogDir, err)
	}

	app := pocketbase.New()
	store := services.NewQuotationStore(app)
	saver := services.NewQuotationSaver(store, settings.MaxReferenceAttempts)
	sessions := services.NewSessionStore()

	registerCommands(app, saver, settings)

	// Create collections and bring older databases up to date
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.MigrateReferenceIndex(app); err != nil {
			log.Printf("Warning: reference index migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if _, err := os.Stat("./static"); err == nil {
			se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))
		}

		se.Router.GET("/api/health", handlers.HandleHealth(app))

		// ── Catalogs ─────────────────────────────────────────────
		se.Router.GET("/api/vendors", handlers.HandleVendorList(lib))
		vendor := se.Router.Group("/api/vendors/{vendor}")
		vendor.BindFunc(handlers.RequireVendor(lib))
		vendor.GET("/catalog", handlers.HandleVendorCatalog())
		vendor.GET("/kits", handlers.HandleVendorKits(lib))

		// ── Configuration sessions ───────────────────────────────
		se.Router.POST("/api/sessions", handlers.HandleSessionCreate(lib, sessions, settings))
		se.Router.GET("/api/sessions/{id}", handlers.HandleSessionGet(sessions))
		se.Router.PATCH("/api/sessions/{id}", handlers.HandleSessionUpdate(sessions))
		se.Router.DELETE("/api/sessions/{id}", handlers.HandleSessionDelete(sessions))
		se.Router.POST("/api/sessions/{id}/selections", handlers.HandleSelectionAdd(sessions))
		se.Router.DELETE("/api/sessions/{id}/selections/{itemId}", handlers.HandleSelectionRemove(sessions))
		se.Router.POST("/api/sessions/{id}/kits/{kitId}", handlers.HandleKitLoad(lib, sessions))
		se.Router.POST("/api/sessions/{id}/quotation", handlers.HandleSessionSave(sessions, saver))
		se.Router.GET("/api/sessions/{id}/export/{format}", handlers.HandleSessionExport(sessions, settings))

		// ── Saved quotations ─────────────────────────────────────
		se.Router.GET("/api/quotations", handlers.HandleQuotationList(store))
		se.Router.POST("/api/quotations", handlers.HandleQuotationCreate(lib, saver, settings))
		se.Router.GET("/api/quotations/lookup", handlers.HandleQuotationLookup(store))
		se.Router.GET("/api/quotations/{id}", handlers.HandleQuotationGet(store))
		se.Router.DELETE("/api/quotations/{id}", handlers.HandleQuotationDelete(store))
		se.Router.POST("/api/quotations/{id}/session", handlers.HandleQuotationReopen(lib, store, sessions))
		se.Router.GET("/api/quotations/{id}/export/{format}", handlers.HandleQuotationExport(store, settings))

		// ── Back office pages ────────────────────────────────────
		se.Router.GET("/quotations", handlers.HandleQuotationListPage(store))
		se.Router.DELETE("/quotations/{id}", handlers.HandleQuotationDeletePage(store))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
