package collections

import (
	"log"

	"github.com/pocketbase/pocketbase/core"
)

// QuotationReferenceIndex is the unique index that makes two quotations
// with one reference impossible, whichever process saves them.
const QuotationReferenceIndex = "idx_quotations_reference_number"

// Setup programmatically creates/ensures the quotations collection exists.
func Setup(app core.App) {
	ensureCollection(app, "quotations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "vendor", Required: true})
		c.Fields.Add(&core.JSONField{Name: "customer"})
		c.Fields.Add(&core.JSONField{Name: "items"})
		c.Fields.Add(&core.NumberField{Name: "discount_percent", Min: ptr(0.0), Max: ptr(100.0)})
		c.Fields.Add(&core.TextField{Name: "total", Required: true})
		c.Fields.Add(&core.TextField{Name: "terms"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex(QuotationReferenceIndex, true, "reference_number", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("collections: %q already exists, skipping creation", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("collections: failed to create %q: %v", name, err)
	}

	log.Printf("collections: created %q (id=%s)", name, collection.Id)
	return collection
}

func ptr[T any](v T) *T {
	return &v
}
