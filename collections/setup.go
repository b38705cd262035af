package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the inventory_items,
// quote_history and company_profiles collections exist. Every record is
// scoped by an opaque user identifier supplied by the external identity
// provider.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "inventory_items", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "user", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "price", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "quote_history", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "user", Required: true})
		c.Fields.Add(&core.TextField{Name: "reference", Required: false})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "client_id", Required: false})
		c.Fields.Add(&core.JSONField{Name: "items", MaxSize: 2 << 20})
		c.Fields.Add(&core.NumberField{Name: "labor_area", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "exchange_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "materials_total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "converted_total", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "company_profiles", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "user", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: false})
		// Logos arrive as data URIs from the client, so this is a text
		// field rather than a file field.
		c.Fields.Add(&core.TextField{Name: "logo", Required: false, Max: 2 << 20})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
