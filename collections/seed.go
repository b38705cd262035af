package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// DemoUser owns the seeded demo inventory.
const DemoUser = "demo"

type itemDef struct {
	name     string
	quantity float64
	price    float64
}

var demoInventory = []itemDef{
	{"CEMENTO", 100, 5.50},
	{"ARENA LAVADA (SACO)", 80, 2.75},
	{"CABILLA 3/8", 200, 4.20},
	{"BLOQUE DE CONCRETO 15CM", 500, 0.85},
	{"PINTURA BLANCA (GALÓN)", 24, 18.90},
}

// SeedDemo populates a small demo inventory for the demo user. It only
// runs when the inventory collection is completely empty, so restarts
// never duplicate or overwrite user data.
func SeedDemo(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("inventory_items")
	if err != nil {
		return fmt.Errorf("find inventory_items collection: %w", err)
	}

	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("query inventory_items: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, def := range demoInventory {
		rec := core.NewRecord(col)
		rec.Set("user", DemoUser)
		rec.Set("name", def.name)
		rec.Set("quantity", def.quantity)
		rec.Set("price", def.price)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed inventory item %q: %w", def.name, err)
		}
	}

	return nil
}
