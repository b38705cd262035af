package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"presupro/services"
)

// inventoryItemJSON keeps the wire field names the form already uses.
type inventoryItemJSON struct {
	Name     string  `json:"nombre"`
	Quantity float64 `json:"cantidad"`
	Price    float64 `json:"precio"`
}

// HandleInventoryList handles GET /inventory.
func HandleInventoryList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUser(e)
		if !ok {
			return nil
		}

		records, err := app.FindRecordsByFilter(
			"inventory_items",
			"user = {:user}",
			"+name",
			0, 0,
			map[string]any{"user": userID},
		)
		if err != nil {
			log.Printf("inventory_list: query failed for user %s: %v", userID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load inventory"})
		}

		items := make([]inventoryItemJSON, 0, len(records))
		for _, rec := range records {
			items = append(items, inventoryItemJSON{
				Name:     rec.GetString("name"),
				Quantity: rec.GetFloat("quantity"),
				Price:    rec.GetFloat("price"),
			})
		}

		return e.JSON(http.StatusOK, items)
	}
}

// HandleInventoryUpsert handles POST /inventory. Adding an item that
// already exists accumulates its quantity; a positive price replaces the
// stored one, zero keeps it.
func HandleInventoryUpsert(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUser(e)
		if !ok {
			return nil
		}

		var payload struct {
			Name     string `json:"nombre"`
			Quantity any    `json:"cantidad"`
			Price    any    `json:"precio"`
		}
		if err := json.NewDecoder(e.Request.Body).Decode(&payload); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid inventory payload"})
		}

		name := strings.ToUpper(strings.TrimSpace(payload.Name))
		if name == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "product name is required"})
		}
		qty := services.ParseAmount(payload.Quantity)
		price := services.ParseAmount(payload.Price)

		rec, err := app.FindFirstRecordByFilter(
			"inventory_items",
			"user = {:user} && name = {:name}",
			map[string]any{"user": userID, "name": name},
		)
		if err != nil {
			col, err := app.FindCollectionByNameOrId("inventory_items")
			if err != nil {
				log.Printf("inventory_upsert: could not find collection: %v", err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not save item"})
			}
			rec = core.NewRecord(col)
			rec.Set("user", userID)
			rec.Set("name", name)
			rec.Set("quantity", qty)
			rec.Set("price", price)
		} else {
			rec.Set("quantity", rec.GetFloat("quantity")+qty)
			if price > 0 {
				rec.Set("price", price)
			}
		}

		if err := app.Save(rec); err != nil {
			log.Printf("inventory_upsert: save failed for %q: %v", name, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not save item"})
		}

		return e.JSON(http.StatusOK, inventoryItemJSON{
			Name:     rec.GetString("name"),
			Quantity: rec.GetFloat("quantity"),
			Price:    rec.GetFloat("price"),
		})
	}
}

// HandleInventoryDelete handles DELETE /inventory/{name}.
func HandleInventoryDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUser(e)
		if !ok {
			return nil
		}

		name := strings.ToUpper(strings.TrimSpace(e.Request.PathValue("name")))
		if name == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing product name"})
		}

		rec, err := app.FindFirstRecordByFilter(
			"inventory_items",
			"user = {:user} && name = {:name}",
			map[string]any{"user": userID, "name": name},
		)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "item not found"})
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("inventory_delete: delete failed for %q: %v", name, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not delete item"})
		}

		return e.NoContent(http.StatusNoContent)
	}
}

// HandleInventoryExport handles GET /inventory/export and downloads the
// user's inventory as an Excel file.
func HandleInventoryExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUser(e)
		if !ok {
			return nil
		}

		records, err := app.FindRecordsByFilter(
			"inventory_items",
			"user = {:user}",
			"+name",
			0, 0,
			map[string]any{"user": userID},
		)
		if err != nil {
			log.Printf("inventory_export: query failed for user %s: %v", userID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load inventory"})
		}

		items := make([]services.InventoryExportItem, 0, len(records))
		for _, rec := range records {
			items = append(items, services.InventoryExportItem{
				Name:     rec.GetString("name"),
				Quantity: rec.GetFloat("quantity"),
				Price:    rec.GetFloat("price"),
			})
		}

		data, err := services.GenerateInventoryExcel(items)
		if err != nil {
			log.Printf("inventory_export: excel generation failed: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not generate export"})
		}

		filename := fmt.Sprintf("inventario-%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(data)
		return nil
	}
}
