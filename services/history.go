package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HistoryLineItem is the line-item shape stored inside a history snapshot.
// It keeps the wire field names so a snapshot loads straight back into the
// form.
type HistoryLineItem struct {
	Name      string  `json:"nombre"`
	Quantity  float64 `json:"cantidad"`
	UnitPrice float64 `json:"precio"`
	Source    string  `json:"tipo"`
}

// DecrementStock subtracts the quoted quantity of every stock-sourced line
// item from the user's inventory. Best-effort: a missing item or a failed
// save is logged and the rest of the items are still processed. Stock may
// go negative, matching how the form behaves when quantities race.
func DecrementStock(app *pocketbase.PocketBase, userID string, items []LineItem) {
	for _, li := range items {
		if li.Source != SourceStock || li.Quantity <= 0 {
			continue
		}

		rec, err := app.FindFirstRecordByFilter(
			"inventory_items",
			"user = {:user} && name = {:name}",
			map[string]any{"user": userID, "name": li.Name},
		)
		if err != nil {
			log.Printf("stock: no inventory item %q for user %s, skipping decrement", li.Name, userID)
			continue
		}

		rec.Set("quantity", rec.GetFloat("quantity")-li.Quantity)
		if err := app.Save(rec); err != nil {
			log.Printf("stock: failed to decrement %q for user %s: %v", li.Name, userID, err)
		}
	}
}

// AppendHistory writes an immutable snapshot of a generated quote. The
// snapshot carries the full request so it can be reloaded and edited
// later. Callers treat failures as non-fatal.
func AppendHistory(app *pocketbase.PocketBase, userID, reference string, req *QuoteRequest) error {
	col, err := app.FindCollectionByNameOrId("quote_history")
	if err != nil {
		return fmt.Errorf("find quote_history collection: %w", err)
	}

	items := make([]HistoryLineItem, 0, len(req.Items))
	for _, li := range req.Items {
		items = append(items, HistoryLineItem{
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			Source:    string(li.Source),
		})
	}

	totals := req.Totals()

	rec := core.NewRecord(col)
	rec.Set("user", userID)
	rec.Set("reference", reference)
	rec.Set("client_name", req.Client.Name)
	rec.Set("client_id", req.Client.ID)
	rec.Set("items", items)
	rec.Set("labor_area", req.Labor.Area)
	rec.Set("labor_rate", req.Labor.Rate)
	rec.Set("exchange_rate", totals.Rate)
	rec.Set("materials_total", totals.Materials)
	rec.Set("labor_total", totals.Labor)
	rec.Set("total", totals.Grand)
	rec.Set("converted_total", totals.Converted)

	if err := app.Save(rec); err != nil {
		return fmt.Errorf("save history record: %w", err)
	}
	return nil
}
