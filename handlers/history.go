package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"presupro/services"
)

// historySummaryJSON is the list view of a snapshot, without the item blob.
type historySummaryJSON struct {
	ID         string  `json:"id"`
	Reference  string  `json:"referencia"`
	ClientName string  `json:"cliente"`
	Total      float64 `json:"total"`
	Created    string  `json:"fecha"`
}

// historyDetailJSON is the full snapshot, shaped so the client can load it
// straight back into the quote form.
type historyDetailJSON struct {
	historySummaryJSON

	ClientID     string                     `json:"clienteId"`
	Items        []services.HistoryLineItem `json:"materiales"`
	LaborArea    float64                    `json:"metros"`
	LaborRate    float64                    `json:"precioPorMetro"`
	ExchangeRate float64                    `json:"tasa"`
}

// HandleHistoryList handles GET /history, newest first.
func HandleHistoryList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUser(e)
		if !ok {
			return nil
		}

		records, err := app.FindRecordsByFilter(
			"quote_history",
			"user = {:user}",
			"-created",
			0, 0,
			map[string]any{"user": userID},
		)
		if err != nil {
			log.Printf("history_list: query failed for user %s: %v", userID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load history"})
		}

		items := make([]historySummaryJSON, 0, len(records))
		for _, rec := range records {
			items = append(items, summaryFromRecord(rec))
		}

		return e.JSON(http.StatusOK, items)
	}
}

// HandleHistoryView handles GET /history/{id}.
func HandleHistoryView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUser(e)
		if !ok {
			return nil
		}

		id := e.Request.PathValue("id")
		rec, err := app.FindRecordById("quote_history", id)
		if err != nil || rec.GetString("user") != userID {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "quote not found"})
		}

		detail := historyDetailJSON{
			historySummaryJSON: summaryFromRecord(rec),
			ClientID:           rec.GetString("client_id"),
			LaborArea:          rec.GetFloat("labor_area"),
			LaborRate:          rec.GetFloat("labor_rate"),
			ExchangeRate:       rec.GetFloat("exchange_rate"),
		}
		if err := rec.UnmarshalJSONField("items", &detail.Items); err != nil {
			log.Printf("history_view: could not decode items of %s: %v", id, err)
		}

		return e.JSON(http.StatusOK, detail)
	}
}

func summaryFromRecord(rec *core.Record) historySummaryJSON {
	created := ""
	if dt := rec.GetDateTime("created"); !dt.IsZero() {
		created = dt.Time().Format("02/01/2006 15:04")
	}
	return historySummaryJSON{
		ID:         rec.Id,
		Reference:  rec.GetString("reference"),
		ClientName: rec.GetString("client_name"),
		Total:      rec.GetFloat("total"),
		Created:    created,
	}
}
