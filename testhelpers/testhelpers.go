// Package testhelpers provides utilities for testing PocketBase-based
// applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"presupro/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestInventoryItem creates an inventory record for a user and returns it.
func CreateTestInventoryItem(t *testing.T, app *pocketbase.PocketBase, user, name string, quantity, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("inventory_items")
	if err != nil {
		t.Fatalf("failed to find inventory_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("user", user)
	record.Set("name", name)
	record.Set("quantity", quantity)
	record.Set("price", price)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test inventory item: %v", err)
	}

	return record
}

// CreateTestHistoryRecord creates a minimal quote history record and returns it.
func CreateTestHistoryRecord(t *testing.T, app *pocketbase.PocketBase, user, reference, clientName string, total float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quote_history")
	if err != nil {
		t.Fatalf("failed to find quote_history collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("user", user)
	record.Set("reference", reference)
	record.Set("client_name", clientName)
	record.Set("client_id", "N/A")
	record.Set("total", total)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test history record: %v", err)
	}

	return record
}

// CountRecords returns how many records a collection holds.
func CountRecords(t *testing.T, app *pocketbase.PocketBase, collection string) int {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		t.Fatalf("failed to find collection %q: %v", collection, err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		t.Fatalf("failed to query collection %q: %v", collection, err)
	}
	return len(records)
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
