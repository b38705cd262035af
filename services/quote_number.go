package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatQuoteNumber constructs the reference string from components.
func formatQuoteNumber(year int, sequence int) string {
	return fmt.Sprintf("PRE-%d-%03d", year, sequence)
}

// GenerateQuoteNumber creates the next quote reference for a user.
// Format: PRE-{year}-{sequence}, sequence is 3-digit zero-padded and
// counted per user per calendar year from the history store.
func GenerateQuoteNumber(app *pocketbase.PocketBase, userID string, now time.Time) string {
	year := now.Year()
	prefix := fmt.Sprintf("PRE-%d-", year)

	existing, err := app.FindRecordsByFilter(
		"quote_history",
		"user = {:user} && reference ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"user":   userID,
			"prefix": prefix + "%",
		},
	)
	if err != nil {
		// Collection missing or no records yet, start at 1.
		existing = nil
	}

	return formatQuoteNumber(year, len(existing)+1)
}

// AnonymousQuoteNumber builds a timestamp-based reference for quotes
// generated without an authenticated user, where no per-user sequence
// exists.
func AnonymousQuoteNumber(now time.Time) string {
	return "PRE-" + now.Format("20060102-150405")
}
