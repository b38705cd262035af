package services

import (
	"testing"
	"time"

	"presupro/testhelpers"
)

func TestGenerateQuoteNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	if got := GenerateQuoteNumber(app, "user1", now); got != "PRE-2026-001" {
		t.Errorf("first number = %q, want PRE-2026-001", got)
	}

	testhelpers.CreateTestHistoryRecord(t, app, "user1", "PRE-2026-001", "Cliente A", 100)
	if got := GenerateQuoteNumber(app, "user1", now); got != "PRE-2026-002" {
		t.Errorf("second number = %q, want PRE-2026-002", got)
	}

	// Sequences are per user.
	if got := GenerateQuoteNumber(app, "user2", now); got != "PRE-2026-001" {
		t.Errorf("other user's number = %q, want PRE-2026-001", got)
	}

	// And per year.
	nextYear := time.Date(2027, 1, 2, 10, 0, 0, 0, time.UTC)
	if got := GenerateQuoteNumber(app, "user1", nextYear); got != "PRE-2027-001" {
		t.Errorf("next year's number = %q, want PRE-2027-001", got)
	}
}

func TestAnonymousQuoteNumber(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	if got := AnonymousQuoteNumber(now); got != "PRE-20260831-150405" {
		t.Errorf("anonymous number = %q", got)
	}
}
