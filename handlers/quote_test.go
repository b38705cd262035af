package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"presupro/config"
	"presupro/services"
	"presupro/testhelpers"
)

const sampleQuoteBody = `{
	"cliente": {"nombre": "Carlos Pérez", "id": "V-12345678"},
	"empresa": {"nombre": "CONSTRUCCIONES CP"},
	"materiales": [
		{"nombre": "CEMENTO", "cantidad": 10, "precio": 5.50, "tipo": "stock"}
	],
	"manoObra": {"metros": 20, "precioPorMetro": 3},
	"tasa": 36.5
}`

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Company.Name = "MI EMPRESA DE CONSTRUCCIÓN"
	return cfg
}

func TestHandleQuoteGenerate_PDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteGenerate(app, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(sampleQuoteBody))
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content-type = %q, want application/pdf", ct)
	}
	if rec.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
	if rec.Body.Len() == 0 {
		t.Error("expected non-empty PDF body")
	}
}

func TestHandleQuoteGenerate_HTML(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteGenerate(app, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/quotes?format=html", strings.NewReader(sampleQuoteBody))
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content-type = %q, want text/html", ct)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Carlos Pérez",
		"CEMENTO",
		"$115.00",
		"Bs 4.197,50",
	)
}

// brokenPDFRenderer stands in for a PDF pipeline that errors mid-render.
type brokenPDFRenderer struct{}

func (brokenPDFRenderer) Render(*services.QuoteRequest) (*services.Document, error) {
	return nil, errors.New("pdf generation exploded")
}

func TestHandleQuoteGenerate_PDFFailureFallsBackToHTML(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := handleQuoteGenerate(app, testConfig(), func(string) services.Renderer {
		return services.FallbackRenderer{
			Primary:  brokenPDFRenderer{},
			Fallback: services.HTMLRenderer{},
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(sampleQuoteBody))
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content-type = %q, want text/html fallback", ct)
	}
	if rec.Header().Get("Content-Disposition") != "" {
		t.Error("fallback HTML should not force a download")
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"DOCUMENTO DE PRESUPUESTO",
		"Carlos Pérez",
		"$115.00",
	)
}

func TestHandleQuoteGenerate_EmptyBody(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteGenerate(app, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(""))
	req = withUser(req, "user1")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	// Rejection must happen before any side effect.
	if count := testhelpers.CountRecords(t, app, "quote_history"); count != 0 {
		t.Errorf("expected no history records, got %d", count)
	}
}

func TestHandleQuoteGenerate_RecordsHistoryAndDecrementsStock(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestInventoryItem(t, app, "user1", "CEMENTO", 100, 5.50)
	handler := HandleQuoteGenerate(app, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/quotes?format=html", strings.NewReader(sampleQuoteBody))
	req = withUser(req, "user1")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	hist, err := app.FindFirstRecordByFilter(
		"quote_history",
		"user = {:user}",
		map[string]any{"user": "user1"},
	)
	if err != nil {
		t.Fatalf("history record not found: %v", err)
	}
	if !strings.HasPrefix(hist.GetString("reference"), "PRE-") {
		t.Errorf("reference = %q, want PRE- prefix", hist.GetString("reference"))
	}
	if hist.GetFloat("total") != 115 {
		t.Errorf("history total = %v, want 115", hist.GetFloat("total"))
	}

	item, err := app.FindFirstRecordByFilter(
		"inventory_items",
		"user = {:user} && name = {:name}",
		map[string]any{"user": "user1", "name": "CEMENTO"},
	)
	if err != nil {
		t.Fatalf("inventory item not found: %v", err)
	}
	if got := item.GetFloat("quantity"); got != 90 {
		t.Errorf("stock after quote = %v, want 90", got)
	}
}

func TestHandleQuoteGenerate_AnonymousSkipsPersistence(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestInventoryItem(t, app, "user1", "CEMENTO", 100, 5.50)
	handler := HandleQuoteGenerate(app, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/quotes?format=html", strings.NewReader(sampleQuoteBody))
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if count := testhelpers.CountRecords(t, app, "quote_history"); count != 0 {
		t.Errorf("anonymous quote created %d history records", count)
	}

	item, err := app.FindFirstRecordByFilter(
		"inventory_items",
		"user = {:user} && name = {:name}",
		map[string]any{"user": "user1", "name": "CEMENTO"},
	)
	if err != nil {
		t.Fatalf("inventory item not found: %v", err)
	}
	if got := item.GetFloat("quantity"); got != 100 {
		t.Errorf("anonymous quote touched stock: %v", got)
	}
}

func TestHandleQuoteGenerate_AppliesCompanyDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteGenerate(app, testConfig())

	body := `{"materiales": [], "manoObra": {"metros": 0, "precioPorMetro": 0}, "tasa": 1}`
	req := httptest.NewRequest(http.MethodPost, "/quotes?format=html", strings.NewReader(body))
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"MI EMPRESA DE CONSTRUCCIÓN",
		"No hay materiales cargados",
		"No especificado",
	)
}
