package services

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeQuoteRequestEmptyBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t"},
		{"broken json", "{not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeQuoteRequest(strings.NewReader(tt.body))
			if !errors.Is(err, ErrEmptyRequest) {
				t.Errorf("expected ErrEmptyRequest, got %v", err)
			}
		})
	}
}

func TestDecodeQuoteRequest(t *testing.T) {
	body := `{
		"cliente": {"nombre": "Carlos Pérez", "id": "V-12345678"},
		"empresa": {"nombre": "CONSTRUCCIONES CP", "logo": "data:image/png;base64,aGVsbG8="},
		"materiales": [
			{"nombre": "cemento", "cantidad": 10, "precio": "5.50", "tipo": "stock"},
			{"nombre": "arena", "cantidad": "3", "precio": 2.75, "tipo": "externo"}
		],
		"manoObra": {"metros": "20", "precioPorMetro": 3},
		"tasa": "36.5"
	}`

	req, err := DecodeQuoteRequest(strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Client.Name != "Carlos Pérez" {
		t.Errorf("client name = %q", req.Client.Name)
	}
	if req.Client.ID != "V-12345678" {
		t.Errorf("client id = %q", req.Client.ID)
	}
	if req.Company.Name != "CONSTRUCCIONES CP" {
		t.Errorf("company name = %q", req.Company.Name)
	}

	if len(req.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(req.Items))
	}
	first := req.Items[0]
	if first.Name != "CEMENTO" {
		t.Errorf("item name not upper-cased: %q", first.Name)
	}
	if first.Quantity != 10 || first.UnitPrice != 5.50 {
		t.Errorf("string/number coercion failed: qty=%v price=%v", first.Quantity, first.UnitPrice)
	}
	if first.Source != SourceStock {
		t.Errorf("item source = %q, want stock", first.Source)
	}
	if req.Items[1].Source != SourceExternal {
		t.Errorf("second item source = %q, want externo", req.Items[1].Source)
	}

	if req.Labor.Area != 20 || req.Labor.Rate != 3 {
		t.Errorf("labor = %+v", req.Labor)
	}
	if req.ExchangeRate != 36.5 {
		t.Errorf("exchange rate = %v", req.ExchangeRate)
	}
}

func TestDecodeQuoteRequestDefaults(t *testing.T) {
	body := `{
		"materiales": [
			{"nombre": "", "cantidad": "abc", "precio": null, "tipo": "whatever"}
		],
		"tasa": 0
	}`

	req, err := DecodeQuoteRequest(strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Client.ID != "N/A" {
		t.Errorf("client id default = %q, want N/A", req.Client.ID)
	}
	item := req.Items[0]
	if item.Name != "PRODUCTO" {
		t.Errorf("blank name default = %q, want PRODUCTO", item.Name)
	}
	if item.Quantity != 0 || item.UnitPrice != 0 {
		t.Errorf("invalid numerics should coerce to zero: %+v", item)
	}
	if item.Source != SourceExternal {
		t.Errorf("unknown source = %q, want externo", item.Source)
	}
	if req.ExchangeRate != 1 {
		t.Errorf("zero rate should sanitize to 1, got %v", req.ExchangeRate)
	}
}

func TestApplyCompanyDefaults(t *testing.T) {
	req := &QuoteRequest{}
	req.ApplyCompanyDefaults("MI EMPRESA", "logo.png")
	if req.Company.Name != "MI EMPRESA" || req.Company.Logo != "logo.png" {
		t.Errorf("defaults not applied: %+v", req.Company)
	}

	req = &QuoteRequest{Company: CompanyProfile{Name: "ACME", Logo: "acme.png"}}
	req.ApplyCompanyDefaults("MI EMPRESA", "logo.png")
	if req.Company.Name != "ACME" || req.Company.Logo != "acme.png" {
		t.Errorf("existing values overwritten: %+v", req.Company)
	}
}

func TestNormalizeLineItem(t *testing.T) {
	li := NormalizeLineItem("  cemento gris ", 4, 5.5, "stock")
	if li.Name != "CEMENTO GRIS" {
		t.Errorf("name = %q", li.Name)
	}
	if li.Source != SourceStock {
		t.Errorf("source = %q", li.Source)
	}
	if li.Subtotal() != 22 {
		t.Errorf("subtotal = %v, want 22", li.Subtotal())
	}
}
