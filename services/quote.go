package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyRequest rejects quote payloads with no usable body.
var ErrEmptyRequest = errors.New("empty quote request")

// ClientInfo identifies who the quote is for.
type ClientInfo struct {
	Name string
	ID   string
}

// CompanyProfile is the issuing company's identity on the document.
// Logo is a URL or data URI.
type CompanyProfile struct {
	Name string
	Logo string
}

// QuoteRequest is the full input of a quote document. It is treated as
// immutable once handed to a renderer.
type QuoteRequest struct {
	Reference    string
	Client       ClientInfo
	Company      CompanyProfile
	Items        []LineItem
	Labor        LaborSpec
	ExchangeRate float64
}

// Totals recomputes the quote's totals. Idempotent and order-independent.
func (q *QuoteRequest) Totals() QuoteTotals {
	return CalcQuoteTotals(q.Items, q.Labor, q.ExchangeRate)
}

// ApplyCompanyDefaults fills blank company fields with the fallback
// identity. Name and logo fall back independently.
func (q *QuoteRequest) ApplyCompanyDefaults(name, logo string) {
	if strings.TrimSpace(q.Company.Name) == "" {
		q.Company.Name = name
	}
	if strings.TrimSpace(q.Company.Logo) == "" {
		q.Company.Logo = logo
	}
}

// Wire format of the quote payload. Numeric fields are declared as `any`
// because the form sends them inconsistently as numbers or strings; they
// all pass through ParseAmount/SanitizeRate.
type quotePayload struct {
	Client struct {
		Name string `json:"nombre"`
		ID   string `json:"id"`
	} `json:"cliente"`
	Company struct {
		Name string `json:"nombre"`
		Logo string `json:"logo"`
	} `json:"empresa"`
	Materials []struct {
		Name     string `json:"nombre"`
		Quantity any    `json:"cantidad"`
		Price    any    `json:"precio"`
		Source   string `json:"tipo"`
	} `json:"materiales"`
	Labor struct {
		Area any `json:"metros"`
		Rate any `json:"precioPorMetro"`
	} `json:"manoObra"`
	ExchangeRate any `json:"tasa"`
}

// DecodeQuoteRequest reads a JSON quote payload and sanitizes it into a
// QuoteRequest. An empty or unparsable body returns ErrEmptyRequest so the
// caller can reject it before any side effect happens.
func DecodeQuoteRequest(r io.Reader) (*QuoteRequest, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read quote payload: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrEmptyRequest
	}

	var payload quotePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyRequest, err)
	}

	req := &QuoteRequest{
		Client: ClientInfo{
			Name: strings.TrimSpace(payload.Client.Name),
			ID:   strings.TrimSpace(payload.Client.ID),
		},
		Company: CompanyProfile{
			Name: strings.TrimSpace(payload.Company.Name),
			Logo: strings.TrimSpace(payload.Company.Logo),
		},
		Labor: LaborSpec{
			Area: ParseAmount(payload.Labor.Area),
			Rate: ParseAmount(payload.Labor.Rate),
		},
		ExchangeRate: SanitizeRate(payload.ExchangeRate),
	}

	if req.Client.ID == "" {
		req.Client.ID = "N/A"
	}

	for _, m := range payload.Materials {
		req.Items = append(req.Items, NormalizeLineItem(
			m.Name, ParseAmount(m.Quantity), ParseAmount(m.Price), m.Source,
		))
	}

	return req, nil
}

// NormalizeLineItem builds a sanitized LineItem. Names are upper-cased and
// blank names fall back to a generic product label; unknown sources count
// as external purchases so no stock gets decremented by accident.
func NormalizeLineItem(name string, qty, price float64, source string) LineItem {
	cleanName := strings.ToUpper(strings.TrimSpace(name))
	if cleanName == "" {
		cleanName = "PRODUCTO"
	}

	src := SourceExternal
	if LineItemSource(source) == SourceStock {
		src = SourceStock
	}

	return LineItem{
		Name:      cleanName,
		Quantity:  qty,
		UnitPrice: price,
		Source:    src,
	}
}
