package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"presupro/templates"
)

// Document is a finished, downloadable quote document.
type Document struct {
	ContentType string
	Filename    string
	Body        []byte
}

// Renderer turns a quote request into a document. Implementations must not
// mutate the request and must be safe for concurrent use.
type Renderer interface {
	Render(req *QuoteRequest) (*Document, error)
}

// BuildQuoteDocumentData formats a quote request into the display view
// model shared by the HTML and PDF renderers.
func BuildQuoteDocumentData(req *QuoteRequest, now time.Time) templates.QuoteDocumentData {
	totals := req.Totals()

	clientName := strings.TrimSpace(req.Client.Name)
	if clientName == "" {
		clientName = "No especificado"
	}
	clientID := strings.TrimSpace(req.Client.ID)
	if clientID == "" {
		clientID = "N/A"
	}

	data := templates.QuoteDocumentData{
		CompanyName: req.Company.Name,
		LogoURL:     req.Company.Logo,
		Reference:   req.Reference,
		Date:        now.Format("02/01/2006"),

		ClientName: clientName,
		ClientID:   clientID,

		LaborArea:  FormatQty(req.Labor.Area),
		LaborRate:  FormatUSD(req.Labor.Rate),
		LaborTotal: FormatUSD(totals.Labor),

		MaterialsTotal: FormatUSD(totals.Materials),
		GrandTotal:     FormatUSD(totals.Grand),
		ConvertedTotal: FormatBs(totals.Converted),
		ExchangeRate:   FormatRate(totals.Rate),
	}

	for _, li := range req.Items {
		data.Rows = append(data.Rows, templates.QuoteRow{
			Name:     li.Name,
			Qty:      FormatQty(li.Quantity),
			Price:    FormatUSD(li.UnitPrice),
			Subtotal: FormatUSD(li.Subtotal()),
		})
	}

	return data
}

// HTMLRenderer produces the standalone printable markup. It cannot fail in
// any recoverable way, which is what makes it the universal fallback.
type HTMLRenderer struct{}

func (HTMLRenderer) Render(req *QuoteRequest) (*Document, error) {
	data := BuildQuoteDocumentData(req, time.Now())

	var buf bytes.Buffer
	if err := templates.QuoteDocument(data).Render(context.Background(), &buf); err != nil {
		return nil, fmt.Errorf("render quote html: %w", err)
	}

	return &Document{
		ContentType: "text/html; charset=utf-8",
		Filename:    documentFilename(req.Reference, "html"),
		Body:        buf.Bytes(),
	}, nil
}

// FallbackRenderer tries Primary and degrades to Fallback on any error.
// Quote delivery must never fail just because the preferred format did.
type FallbackRenderer struct {
	Primary  Renderer
	Fallback Renderer
}

func (f FallbackRenderer) Render(req *QuoteRequest) (*Document, error) {
	doc, err := f.Primary.Render(req)
	if err == nil {
		return doc, nil
	}
	log.Printf("renderer: primary renderer failed, falling back: %v", err)
	return f.Fallback.Render(req)
}

func documentFilename(reference, ext string) string {
	name := strings.TrimSpace(reference)
	if name == "" {
		name = "presupuesto"
	}
	return strings.ReplaceAll(name, "/", "-") + "." + ext
}
