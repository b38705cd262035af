// Package templates renders the printable quote document. The document is a
// single self-contained page, so its component is written directly against
// templ's ComponentFunc API instead of going through the templ generator.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// QuoteRow is one rendered materials line. All money fields arrive
// preformatted.
type QuoteRow struct {
	Name     string
	Qty      string
	Price    string
	Subtotal string
}

// QuoteDocumentData is everything the quote document needs, preformatted
// for display.
type QuoteDocumentData struct {
	CompanyName string
	LogoURL     string
	Reference   string
	Date        string

	ClientName string
	ClientID   string

	Rows []QuoteRow

	LaborArea  string
	LaborRate  string
	LaborTotal string

	MaterialsTotal string
	GrandTotal     string
	ConvertedTotal string
	ExchangeRate   string
}

// QuoteDocument builds the printable HTML quote. The page carries its own
// styles and a print button so it can be opened standalone and saved to
// PDF with the browser's native print dialog.
func QuoteDocument(data QuoteDocumentData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &docWriter{w: w}

		p.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="UTF-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
		p.raw(`<title>Presupuesto - `)
		p.text(data.ClientName)
		p.raw(`</title><style>`)
		p.raw(documentStyles)
		p.raw(`</style></head><body><div class="sheet">`)

		p.raw(`<div class="header"><img src="`)
		p.text(data.LogoURL)
		p.raw(`" alt="Logo" class="logo"><div class="empresa-info"><h1>`)
		p.text(data.CompanyName)
		p.raw(`</h1><p class="doc-label">DOCUMENTO DE PRESUPUESTO</p>`)
		if data.Reference != "" {
			p.raw(`<p class="doc-ref">N° `)
			p.text(data.Reference)
			p.raw(` &middot; `)
			p.text(data.Date)
			p.raw(`</p>`)
		}
		p.raw(`</div></div>`)

		p.raw(`<div class="cliente-box"><div><p class="field-label">Cliente</p><p class="field-value">`)
		p.text(data.ClientName)
		p.raw(`</p></div><div class="right"><p class="field-label">ID / Cédula</p><p class="field-value">`)
		p.text(data.ClientID)
		p.raw(`</p></div></div>`)

		p.raw(`<div class="section-title">Detalle de Materiales</div>`)
		p.raw(`<table><thead><tr><th>Descripción del Producto</th><th class="center">Cant.</th>` +
			`<th class="right">P. Unit</th><th class="right">Subtotal</th></tr></thead><tbody>`)
		if len(data.Rows) == 0 {
			p.raw(`<tr><td colspan="4" class="center">No hay materiales cargados</td></tr>`)
		}
		for _, r := range data.Rows {
			p.raw(`<tr><td class="item-name"><strong>`)
			p.text(r.Name)
			p.raw(`</strong></td><td class="center">`)
			p.text(r.Qty)
			p.raw(`</td><td class="right">`)
			p.text(r.Price)
			p.raw(`</td><td class="right bold">`)
			p.text(r.Subtotal)
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table>`)

		p.raw(`<div class="section-title">Mano de Obra</div>`)
		p.raw(`<table><thead><tr><th>Concepto</th><th class="center">Medición (m2)</th>` +
			`<th class="right">Costo x m2</th><th class="right">Total MO</th></tr></thead><tbody>`)
		p.raw(`<tr><td class="bold">SERVICIOS PROFESIONALES DE CONSTRUCCIÓN</td><td class="center">`)
		p.text(data.LaborArea)
		p.raw(`</td><td class="right">`)
		p.text(data.LaborRate)
		p.raw(`</td><td class="right bold">`)
		p.text(data.LaborTotal)
		p.raw(`</td></tr></tbody></table>`)

		p.raw(`<div class="total-section"><div class="total-line"><span>Resumen Materiales</span><span>`)
		p.text(data.MaterialsTotal)
		p.raw(`</span></div><div class="total-line"><span>Resumen Mano de Obra</span><span>`)
		p.text(data.LaborTotal)
		p.raw(`</span></div><div class="total-line grand-total"><span>TOTAL A PAGAR</span><span>`)
		p.text(data.GrandTotal)
		p.raw(`</span></div><div class="total-line converted"><span>TOTAL EN BOLÍVARES (Tasa: `)
		p.text(data.ExchangeRate)
		p.raw(`)</span><span>`)
		p.text(data.ConvertedTotal)
		p.raw(`</span></div></div>`)

		p.raw(`</div><div class="no-print-area">` +
			`<button class="btn-imprimir" onclick="window.print()">📥 DESCARGAR PRESUPUESTO (PDF)</button>` +
			`</div></body></html>`)

		return p.err
	})
}

// docWriter accumulates writes and keeps the first error, so the component
// body stays free of per-write error plumbing.
type docWriter struct {
	w   io.Writer
	err error
}

func (p *docWriter) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *docWriter) text(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprint(p.w, templ.EscapeString(s))
}

const documentStyles = `
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; padding: 40px; color: #1e293b; max-width: 850px; margin: auto; background-color: #f1f5f9; }
.sheet { background: white; padding: 50px; border-radius: 20px; box-shadow: 0 10px 25px rgba(0,0,0,0.1); }
.header { display: flex; justify-content: space-between; align-items: center; border-bottom: 4px solid #2563eb; padding-bottom: 20px; margin-bottom: 30px; }
.logo { max-width: 180px; max-height: 90px; object-fit: contain; }
.empresa-info { text-align: right; }
h1 { margin: 0; color: #1e40af; font-size: 24px; text-transform: uppercase; font-weight: 900; }
.doc-label { margin: 5px 0 0 0; color: #64748b; font-weight: bold; }
.doc-ref { margin: 3px 0 0 0; color: #94a3b8; font-size: 11px; }
.cliente-box { background: #f8fafc; padding: 20px; border-radius: 15px; margin-bottom: 30px; border: 1px solid #e2e8f0; display: grid; grid-template-columns: 1fr 1fr; }
.field-label { margin: 0; font-size: 10px; color: #64748b; font-weight: bold; text-transform: uppercase; }
.field-value { margin: 5px 0 0 0; font-weight: bold; font-size: 16px; }
table { width: 100%; border-collapse: collapse; margin-top: 10px; }
th { background-color: #334155; color: white; padding: 12px; text-align: left; font-size: 11px; text-transform: uppercase; letter-spacing: 1px; }
td { border-bottom: 1px solid #e2e8f0; padding: 12px; font-size: 13px; }
.item-name { font-size: 12px; }
.center { text-align: center; }
.right { text-align: right; }
.bold { font-weight: bold; }
.section-title { background: #2563eb; color: white; padding: 8px 15px; border-radius: 8px; font-size: 12px; font-weight: bold; display: inline-block; margin-top: 20px; text-transform: uppercase; }
.total-section { margin-top: 40px; background: #1e293b; color: white; padding: 30px; border-radius: 20px; }
.total-line { display: flex; justify-content: space-between; font-size: 14px; margin-bottom: 10px; opacity: 0.9; }
.grand-total { font-size: 28px; font-weight: 900; color: #60a5fa; border-top: 1px solid #475569; padding-top: 15px; margin-top: 15px; }
.converted { font-size: 16px; color: #fbbf24; font-weight: bold; }
.no-print-area { text-align: center; margin-top: 40px; }
.btn-imprimir { background-color: #2563eb; color: white; padding: 20px 40px; font-size: 16px; border: none; border-radius: 15px; cursor: pointer; font-weight: bold; box-shadow: 0 10px 15px -3px rgba(37, 99, 235, 0.4); }
@media print {
  body { background: white; padding: 0; }
  .sheet { box-shadow: none; padding: 20px; }
  .no-print-area { display: none !important; }
}
`
