package services

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"presupro/templates"
)

const maxLogoBytes = 4 << 20

// PDFRenderer produces a paginated A4 quote document with maroto/v2.
// Remote logos are fetched with a bounded timeout; a logo that fails to
// load or decode is skipped, never fatal.
type PDFRenderer struct {
	LogoTimeout time.Duration
}

func (r PDFRenderer) Render(req *QuoteRequest) (*Document, error) {
	data := BuildQuoteDocumentData(req, time.Now())

	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, data, r.loadLogo(req.Company.Logo))
	addClientBlock(m, data)
	addMaterialsTable(m, data)
	addLaborTable(m, data)
	addTotals(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}

	return &Document{
		ContentType: "application/pdf",
		Filename:    documentFilename(req.Reference, "pdf"),
		Body:        doc.GetBytes(),
	}, nil
}

// logoImage is a decoded logo ready for embedding.
type logoImage struct {
	bytes []byte
	ext   extension.Type
}

// loadLogo resolves a logo reference into embeddable image bytes. Data
// URIs decode locally; http(s) URLs are fetched within LogoTimeout. Any
// failure returns nil and the document renders without a logo.
func (r PDFRenderer) loadLogo(ref string) *logoImage {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	if strings.HasPrefix(ref, "data:") {
		return decodeDataURI(ref)
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		timeout := r.LogoTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client := &http.Client{Timeout: timeout}
		resp, err := client.Get(ref)
		if err != nil {
			log.Printf("render_pdf: logo fetch failed, skipping logo: %v", err)
			return nil
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			log.Printf("render_pdf: logo fetch returned %d, skipping logo", resp.StatusCode)
			return nil
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
		if err != nil {
			log.Printf("render_pdf: logo read failed, skipping logo: %v", err)
			return nil
		}
		ext, ok := imageExtension(resp.Header.Get("Content-Type"))
		if !ok {
			log.Printf("render_pdf: unsupported logo content type %q, skipping logo", resp.Header.Get("Content-Type"))
			return nil
		}
		return &logoImage{bytes: body, ext: ext}
	}

	log.Printf("render_pdf: unsupported logo reference, skipping logo")
	return nil
}

// decodeDataURI parses a base64 data URI like data:image/png;base64,....
func decodeDataURI(uri string) *logoImage {
	meta, encoded, found := strings.Cut(uri, ",")
	if !found || !strings.Contains(meta, ";base64") {
		log.Printf("render_pdf: malformed logo data URI, skipping logo")
		return nil
	}
	mediaType := strings.TrimPrefix(strings.SplitN(meta, ";", 2)[0], "data:")
	ext, ok := imageExtension(mediaType)
	if !ok {
		log.Printf("render_pdf: unsupported logo media type %q, skipping logo", mediaType)
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		log.Printf("render_pdf: logo base64 decode failed, skipping logo: %v", err)
		return nil
	}
	return &logoImage{bytes: decoded, ext: ext}
}

func imageExtension(mediaType string) (extension.Type, bool) {
	switch {
	case strings.Contains(mediaType, "png"):
		return extension.Png, true
	case strings.Contains(mediaType, "jpeg"), strings.Contains(mediaType, "jpg"):
		return extension.Jpg, true
	default:
		return "", false
	}
}

// addQuoteHeader adds the logo, company name and document label.
func addQuoteHeader(m core.Maroto, data templates.QuoteDocumentData, logo *logoImage) {
	logoCol := col.New(4)
	if logo != nil {
		logoCol = col.New(4).Add(
			image.NewFromBytes(logo.bytes, logo.ext, props.Rect{
				Left:    0,
				Top:     1,
				Percent: 90,
			}),
		)
	}

	m.AddRows(
		row.New(16).Add(
			logoCol,
			col.New(8).Add(
				text.New(data.CompanyName, props.Text{
					Size:  15,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 30, Green: 64, Blue: 175},
				}),
				text.New("DOCUMENTO DE PRESUPUESTO", props.Text{
					Top:   9,
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 100, Green: 116, Blue: 139},
				}),
			),
		),
	)

	if data.Reference != "" {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("N° %s | %s", data.Reference, data.Date), props.Text{
						Size:  8,
						Align: align.Right,
						Color: &props.Color{Red: 100, Green: 100, Blue: 100},
					}),
				),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addClientBlock adds the client name and identifier.
func addClientBlock(m core.Maroto, data templates.QuoteDocumentData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 116, Blue: 139},
	}
	rightLabelStyle := labelStyle
	rightLabelStyle.Align = align.Right

	m.AddRows(
		row.New(5).Add(
			col.New(6).Add(text.New("CLIENTE", labelStyle)),
			col.New(6).Add(text.New("ID / CÉDULA", rightLabelStyle)),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(data.ClientName, props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
			col.New(6).Add(text.New(data.ClientID, props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
		row.New(4),
	)
}

var tableHeaderBg = props.Color{Red: 51, Green: 65, Blue: 85}

func tableHeaderRow(first, second, third, fourth string) core.Row {
	headerStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	centerStyle := headerStyle
	centerStyle.Align = align.Center
	rightStyle := headerStyle
	rightStyle.Align = align.Right

	return row.New(8).WithStyle(&props.Cell{BackgroundColor: &tableHeaderBg}).Add(
		col.New(6).Add(text.New(first, headerStyle)),
		col.New(2).Add(text.New(second, centerStyle)),
		col.New(2).Add(text.New(third, rightStyle)),
		col.New(2).Add(text.New(fourth, rightStyle)),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: &props.Color{Red: 37, Green: 99, Blue: 235},
			}),
		),
	)
}

// addMaterialsTable adds one row per line item, or the explicit empty-state
// placeholder when there are no materials.
func addMaterialsTable(m core.Maroto, data templates.QuoteDocumentData) {
	m.AddRows(
		sectionTitleRow("DETALLE DE MATERIALES"),
		tableHeaderRow("Descripción del Producto", "Cant.", "P. Unit", "Subtotal"),
	)

	if len(data.Rows) == 0 {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(
					text.New("No hay materiales cargados", props.Text{
						Size:  8,
						Align: align.Center,
						Color: &props.Color{Red: 100, Green: 100, Blue: 100},
					}),
				),
			),
		)
	}

	for _, r := range data.Rows {
		m.AddRows(
			row.New(6).Add(
				col.New(6).Add(text.New(r.Name, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left})),
				col.New(2).Add(text.New(r.Qty, props.Text{Size: 8, Align: align.Center})),
				col.New(2).Add(text.New(r.Price, props.Text{Size: 8, Align: align.Right})),
				col.New(2).Add(text.New(r.Subtotal, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right})),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addLaborTable adds the single synthesized labor line.
func addLaborTable(m core.Maroto, data templates.QuoteDocumentData) {
	m.AddRows(
		sectionTitleRow("MANO DE OBRA"),
		tableHeaderRow("Concepto", "Medición (m2)", "Costo x m2", "Total MO"),
		row.New(6).Add(
			col.New(6).Add(text.New("SERVICIOS PROFESIONALES DE CONSTRUCCIÓN", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left})),
			col.New(2).Add(text.New(data.LaborArea, props.Text{Size: 8, Align: align.Center})),
			col.New(2).Add(text.New(data.LaborRate, props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(data.LaborTotal, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right})),
		),
		row.New(6),
	)
}

// addTotals adds the summary block: materials, labor, grand total and the
// converted total with the applied exchange rate.
func addTotals(m core.Maroto, data templates.QuoteDocumentData) {
	lineStyle := props.Text{Size: 9, Align: align.Right}
	labelStyle := props.Text{Size: 9, Align: align.Left, Color: &props.Color{Red: 100, Green: 100, Blue: 100}}

	m.AddRows(
		row.New(6).Add(
			col.New(8).Add(text.New("Resumen Materiales", labelStyle)),
			col.New(4).Add(text.New(data.MaterialsTotal, lineStyle)),
		),
		row.New(6).Add(
			col.New(8).Add(text.New("Resumen Mano de Obra", labelStyle)),
			col.New(4).Add(text.New(data.LaborTotal, lineStyle)),
		),
		row.New(10).Add(
			col.New(8).Add(text.New("TOTAL A PAGAR", props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
			col.New(4).Add(text.New(data.GrandTotal, props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &props.Color{Red: 37, Green: 99, Blue: 235},
			})),
		),
		row.New(7).Add(
			col.New(8).Add(text.New(fmt.Sprintf("TOTAL EN BOLÍVARES (Tasa: %s)", data.ExchangeRate), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: &props.Color{Red: 180, Green: 130, Blue: 20},
			})),
			col.New(4).Add(text.New(data.ConvertedTotal, props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &props.Color{Red: 180, Green: 130, Blue: 20},
			})),
		),
	)
}
