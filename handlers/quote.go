package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"presupro/config"
	"presupro/services"
)

// HandleQuoteGenerate handles POST /quotes. It validates the payload,
// best-effort decrements stock and appends a history snapshot, then
// renders the document. `?format=html` returns the printable markup
// directly; the default PDF path falls back to markup when PDF generation
// fails, so the caller always gets a printable result.
func HandleQuoteGenerate(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return handleQuoteGenerate(app, cfg, func(format string) services.Renderer {
		return pickRenderer(format, cfg)
	})
}

func handleQuoteGenerate(app *pocketbase.PocketBase, cfg *config.Config, pick func(format string) services.Renderer) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		req, err := services.DecodeQuoteRequest(e.Request.Body)
		if err != nil {
			if errors.Is(err, services.ErrEmptyRequest) {
				return e.JSON(http.StatusBadRequest, map[string]string{"error": "empty or invalid quote payload"})
			}
			log.Printf("quote: failed to read payload: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "could not read quote payload"})
		}

		now := time.Now()
		userID := GetUserID(e.Request)

		fallbackName, fallbackLogo := companyDefaults(app, userID, cfg)
		req.ApplyCompanyDefaults(fallbackName, fallbackLogo)

		if userID != "" {
			req.Reference = services.GenerateQuoteNumber(app, userID, now)

			services.DecrementStock(app, userID, req.Items)

			if err := services.AppendHistory(app, userID, req.Reference, req); err != nil {
				log.Printf("quote: history append failed, continuing: %v", err)
			}
		} else {
			req.Reference = services.AnonymousQuoteNumber(now)
		}

		renderer := pick(e.Request.URL.Query().Get("format"))

		doc, err := renderer.Render(req)
		if err != nil {
			log.Printf("quote: render failed: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to render quote"})
		}

		e.Response.Header().Set("Content-Type", doc.ContentType)
		if doc.ContentType == "application/pdf" {
			e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
		}
		e.Response.Write(doc.Body)
		return nil
	}
}

// pickRenderer selects the document pipeline. PDF is the default and is
// always wrapped with the HTML fallback; plain HTML has nothing to fall
// back to.
func pickRenderer(format string, cfg *config.Config) services.Renderer {
	if format == "html" {
		return services.HTMLRenderer{}
	}
	return services.FallbackRenderer{
		Primary:  services.PDFRenderer{LogoTimeout: cfg.LogoTimeout},
		Fallback: services.HTMLRenderer{},
	}
}
