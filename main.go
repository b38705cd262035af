package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"presupro/collections"
	"presupro/config"
	"presupro/handlers"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app := pocketbase.New()

	// Create collections and optionally seed demo data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if cfg.SeedDemo {
			if err := collections.SeedDemo(app); err != nil {
				log.Printf("Warning: demo seed failed: %v", err)
			}
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// User scoping applies globally; the identity provider sits in
		// front of this service.
		se.Router.BindFunc(handlers.UserScopeMiddleware())

		// ── Quote generation ─────────────────────────────────────
		se.Router.POST("/quotes", handlers.HandleQuoteGenerate(app, cfg))

		// ── Inventory ────────────────────────────────────────────
		se.Router.GET("/inventory", handlers.HandleInventoryList(app))
		se.Router.POST("/inventory", handlers.HandleInventoryUpsert(app))
		se.Router.GET("/inventory/export", handlers.HandleInventoryExport(app))
		se.Router.DELETE("/inventory/{name}", handlers.HandleInventoryDelete(app))

		// ── Quote history ────────────────────────────────────────
		se.Router.GET("/history", handlers.HandleHistoryList(app))
		se.Router.GET("/history/{id}", handlers.HandleHistoryView(app))

		// ── Company profile ──────────────────────────────────────
		se.Router.GET("/company", handlers.HandleCompanyGet(app, cfg))
		se.Router.POST("/company", handlers.HandleCompanySave(app))

		// Serve the PWA shell (index.html, manifest, service worker)
		// from ./public; offline caching is entirely the client's job.
		se.Router.GET("/{path...}", apis.Static(os.DirFS("./public"), true))

		return se.Next()
	})

	// Free hosting tiers idle out; an optional self-ping keeps the
	// instance warm.
	if cfg.KeepaliveURL != "" {
		app.OnServe().BindFunc(func(se *core.ServeEvent) error {
			app.Cron().MustAdd("keepalive", "*/5 * * * *", func() {
				client := &http.Client{Timeout: 10 * time.Second}
				resp, err := client.Get(cfg.KeepaliveURL)
				if err != nil {
					log.Printf("keepalive: ping failed: %v", err)
					return
				}
				resp.Body.Close()
			})
			return se.Next()
		})
	}

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
