// cmd/web/main.go
//
// Indie Bookshop Directory – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (conf/.env via the config loader, plain .env fallback).
//
//  2. Load and validate configuration (YAML + INDIE_ env overlay).
//
//  3. Start the daily rotating logger (tees to console in a TTY).
//
//  4. Open the MySQL pool and warm the in-memory bookshop collection,
//     logging the active-shop count as an early sanity check.
//
//  5. Open the optional GeoLite2 database for region hints.
//
//  6. Build the chi router: request-info enrichment, /metrics, the
//     directory handlers, then wrap with canonical-host and HTTPS
//     redirect middleware so every request lands on one origin.
//
//  7. Serve with hardened timeouts until the process is signalled.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/indiebookshop/directory/internal/bookshop"
	"github.com/indiebookshop/directory/internal/config"
	"github.com/indiebookshop/directory/internal/database"
	"github.com/indiebookshop/directory/internal/handlers"
	"github.com/indiebookshop/directory/internal/logger"
	"github.com/indiebookshop/directory/internal/middleware"
	"github.com/indiebookshop/directory/internal/requestinfo"
	"github.com/indiebookshop/directory/internal/server"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() {
	// Dev convenience; conf/.env is handled inside config.Load.
	_ = godotenv.Load()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	logOut.Infow("config online",
		"listen_addr", cfg.HTTP.ListenAddr,
		"base_url", cfg.Site.BaseURL,
		"canonical_host", cfg.HTTP.CanonicalHost,
	)

	//
	// ── 1.  Database and shop collection ───────────────────────────────
	//
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		logOut.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	shops := bookshop.NewCollection(db, cfg.Cache.ShopTTL)
	active, err := shops.Warm(context.Background())
	if err != nil {
		logOut.Fatalf("warm bookshop collection: %v", err)
	}
	logOut.Infow("bookshop collection online", "shops", active)

	//
	// ── 2.  Optional GeoIP ─────────────────────────────────────────────
	//
	if cfg.GeoIP.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
			logOut.Warnw("geoip disabled", "path", cfg.GeoIP.DBPath, "err", err)
		}
	}

	//
	// ── 3.  Router: enrichment → metrics → directory handlers ─────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Use(requestinfo.Enrich)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	handlers.New(cfg, shops).Routes(r)

	//
	// ── 4.  Canonical-host and HTTPS enforcement wrap the whole tree ──
	//
	root := middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS,
		middleware.CanonicalHost(cfg.HTTP.CanonicalHost, r))

	srv := server.New(cfg.HTTP.ListenAddr, root)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logOut.Fatalf("http server: %v", err)
	}
}
