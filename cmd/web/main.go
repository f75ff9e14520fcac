// cmd/web/main.go
//
// Plume – HTTP entry point.
//
// Boot order
// ----------
//
//  1. Load env vars (server-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load config; resolve vault: secrets when VAULT_ADDR is set.
//
//  4. Open the global control-plane DB and log active-blog count.
//
//  5. Build the tenant cache (lazy-loads each blog on first hit) and
//     initialise the optional GeoIP reader.
//
//  6. Assemble the middleware chain: security headers → request timer →
//     request-info enrichment → session viewer → host resolution; mount
//     the blog routes behind it and /metrics beside it.
//
//  7. Serve with hardened timeouts, optionally behind ForceHTTPS.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plumeblog/plume/internal/analytics"
	"github.com/plumeblog/plume/internal/config"
	"github.com/plumeblog/plume/internal/database"
	"github.com/plumeblog/plume/internal/logger"
	"github.com/plumeblog/plume/internal/middleware"
	"github.com/plumeblog/plume/internal/requestinfo"
	"github.com/plumeblog/plume/internal/resolve"
	"github.com/plumeblog/plume/internal/server"
	"github.com/plumeblog/plume/internal/tenant"
	"github.com/plumeblog/plume/internal/vault"
	"github.com/plumeblog/plume/internal/viewer"
	"github.com/plumeblog/plume/internal/web"
)

const serverEnvPath = "/usr/local/etc/plume/global.env"

// loadEnv prefers the server-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	sugar, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	ctx := context.Background()

	//
	// ── 1.  Config (+ optional Vault secrets) ──────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalw("load config", "err", err)
	}
	if os.Getenv("VAULT_ADDR") != "" {
		vc, err := vault.New(ctx, sugar.Infof)
		if err != nil {
			sugar.Fatalw("vault client", "err", err)
		}
		if err := config.ResolveSecrets(ctx, vc); err != nil {
			sugar.Fatalw("resolve secrets", "err", err)
		}
		cfg = config.Get()
	}

	canonical, ok := resolve.ParseCanonical(cfg.Site.CanonicalHost)
	if !ok {
		sugar.Fatalw("bad canonical host", "host", cfg.Site.CanonicalHost)
	}

	//
	// ── 2.  Global DB connect ──────────────────────────────────────────
	//
	sugar.Info("connecting to global DB …")
	globalDB, err := database.Open(cfg.Database.DSN())
	if err != nil {
		sugar.Fatalw("connect global DB", "err", err)
	}
	defer globalDB.Close()
	sugar.Info("global DB online")

	// Log active-blog count as an early sanity check.
	var active int
	_ = globalDB.Get(&active,
		`SELECT COUNT(*) FROM user WHERE deleted_at IS NULL`)
	sugar.Infof("%d active blog(s) found", active)

	//
	// ── 3.  Tenant cache + GeoIP ───────────────────────────────────────
	//
	cache := tenant.New(globalDB, tenant.IdleTTL, tenant.MaxEntries)

	if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
		// Country stamping is optional; analytics degrade to blank codes.
		sugar.Warnw("geoip init failed", "path", cfg.Geo.DBPath, "err", err)
	}

	//
	// ── 4.  Router assembly ────────────────────────────────────────────
	//
	handlers := &web.Handlers{
		DB:                globalDB,
		Rec:               &analytics.Recorder{DB: globalDB},
		Canonical:         canonical,
		SnapshotRetention: cfg.Content.SnapshotRetention,
	}

	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Use(middleware.Timer)
	r.Use(requestinfo.Enrich)
	r.Use(viewer.Authenticate(tenant.Repo{DB: globalDB}))

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(resolve.Middleware(cache, canonical))
		r.Mount("/", handlers.Routes())
	})

	var root http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		root = middleware.ForceHTTPS(root)
	}

	//
	// ── 5.  Serve ──────────────────────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, root)
	sugar.Infow("listening", "addr", cfg.HTTP.ListenAddr, "canonical_host", canonical.Host)
	if err := srv.ListenAndServe(); err != nil {
		sugar.Fatalw("http server", "err", err)
	}
}
