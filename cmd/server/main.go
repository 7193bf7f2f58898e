package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FAIR-DM/fairdm-sub001/internal/app"
	"github.com/FAIR-DM/fairdm-sub001/internal/audit"
	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
	"github.com/FAIR-DM/fairdm-sub001/internal/config"
	"github.com/FAIR-DM/fairdm-sub001/internal/db"
	mw "github.com/FAIR-DM/fairdm-sub001/internal/middleware"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
	"github.com/FAIR-DM/fairdm-sub001/internal/rbac"
	"github.com/FAIR-DM/fairdm-sub001/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("WARNING: database connection failed: %v (continuing without DB)", err)
	} else {
		defer database.Close()
		if err := database.Migrate(cfg.MigrationsPath); err != nil {
			log.Printf("WARNING: migrations failed: %v", err)
		}
	}
	var pool *pgxpool.Pool
	if database != nil {
		pool = database.Pool
	}

	// Entity catalog and plugin registrations
	catalog, err := app.BuildCatalog()
	if err != nil {
		log.Fatalf("failed to build entity catalog: %v", err)
	}
	registry, err := app.BuildRegistry(catalog)
	if err != nil {
		log.Fatalf("failed to build plugin registry: %v", err)
	}

	// Permission oracle
	var oracle rbac.Oracle
	if pool != nil {
		oracle = rbac.NewEngine(pool)
	} else {
		log.Printf("WARNING: no database, permission checks will deny all non-superusers")
		oracle = &rbac.StaticOracle{}
	}

	// Structural validation gates startup: a registry with errors must
	// not begin serving traffic.
	validateOpts := []plugin.ValidateOption{}
	if lister, ok := oracle.(rbac.PermissionLister); ok && pool != nil {
		validateOpts = append(validateOpts, plugin.WithPermissionLister(lister))
	}
	diags := plugin.Validate(ctx, registry, validateOpts...)
	for _, d := range diags {
		if d.Level == plugin.Warning {
			log.Printf("WARNING: %s", d)
		}
	}
	if plugin.HasErrors(diags) {
		for _, d := range diags {
			if d.Level == plugin.Error {
				log.Printf("ERROR: %s", d)
			}
		}
		log.Fatalf("plugin registry validation failed, refusing to start")
	}

	// Plugin server
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	loader := store.New(pool, catalog.Catalog)
	eval := plugin.NewEvaluator(oracle)
	auditStore := audit.NewStore(pool)
	server := plugin.NewServer(registry, loader, eval,
		plugin.WithBasePath(cfg.BasePath),
		plugin.WithAuditLog(auditStore),
	)

	router := mux.NewRouter()
	router.Use(mw.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	router.Use(mw.PrincipalMiddleware(jwtService))

	plugin.NewHandlers(registry).RegisterRoutes(router)
	audit.NewHandlers(auditStore).RegisterRoutes(router)

	detailRouter := router
	if base := strings.Trim(cfg.BasePath, "/"); base != "" {
		detailRouter = router.PathPrefix("/" + base).Subrouter()
	}
	server.Mount(detailRouter, catalog.All()...)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARNING: shutdown failed: %v", err)
	}
}
