package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/venuehq/venuehq-backend/api/routes"
	"github.com/venuehq/venuehq-backend/internal/allocation"
	"github.com/venuehq/venuehq-backend/internal/audit"
	"github.com/venuehq/venuehq-backend/internal/events"
	"github.com/venuehq/venuehq-backend/internal/inventory"
	"github.com/venuehq/venuehq-backend/internal/packages"
	"github.com/venuehq/venuehq-backend/internal/venues"
	"github.com/venuehq/venuehq-backend/pkg/config"
	"github.com/venuehq/venuehq-backend/pkg/db"
	"github.com/venuehq/venuehq-backend/pkg/logger"
	"github.com/venuehq/venuehq-backend/pkg/metrics"
	"github.com/venuehq/venuehq-backend/pkg/migrate"
	"github.com/venuehq/venuehq-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	allocMetrics := metrics.NewAllocationMetrics(registry)

	gormDB := dbClient.DB()

	venueRepo := venues.NewRepository(gormDB)
	venueService, err := venues.NewService(venueRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create venue service", err)
		os.Exit(1)
	}

	resolver, err := venues.NewResolver(venueRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create venue resolver", err)
		os.Exit(1)
	}

	inventoryRepo := inventory.NewRepository(gormDB)
	inventoryService, err := inventory.NewService(inventoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	packageRepo := packages.NewRepository(gormDB)
	packageService, err := packages.NewService(packageRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create package service", err)
		os.Exit(1)
	}

	allocationRepo := allocation.NewRepository(gormDB)
	engine, err := allocation.NewEngine(packageRepo, resolver, inventoryRepo, allocationRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create allocation engine", err)
		os.Exit(1)
	}

	auditRecorder, err := audit.NewRecorder(audit.NewRepository(gormDB), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create audit recorder", err)
		os.Exit(1)
	}

	eventRepo := events.NewRepository(gormDB)
	eventService, err := events.NewService(eventRepo, engine, allocationRepo, venueRepo, packageRepo, auditRecorder, allocMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create event service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			venueService,
			inventoryService,
			packageService,
			eventService,
		),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
