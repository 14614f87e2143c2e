package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/distrocart/backend/api/routes"
	cartsvc "github.com/distrocart/backend/internal/cart"
	"github.com/distrocart/backend/internal/catalog"
	"github.com/distrocart/backend/internal/optimizer"
	"github.com/distrocart/backend/pkg/cache"
	"github.com/distrocart/backend/pkg/config"
	"github.com/distrocart/backend/pkg/db"
	"github.com/distrocart/backend/pkg/logger"
	"github.com/distrocart/backend/pkg/migrate"
	"github.com/distrocart/backend/pkg/redis"
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, dbClient, logg); err != nil {
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

	store, err := cache.NewRedisStore(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cache store", err)
		os.Exit(1)
	}

	cartRepo := cartsvc.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())

	cartService, err := cartsvc.NewService(cartRepo, catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	finder, err := optimizer.NewFinder(optimizer.NewCatalogCandidates(catalogRepo), store, cfg.Optimizer.AlternativesTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create alternatives finder", err)
		os.Exit(1)
	}

	optimizerService, err := optimizer.NewService(optimizer.Params{
		Weights:          optimizer.NewWeightRepository(dbClient.DB()),
		Sessions:         optimizer.NewSessionRepository(dbClient.DB()),
		Carts:            cartRepo,
		Finder:           finder,
		Tx:               dbClient,
		Log:              logg,
		AlgorithmVersion: cfg.Optimizer.AlgorithmVersion,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create optimizer service", err)
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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, cartService, optimizerService),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
