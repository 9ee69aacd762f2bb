package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "car-rental-backend/internal/api/http"
	"car-rental-backend/internal/config"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/migrations"
	"car-rental-backend/internal/repository/postgres"
	"car-rental-backend/internal/service"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting car rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	if err := run(cfg); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.QueryTimeout())
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		db.Close()
		return err
	}
	logger.Info("Database connection established")

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(cfg.GetDatabaseConnectionString()); err != nil {
			db.Close()
			return err
		}
	}

	// Initialize Repositories
	store := postgres.NewStore(db, postgres.WithQueryTimeout(cfg.Database.QueryTimeout()))
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close database", "error", err)
		}
	}()

	// Initialize Services
	handler := httpapi.NewRouter(httpapi.Services{
		Brands:      service.NewBrandService(store.BrandRepository),
		CarFeatures: service.NewCarFeatureService(store.CarFeatureRepository),
		Cars:        service.NewCarService(store.CarRepository),
		Users:       service.NewUserService(store.UserRepository),
		Rentals:     service.NewRentalService(store, store.RentalRepository),
		Health:      store,
	}, httpapi.RouterOptions{
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server", "timeout", cfg.Server.ShutdownTimeout())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
