package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/skipool/skipool/internal/config"
	dbRedis "github.com/skipool/skipool/internal/db/redis"
	logpkg "github.com/skipool/skipool/internal/logger"
	"github.com/skipool/skipool/internal/metrics"
	bookingrepo "github.com/skipool/skipool/internal/repository/booking"
	resortrepo "github.com/skipool/skipool/internal/repository/resort"
	riderepo "github.com/skipool/skipool/internal/repository/ride"
	chiTransport "github.com/skipool/skipool/internal/transport/chi"
	bookinguc "github.com/skipool/skipool/internal/usecase/booking"
	healthuc "github.com/skipool/skipool/internal/usecase/health"
	resortuc "github.com/skipool/skipool/internal/usecase/resort"
	rideuc "github.com/skipool/skipool/internal/usecase/ride"
	searchuc "github.com/skipool/skipool/internal/usecase/search"
	"github.com/skipool/skipool/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting skipool API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Explicit registration, no init().
	metrics.Register()

	resortRepo := resortrepo.New(store)
	rideRepo := riderepo.New(store)

	searchSvc := searchuc.New(resortRepo, rideRepo).
		WithRidesPerResort(cfg.Search.RidesPerResort).
		WithConcurrency(cfg.Search.EnrichConcurrency)
	resortSvc := resortuc.New(resortRepo)
	// The ride board reads resorts straight from the repository so that
	// publishing against a hidden resort reports it as inactive.
	rideSvc := rideuc.New(rideRepo, resortRepo)
	bookingSvc := bookinguc.New(bookingrepo.New(store), rideRepo)
	healthSvc := healthuc.New(store)

	server := chiTransport.NewServer(searchSvc, resortSvc, rideSvc, healthSvc).
		WithBookings(bookingSvc).
		WithDefaultThreshold(cfg.Search.DefaultThreshold)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       cfg.HTTP.ReadTimeout(),
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout(),
		WriteTimeout:      cfg.HTTP.WriteTimeout(),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
