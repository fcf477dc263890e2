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

	"activity-dashboard/internal/api"
	"activity-dashboard/internal/config"
	"activity-dashboard/internal/database"
	"activity-dashboard/internal/logger"
	"activity-dashboard/internal/services"
	"activity-dashboard/internal/validation"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Debug:  cfg.Log.Debug,
		Output: cfg.Log.Output,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.Server.GinMode)

	// Initialize the backend client
	var validator database.PayloadValidator
	if cfg.StatsAPI.Validate {
		v, err := validation.NewValidator()
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to compile payload schemas")
		}
		validator = v
	}

	client, err := database.NewStatsAPIClient(cfg.StatsAPI.URL, cfg.StatsAPI.Timeout, validator)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create stats API client")
	}

	// Telemetry is optional
	var recorder services.BatchRecorder = services.NopRecorder{}
	var telemetry *services.TelemetryService
	if cfg.InfluxDB.Enabled() {
		telemetry, err = services.NewTelemetryService(
			cfg.InfluxDB.URL,
			cfg.InfluxDB.Token,
			cfg.InfluxDB.Org,
			cfg.InfluxDB.Bucket,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Batch telemetry disabled")
		} else {
			recorder = telemetry
		}
	}

	// Initialize services
	statsService := services.NewStatsService(client, cfg.StatsAPI.TrendDays)
	viewService := services.NewViewService(recorder)
	hub := api.NewSnapshotHub()
	viewService.OnSnapshot(hub.Publish)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewService.StartJanitor(ctx, cfg.Server.SessionTTL/2, cfg.Server.SessionTTL)

	// Setup router
	router := api.SetupRoutes(api.NewHandlers(statsService, viewService, hub))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", addr).
			Str("stats_api", client.BaseURL()).
			Bool("telemetry", telemetry != nil).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
	if telemetry != nil {
		telemetry.Close()
	}
}
