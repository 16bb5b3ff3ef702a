package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/swaggo/swag"

	"parkly/docs"

	"parkly/internal/auth"
	"parkly/internal/config"
	"parkly/internal/events"
	"parkly/internal/handler"
	"parkly/internal/metrics"
	"parkly/internal/repository"
	"parkly/internal/router"
	"parkly/internal/service"
	"parkly/internal/storage"
)

// @title Parking Reservation API
// @version 1.0
// @description Per-session parking slot booking: register a driver, book visitor slots, confirm arrival, cancel.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	zones, err := config.LoadZones(cfg.ZonesFile)
	if err != nil {
		slog.Error("Failed to load zone configuration", "path", cfg.ZonesFile, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close store", "error", err)
		}
	}()
	slog.Info("Store opened", "backend", cfg.StoreBackend)

	registry := prom.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(registry)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			slog.Error("Failed to start event publisher", "error", err)
			os.Exit(1)
		}
		publisher = natsPublisher
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Warn("Failed to close event publisher", "error", err)
		}
	}()

	parkingRepo := repository.NewParkingRepository(store)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL)
	parkingService := service.NewParkingService(parkingRepo, zones, recorder, publisher)

	sessionHandler := handler.NewSessionHandler(parkingService, jwtService)
	slotHandler := handler.NewSlotHandler(parkingService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, jwtService, registry, sessionHandler, slotHandler)

	slog.Info("Swagger documentation available", "url", configureSwagger(docs.SwaggerInfo, cfg))

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// configureSwagger points the served document at SWAGGER_HOST, which may carry
// a scheme, and returns the UI URL.
func configureSwagger(info *swag.Spec, cfg *config.Config) string {
	scheme, host := "http", "localhost:"+cfg.ServerPort
	if cfg.SwaggerHost != "" {
		host = cfg.SwaggerHost
		if rest, ok := strings.CutPrefix(host, "https://"); ok {
			scheme, host = "https", rest
		} else if rest, ok := strings.CutPrefix(host, "http://"); ok {
			host = rest
		}
		host = strings.TrimSuffix(host, "/")
		info.Host = host
		info.Schemes = []string{scheme}
	}
	return scheme + "://" + host + "/swagger/index.html"
}
