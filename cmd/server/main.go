// Package main provides the Mountaineers scraping API server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/alpental/mountaineers-go/internal/api"
	"github.com/alpental/mountaineers-go/internal/buildinfo"
	"github.com/alpental/mountaineers-go/internal/config"
	"github.com/alpental/mountaineers-go/internal/logger"
	"github.com/alpental/mountaineers-go/internal/metrics"
	"github.com/alpental/mountaineers-go/internal/scraper"
	"github.com/alpental/mountaineers-go/internal/sentry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.WithField("version", buildinfo.Version).Info("Starting Mountaineers API server")

	// Initialize Sentry (no-op without a DSN)
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Version,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error capture disabled")
	} else if sentry.IsEnabled() {
		log.Info("Sentry error capture enabled")
	}

	// Prometheus registry with runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Portal session client
	client, err := scraper.NewClient(scraper.Options{
		BaseURL:    cfg.BaseURL,
		Username:   cfg.Username,
		Password:   cfg.Password,
		Timeout:    cfg.ScraperTimeout,
		MinDelay:   cfg.ScraperMinDelay,
		MaxDelay:   cfg.ScraperMaxDelay,
		MaxRetries: cfg.ScraperMaxRetries,
		RetryDelay: cfg.ScraperRetryDelay,
		Logger:     log,
		Metrics:    m,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create scraper client")
	}
	log.WithField("base_url", cfg.BaseURL).
		WithField("authenticated", client.HasCredentials()).
		Info("Scraper client created")

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log, m))
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	setupRoutes(router, api.NewHandler(client, log), client, registry, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * cfg.ScraperTimeout, // handlers make paced upstream fetches
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	sentry.Flush(2 * time.Second)
	log.Info("Server stopped")
}
