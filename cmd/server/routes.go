// Package main provides the Mountaineers scraping API server entry point.
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alpental/mountaineers-go/internal/api"
	"github.com/alpental/mountaineers-go/internal/buildinfo"
	"github.com/alpental/mountaineers-go/internal/config"
	"github.com/alpental/mountaineers-go/internal/scraper"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, handler *api.Handler, client *scraper.Client, registry *prometheus.Registry, cfg *config.Config) {
	// Root endpoint - service identity
	rootHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "mountaineers-go",
			"version": buildinfo.Version,
			"commit":  buildinfo.Commit,
		})
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness Probe - only that the process is running, never dependencies
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness Probe - checks the portal is reachable
	readyHandler := func(c *gin.Context) {
		checkCtx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		portalAvailable := false
		req, _ := http.NewRequestWithContext(checkCtx, http.MethodHead, client.BaseURL(), http.NoBody)
		if resp, err := http.DefaultClient.Do(req); err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode < 500 {
				portalAvailable = true
			}
		}

		if !portalAvailable {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"portal": false,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":        "ready",
			"portal":        true,
			"authenticated": client.HasCredentials(),
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// API surface
	handler.Register(router)

	// Prometheus metrics endpoint, behind Basic Auth when a password is set
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		router.GET("/metrics", gin.BasicAuth(gin.Accounts{cfg.MetricsUsername: cfg.MetricsPassword}), metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}
