package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gridironlabs/field-report/internal/api"
	"github.com/gridironlabs/field-report/internal/providers"
	"github.com/gridironlabs/field-report/internal/render"
	"github.com/gridironlabs/field-report/internal/services"
	"github.com/gridironlabs/field-report/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	logger := logrus.New()
	if cfg.IsDevelopment() {
		logger.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	// Missing keys are a runtime failure path, not a crash: requests will
	// surface the standard form error messages.
	if cfg.CFBDAPIKey == "" {
		logger.Warn("CFBD_API_KEY is not set; report requests will fail")
	}
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; narrative requests will fail")
	}

	// Initialize the provider client and services
	cfbdClient := providers.NewCFBDClient(cfg.CFBDAPIKey, cfg.ExternalAPITimeout, cfg.CFBDRateLimit, logger)
	selector := services.NewSelectorService(cfbdClient, logger)
	enricher := services.NewEnricherService(cfbdClient, cfg.EnrichWorkers, logger)
	renderer := render.NewPNGRenderer(cfg.FieldImagePath, cfg.FieldPlotPath, logger)
	reports := services.NewReportService(cfbdClient, selector, enricher, renderer, logger)
	narrative := services.NewNarrativeService(cfg, logger)
	budget := services.NewBudget(cfg.BudgetLimit)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.LoadHTMLGlob("web/templates/*")

	api.SetupRoutes(router, cfbdClient, reports, narrative, budget, cfg, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Starting field-report server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
