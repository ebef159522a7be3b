package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gridironlabs/field-report/internal/api/handlers"
	"github.com/gridironlabs/field-report/internal/providers"
	"github.com/gridironlabs/field-report/internal/services"
	"github.com/gridironlabs/field-report/pkg/config"
)

// SetupRoutes wires handlers onto the router.
func SetupRoutes(router *gin.Engine, provider *providers.CFBDClient, reports *services.ReportService, narrative *services.NarrativeService, budget *services.Budget, cfg *config.Config, logger *logrus.Logger) {
	reportHandler := handlers.NewReportHandler(reports, narrative, budget, cfg.FieldPlotPath, logger)
	healthHandler := handlers.NewHealthHandler(provider, logger)

	router.GET("/", reportHandler.ShowForm)
	router.POST("/", reportHandler.CreateReport)
	router.GET("/field-plot", reportHandler.FieldPlot)

	router.GET("/health", healthHandler.GetHealth)
	router.HEAD("/health", healthHandler.GetHealth)
}
