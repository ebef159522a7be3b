package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// BreakerStater reports the state of the upstream circuit breaker.
type BreakerStater interface {
	BreakerState() gobreaker.State
}

// HealthHandler serves the health endpoint.
type HealthHandler struct {
	provider BreakerStater
	logger   *logrus.Logger
	started  time.Time
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(provider BreakerStater, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		provider: provider,
		logger:   logger,
		started:  time.Now(),
	}
}

// GetHealth reports service liveness and the CFBD circuit state.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "field-report",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.started).String(),
		"checks": gin.H{
			"cfbd_circuit": h.provider.BreakerState().String(),
		},
	})
}
