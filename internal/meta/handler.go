package meta

import (
	"context"
	"net/http"
	"time"

	"github.com/changhyeonkim/gym-member-api/internal/config"
	"github.com/changhyeonkim/gym-member-api/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 5 * time.Second

// Health status values
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// StoreChecker is the part of the member store the health check needs.
type StoreChecker interface {
	Backend() string
	HealthCheck(ctx context.Context) error
}

// Handler serves operational endpoints.
type Handler struct {
	cfg      *config.Config
	store    StoreChecker
	degraded bool
}

// NewHandler creates a meta handler. degraded reports that store is the in-memory fallback.
func NewHandler(cfg *config.Config, store StoreChecker, degraded bool) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    store,
		degraded: degraded,
	}
}

// Health reports liveness and the member store in use. The fallback store answers 200
// with status "degraded"; a failing store answers 503.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	service := gin.H{
		"name":        h.cfg.App.Name,
		"version":     h.cfg.App.Version,
		"environment": h.cfg.App.Env,
	}

	start := time.Now()
	if err := h.store.HealthCheck(ctx); err != nil {
		logger.FromContext(ctx).Error("Health check 실패", "backend", h.store.Backend(), "error", err)

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  StatusUnhealthy,
			"service": service,
			"checks": gin.H{
				"store": gin.H{
					"status":  "down",
					"backend": h.store.Backend(),
				},
			},
		})
		return
	}

	status := StatusHealthy
	if h.degraded {
		status = StatusDegraded
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"service": service,
		"checks": gin.H{
			"store": gin.H{
				"status":     "up",
				"backend":    h.store.Backend(),
				"fallback":   h.degraded,
				"latency_ms": time.Since(start).Milliseconds(),
			},
		},
	})
}
