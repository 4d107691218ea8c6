package bootstrap

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/changhyeonkim/gym-member-api/internal/config"
	sharedError "github.com/changhyeonkim/gym-member-api/internal/shared/error"
	"github.com/changhyeonkim/gym-member-api/internal/shared/metrics"
	"github.com/changhyeonkim/gym-member-api/internal/shared/middleware"
	"github.com/gin-gonic/gin"
)

// Bootstrap builds the gin engine and its global middleware chain.
type Bootstrap struct {
	cfg     *config.Config
	metrics *metrics.Metrics
}

// NewBootstrap creates a bootstrap instance. m may be nil when metrics are disabled.
func NewBootstrap(cfg *config.Config, m *metrics.Metrics) *Bootstrap {
	return &Bootstrap{
		cfg:     cfg,
		metrics: m,
	}
}

// SetupEngine creates a gin engine with recovery, request id, CORS, request logging,
// timeout and metrics middleware, in that order.
func (b *Bootstrap) SetupEngine() *gin.Engine {
	if b.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// request logging goes through slog
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	engine.Use(gin.CustomRecovery(b.recoveryHandler))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(b.cfg.CORS))
	engine.Use(middleware.LoggerMiddleware())
	engine.Use(middleware.Timeout(b.cfg.Server.RequestTimeout))
	engine.Use(b.metrics.Middleware())

	return engine
}

// recoveryHandler logs the panic and answers with the shared internal error body.
func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered any) {
	slog.Error("Panic Recovered",
		"error", recovered,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.GetRequestID(c),
	)

	c.AbortWithStatusJSON(http.StatusInternalServerError, sharedError.InternalServerError)
}
