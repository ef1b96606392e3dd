package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-fitness-tracker/internal/interface/http"
	"github.com/oksasatya/go-fitness-tracker/internal/interface/middleware"
)

// DebugModule serves operational endpoints: GET /healthz and, when enabled,
// GET /metrics (Prometheus).
type DebugModule struct {
	Handler *handlers.SystemHandler
	RDB     *redis.Client
	Metrics bool
}

func NewDebugModule(h *handlers.SystemHandler, rdb *redis.Client, metrics bool) *DebugModule {
	return &DebugModule{Handler: h, RDB: rdb, Metrics: metrics}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Handler.Health)
	if !m.Metrics {
		return
	}
	// rate-limited per IP; internal scrapers bypass the limiter
	rl := middleware.RateLimit(m.RDB, middleware.Limit{
		Scope:  "metrics",
		Max:    120,
		Window: time.Minute,
		Key:    middleware.KeyByIP(),
		Allow:  middleware.AllowPrivateIP(),
	})
	rg.GET("/metrics", rl, gin.WrapH(promhttp.Handler()))
}
