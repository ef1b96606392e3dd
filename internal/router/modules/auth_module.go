package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-fitness-tracker/internal/interface/http"
	"github.com/oksasatya/go-fitness-tracker/internal/interface/middleware"
)

// AuthModule serves the public credential endpoints:
// POST /signup, POST /login
type AuthModule struct {
	Handler *handlers.AuthHandler
	RDB     *redis.Client
}

// NewAuthModule wires the handler; rdb may be nil, which disables limiting.
func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client, limit bool) *AuthModule {
	if !limit {
		rdb = nil
	}
	return &AuthModule{Handler: h, RDB: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// 10 req/min per IP and route
	signupLimiter := middleware.RateLimit(m.RDB, middleware.Limit{Scope: "signup", Max: 10, Window: time.Minute, Key: middleware.KeyByIPAndPath()})
	loginLimiter := middleware.RateLimit(m.RDB, middleware.Limit{Scope: "login", Max: 10, Window: time.Minute, Key: middleware.KeyByIPAndPath()})

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)
}
