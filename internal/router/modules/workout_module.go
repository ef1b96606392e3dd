package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-fitness-tracker/internal/interface/http"
	"github.com/oksasatya/go-fitness-tracker/internal/interface/middleware"
)

// WorkoutModule wires the workout endpoints, all behind bearer auth:
// POST /workouts/, GET /workouts/, GET /workouts/public,
// GET /workouts/public/search, GET /workouts/stats, GET /workouts/:id
type WorkoutModule struct {
	Handler  *handlers.WorkoutHandler
	Resolver middleware.TokenResolver
	RDB      *redis.Client
}

func NewWorkoutModule(h *handlers.WorkoutHandler, resolver middleware.TokenResolver, rdb *redis.Client, limit bool) *WorkoutModule {
	if !limit {
		rdb = nil
	}
	return &WorkoutModule{Handler: h, Resolver: resolver, RDB: rdb}
}

func (m *WorkoutModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/workouts")
	auth.Use(middleware.Auth(m.Resolver))
	auth.Use(middleware.RateLimit(m.RDB, middleware.Limit{Scope: "workouts", Max: 120, Window: time.Minute, Key: middleware.KeyByUserID()}))
	{
		// both spellings, so clients need no redirect
		auth.POST("", m.Handler.Create)
		auth.POST("/", m.Handler.Create)
		auth.GET("", m.Handler.ListMine)
		auth.GET("/", m.Handler.ListMine)
		auth.GET("/public", m.Handler.ListPublic)
		auth.GET("/public/search", m.Handler.Search)
		auth.GET("/stats", m.Handler.Stats)
		auth.GET("/:id", m.Handler.Get)
	}
}
