package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-fitness-tracker/config"
	"github.com/oksasatya/go-fitness-tracker/internal/container"
	pginfra "github.com/oksasatya/go-fitness-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-fitness-tracker/internal/infrastructure/search"
	"github.com/oksasatya/go-fitness-tracker/internal/router"
	"github.com/oksasatya/go-fitness-tracker/internal/seed"
	"github.com/oksasatya/go-fitness-tracker/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	c := &container.Container{
		Config: cfg,
		Logger: logger,
		Tokens: helpers.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL),
		Hasher: helpers.NewPasswordHasher(cfg.BcryptCost),
	}

	switch cfg.Store {
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		c.UseMemory()
	default:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLife,
			MaxConnIdleTime: cfg.DBMaxConnIdle,
		})
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
		c.UsePostgres(pool)
	}

	// Redis backs the rate limiter; without it the limiter is a no-op.
	if cfg.RateLimitEnabled {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable; rate limiting disabled")
		} else {
			c.Redis = rdb
			defer func() { _ = rdb.Close() }()
		}
	}

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, cfg.AppName)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; welcome emails disabled")
		} else {
			c.RabbitPub = pub
			defer pub.Close()
		}
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(ctx, helpers.ESOptions{
			Addrs:    addrs,
			Username: cfg.ElasticsearchUser,
			Password: cfg.ElasticsearchPass,
		})
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable; public search disabled")
		} else if err := search.NewWorkoutIndex(es, cfg.ESWorkoutsIndex, logger).EnsureIndex(ctx); err != nil {
			logger.WithError(err).Warn("could not prepare search index; public search disabled")
		} else {
			c.ES = es
		}
	}

	if cfg.SeedDB {
		s := &seed.Seeder{Users: c.Users, Workouts: c.WorkoutService(), Hasher: c.Hasher, Logger: logger}
		if _, err := s.Run(ctx); err != nil {
			logger.WithError(err).Warn("could not seed database")
		}
	}

	r := router.NewEngine(c)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
