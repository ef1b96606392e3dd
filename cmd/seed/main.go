package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-fitness-tracker/config"
	"github.com/oksasatya/go-fitness-tracker/internal/application"
	pginfra "github.com/oksasatya/go-fitness-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-fitness-tracker/internal/seed"
	"github.com/oksasatya/go-fitness-tracker/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
		MaxConnIdleTime: cfg.DBMaxConnIdle,
	})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	s := &seed.Seeder{
		Users:    pginfra.NewUserRepository(pool),
		Workouts: application.NewWorkoutService(pginfra.NewWorkoutRepository(pool), nil, logger),
		Hasher:   helpers.NewPasswordHasher(cfg.BcryptCost),
		Logger:   logger,
	}
	done, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	if done {
		fmt.Printf("seeded demo users (password %q)\n", seed.DemoPassword)
	}
}
