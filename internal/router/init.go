package router

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-fitness-tracker/internal/container"
	handlers "github.com/oksasatya/go-fitness-tracker/internal/interface/http"
	"github.com/oksasatya/go-fitness-tracker/internal/router/modules"
)

// InitModules wires every feature module from c and adds it to the registry.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	userSvc := c.UserService()
	workoutSvc := c.WorkoutService()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, c.Logger), c.Redis, c.Config.RateLimitEnabled))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(), userSvc))
	r.Add(modules.NewWorkoutModule(handlers.NewWorkoutHandler(workoutSvc, c.Logger), userSvc, c.Redis, c.Config.RateLimitEnabled))
	r.Add(modules.NewDebugModule(handlers.NewSystemHandler(c.Config.StaticDir, dbPinger(c.PGPool)), c.Redis, c.Config.MetricsEnabled))
	r.Add(modules.NewWebModule(handlers.NewSystemHandler(c.Config.StaticDir, nil)))
}

func dbPinger(pool *pgxpool.Pool) handlers.Pinger {
	if pool == nil {
		return nil
	}
	return pool
}
