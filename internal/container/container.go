package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-fitness-tracker/config"
	"github.com/oksasatya/go-fitness-tracker/internal/application"
	"github.com/oksasatya/go-fitness-tracker/internal/domain/repository"
	"github.com/oksasatya/go-fitness-tracker/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-fitness-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-fitness-tracker/internal/infrastructure/search"
	"github.com/oksasatya/go-fitness-tracker/pkg/helpers"
)

// Container holds the process-wide components built once at startup. It is
// passed explicitly to the router; nothing reads it through package state.
// Optional clients (Redis, RabbitMQ, Elasticsearch) are nil when disabled.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	RabbitPub *helpers.RabbitPublisher
	ES        *elasticsearch.Client

	Tokens *helpers.TokenService
	Hasher *helpers.PasswordHasher

	Users    repository.UserRepository
	Workouts repository.WorkoutRepository

	userSvc    *application.Service
	workoutSvc *application.WorkoutService
}

// UsePostgres backs the repositories with pool.
func (c *Container) UsePostgres(pool *pgxpool.Pool) {
	c.PGPool = pool
	c.Users = pginfra.NewUserRepository(pool)
	c.Workouts = pginfra.NewWorkoutRepository(pool)
}

// UseMemory backs the repositories with process memory. Data is lost on exit.
func (c *Container) UseMemory() {
	c.Users = memory.NewUserRepository()
	c.Workouts = memory.NewWorkoutRepository()
}

// UserService is built lazily so every caller shares one instance.
func (c *Container) UserService() *application.Service {
	if c.userSvc == nil {
		var mail application.JobPublisher
		if c.RabbitPub != nil && c.Config.MailSendEnabled {
			mail = c.RabbitPub
		}
		c.userSvc = application.NewService(c.Users, c.Hasher, c.Tokens, mail, c.Config.AppName, c.Logger)
	}
	return c.userSvc
}

func (c *Container) WorkoutService() *application.WorkoutService {
	if c.workoutSvc == nil {
		var searcher application.WorkoutSearcher
		if c.ES != nil {
			searcher = search.NewWorkoutIndex(c.ES, c.Config.ESWorkoutsIndex, c.Logger)
		}
		c.workoutSvc = application.NewWorkoutService(c.Workouts, searcher, c.Logger)
	}
	return c.workoutSvc
}
