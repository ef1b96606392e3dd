// Package seed loads the demo dataset into an empty store.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-fitness-tracker/internal/application"
	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
	"github.com/oksasatya/go-fitness-tracker/internal/domain/repository"
)

const DemoPassword = "password123"

type demoWorkout struct {
	owner   int // index into demoUsers
	daysAgo int
	input   application.CreateWorkoutInput
}

var demoUsers = []string{"john.doe@example.com", "jane.smith@example.com"}

func sets(weight float64, reps ...int) []application.SetInput {
	out := make([]application.SetInput, 0, len(reps))
	for _, r := range reps {
		out = append(out, application.SetInput{Weight: weight, Reps: r})
	}
	return out
}

func demoWorkouts() []demoWorkout {
	return []demoWorkout{
		{owner: 0, daysAgo: 2, input: application.CreateWorkoutInput{
			Name:     "Leg Day",
			IsPublic: true,
			Exercises: []application.ExerciseInput{
				{Name: "Squat", Sets: sets(100, 5, 5, 5)},
				{Name: "Leg Press", Sets: sets(200, 10, 10)},
			},
		}},
		{owner: 0, daysAgo: 1, input: application.CreateWorkoutInput{
			Name: "Upper Body",
			Exercises: []application.ExerciseInput{
				{Name: "Bench Press", Sets: sets(80, 8, 8, 6)},
			},
		}},
		{owner: 1, daysAgo: 3, input: application.CreateWorkoutInput{
			Name:     "Cardio & Core",
			IsPublic: true,
			Exercises: []application.ExerciseInput{
				// reps hold seconds for the plank
				{Name: "Plank", Sets: sets(0, 60, 60, 45)},
				{Name: "Burpees", Sets: sets(0, 15, 15, 12)},
			},
		}},
	}
}

// Seeder inserts the demo users and workouts.
type Seeder struct {
	Users    repository.UserRepository
	Workouts *application.WorkoutService
	Hasher   application.PasswordHasher
	Logger   *logrus.Logger
	Now      func() time.Time
}

// Run seeds the store unless it already has users. It reports whether
// anything was written.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	n, err := s.Users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		s.Logger.Info("database already contains data, seed skipped")
		return false, nil
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	digest, err := s.Hasher.Hash(DemoPassword)
	if err != nil {
		return false, err
	}
	users := make([]*entity.User, 0, len(demoUsers))
	for _, email := range demoUsers {
		u := &entity.User{Email: email, Password: digest}
		if err := s.Users.Create(ctx, u); err != nil {
			return false, fmt.Errorf("create user %s: %w", email, err)
		}
		users = append(users, u)
	}

	for _, dw := range demoWorkouts() {
		in := dw.input
		in.Date = now().AddDate(0, 0, -dw.daysAgo)
		if _, err := s.Workouts.Create(ctx, users[dw.owner], in); err != nil {
			return false, fmt.Errorf("create workout %q: %w", in.Name, err)
		}
	}
	s.Logger.WithField("users", len(users)).Info("demo data seeded")
	return true, nil
}
