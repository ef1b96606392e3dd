package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
	"github.com/oksasatya/go-fitness-tracker/internal/domain/policy"
	repo "github.com/oksasatya/go-fitness-tracker/internal/domain/repository"
	"github.com/oksasatya/go-fitness-tracker/internal/domain/stats"
	"github.com/oksasatya/go-fitness-tracker/internal/observability"
)

// WorkoutSearcher is the optional full-text index over public workouts.
type WorkoutSearcher interface {
	IndexWorkout(ctx context.Context, w *entity.Workout) error
	SearchWorkouts(ctx context.Context, q string, size int) ([]int64, error)
}

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

type WorkoutService struct {
	Repo   repo.WorkoutRepository
	Search WorkoutSearcher
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewWorkoutService(workouts repo.WorkoutRepository, search WorkoutSearcher, logger *logrus.Logger) *WorkoutService {
	return &WorkoutService{Repo: workouts, Search: search, Logger: logger, Now: time.Now}
}

type SetInput struct {
	Weight float64
	Reps   int
}

type ExerciseInput struct {
	Name string
	Sets []SetInput
}

type CreateWorkoutInput struct {
	Name      string
	IsPublic  bool
	Exercises []ExerciseInput
	// Date back-dates the workout; zero means now. Only seeding sets it.
	Date time.Time
}

// Create persists the whole workout tree for owner in one unit and returns it
// with every id filled in.
func (s *WorkoutService) Create(ctx context.Context, owner *entity.User, in CreateWorkoutInput) (*entity.Workout, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name", "is required")
	}
	w := &entity.Workout{
		UserID:    owner.ID,
		Name:      in.Name,
		IsPublic:  in.IsPublic,
		Date:      in.Date,
		Exercises: make([]entity.Exercise, 0, len(in.Exercises)),
	}
	for i, ex := range in.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			return nil, invalid(fmt.Sprintf("exercises[%d].name", i), "is required")
		}
		e := entity.Exercise{Name: ex.Name, Sets: make([]entity.Set, 0, len(ex.Sets))}
		for j, st := range ex.Sets {
			if st.Reps < 0 {
				return nil, invalid(fmt.Sprintf("exercises[%d].sets[%d].reps", i, j), "must be 0 or greater")
			}
			if st.Reps > math.MaxInt32 {
				return nil, invalid(fmt.Sprintf("exercises[%d].sets[%d].reps", i, j), fmt.Sprintf("must be at most %d", math.MaxInt32))
			}
			e.Sets = append(e.Sets, entity.Set{Weight: st.Weight, Reps: st.Reps})
		}
		w.Exercises = append(w.Exercises, e)
	}

	if err := s.Repo.Create(ctx, w); err != nil {
		return nil, err
	}
	observability.RecordWorkoutCreated(w.IsPublic)
	s.Logger.WithFields(logrus.Fields{"workout_id": w.ID, "user_id": owner.ID, "public": w.IsPublic}).Info("workout created")

	if w.IsPublic && s.Search != nil {
		if err := s.Search.IndexWorkout(ctx, w); err != nil {
			s.Logger.WithError(err).WithField("workout_id", w.ID).Warn("es index failed")
		}
	}
	return w, nil
}

// Get fetches one workout. Existence is checked before visibility, so a
// private workout of another user yields ErrForbidden, not ErrNotFound.
func (s *WorkoutService) Get(ctx context.Context, viewer *entity.User, id int64) (*entity.Workout, error) {
	w, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !policy.CanView(viewer, w) {
		return nil, ErrForbidden
	}
	return w, nil
}

func (s *WorkoutService) ListMine(ctx context.Context, owner *entity.User, skip, limit int) ([]entity.Workout, error) {
	return s.Repo.ListByOwner(ctx, owner.ID, repo.NewPage(skip, limit))
}

func (s *WorkoutService) ListPublic(ctx context.Context, skip, limit int) ([]entity.Workout, error) {
	return s.Repo.ListPublic(ctx, repo.NewPage(skip, limit))
}

// Stats summarises every workout owned by owner.
func (s *WorkoutService) Stats(ctx context.Context, owner *entity.User) (stats.Summary, error) {
	var all []entity.Workout
	for skip := 0; ; skip += repo.MaxLimit {
		batch, err := s.Repo.ListByOwner(ctx, owner.ID, repo.NewPage(skip, repo.MaxLimit))
		if err != nil {
			return stats.Summary{}, err
		}
		all = append(all, batch...)
		if len(batch) < repo.MaxLimit {
			break
		}
	}
	return stats.Compute(all, s.Now()), nil
}

// SearchPublic looks q up in the search index and loads the hits from the
// store. Hits that vanished or are no longer public are skipped.
func (s *WorkoutService) SearchPublic(ctx context.Context, q string, limit int) ([]entity.Workout, error) {
	out := []entity.Workout{}
	if s.Search == nil || strings.TrimSpace(q) == "" {
		return out, nil
	}
	if limit <= 0 {
		limit = defaultSearchSize
	}
	if limit > maxSearchSize {
		limit = maxSearchSize
	}
	ids, err := s.Search.SearchWorkouts(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		w, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if w.IsPublic {
			out = append(out, *w)
		}
	}
	return out, nil
}
