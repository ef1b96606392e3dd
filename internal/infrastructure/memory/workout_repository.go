package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
	"github.com/oksasatya/go-fitness-tracker/internal/domain/repository"
)

// WorkoutRepository keeps workout trees in memory. Create swaps the whole
// tree in under the lock, so readers never see a half-built workout.
type WorkoutRepository struct {
	mu             sync.RWMutex
	nextWorkoutID  int64
	nextExerciseID int64
	nextSetID      int64
	workouts       map[int64]entity.Workout
	now            func() time.Time
}

func NewWorkoutRepository() *WorkoutRepository {
	return &WorkoutRepository{
		workouts: make(map[int64]entity.Workout),
		now:      time.Now,
	}
}

func (r *WorkoutRepository) Create(ctx context.Context, w *entity.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextWorkoutID++
	w.ID = r.nextWorkoutID
	if w.Date.IsZero() {
		w.Date = r.now().UTC()
	}
	if w.Exercises == nil {
		w.Exercises = []entity.Exercise{}
	}
	for i := range w.Exercises {
		ex := &w.Exercises[i]
		r.nextExerciseID++
		ex.ID = r.nextExerciseID
		ex.WorkoutID = w.ID
		if ex.Sets == nil {
			ex.Sets = []entity.Set{}
		}
		for j := range ex.Sets {
			r.nextSetID++
			ex.Sets[j].ID = r.nextSetID
			ex.Sets[j].ExerciseID = ex.ID
		}
	}
	r.workouts[w.ID] = clone(*w)
	return nil
}

func (r *WorkoutRepository) GetByID(ctx context.Context, id int64) (*entity.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := clone(w)
	return &out, nil
}

func (r *WorkoutRepository) ListByOwner(ctx context.Context, userID int64, page repository.Page) ([]entity.Workout, error) {
	return r.list(page, func(w entity.Workout) bool { return w.UserID == userID }), nil
}

func (r *WorkoutRepository) ListPublic(ctx context.Context, page repository.Page) ([]entity.Workout, error) {
	return r.list(page, func(w entity.Workout) bool { return w.IsPublic }), nil
}

func (r *WorkoutRepository) list(page repository.Page, keep func(entity.Workout) bool) []entity.Workout {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.workouts))
	for id, w := range r.workouts {
		if keep(w) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []entity.Workout{}
	if page.Skip >= len(ids) {
		return out
	}
	ids = ids[page.Skip:]
	if len(ids) > page.Limit {
		ids = ids[:page.Limit]
	}
	for _, id := range ids {
		out = append(out, clone(r.workouts[id]))
	}
	return out
}

func clone(w entity.Workout) entity.Workout {
	exercises := make([]entity.Exercise, len(w.Exercises))
	for i, ex := range w.Exercises {
		ex.Sets = append([]entity.Set{}, ex.Sets...)
		exercises[i] = ex
	}
	w.Exercises = exercises
	return w
}
