package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
	"github.com/oksasatya/go-fitness-tracker/internal/domain/repository"
)

type WorkoutRepository struct {
	pool *pgxpool.Pool
}

func NewWorkoutRepository(pool *pgxpool.Pool) *WorkoutRepository {
	return &WorkoutRepository{pool: pool}
}

// Create inserts the workout, then its exercises, then their sets inside one
// transaction. Nothing is visible to other sessions until commit.
func (r *WorkoutRepository) Create(ctx context.Context, w *entity.Workout) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var date *time.Time
	if !w.Date.IsZero() {
		date = &w.Date
	}
	if err = tx.QueryRow(ctx, `
		INSERT INTO workouts (user_id, name, is_public, performed_at)
		VALUES ($1, $2, $3, COALESCE($4::timestamptz, now()))
		RETURNING id, performed_at
	`, w.UserID, w.Name, w.IsPublic, date).Scan(&w.ID, &w.Date); err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}

	if w.Exercises == nil {
		w.Exercises = []entity.Exercise{}
	}
	for i := range w.Exercises {
		ex := &w.Exercises[i]
		ex.WorkoutID = w.ID
		if err = tx.QueryRow(ctx, `
			INSERT INTO exercises (workout_id, name)
			VALUES ($1, $2)
			RETURNING id
		`, w.ID, ex.Name).Scan(&ex.ID); err != nil {
			return fmt.Errorf("insert exercise %d: %w", i, err)
		}
		if ex.Sets == nil {
			ex.Sets = []entity.Set{}
		}
		if len(ex.Sets) == 0 {
			continue
		}

		batch := &pgx.Batch{}
		for _, s := range ex.Sets {
			batch.Queue(`
				INSERT INTO sets (exercise_id, weight, reps)
				VALUES ($1, $2, $3)
				RETURNING id
			`, ex.ID, s.Weight, s.Reps)
		}
		br := tx.SendBatch(ctx, batch)
		for j := range ex.Sets {
			if err = br.QueryRow().Scan(&ex.Sets[j].ID); err != nil {
				_ = br.Close()
				return fmt.Errorf("insert set %d of exercise %d: %w", j, i, err)
			}
			ex.Sets[j].ExerciseID = ex.ID
		}
		if err = br.Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *WorkoutRepository) GetByID(ctx context.Context, id int64) (*entity.Workout, error) {
	out, err := r.query(ctx, `
		SELECT id, user_id, performed_at, name, is_public
		FROM workouts
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, repository.ErrNotFound
	}
	return &out[0], nil
}

func (r *WorkoutRepository) ListByOwner(ctx context.Context, userID int64, page repository.Page) ([]entity.Workout, error) {
	return r.query(ctx, `
		SELECT id, user_id, performed_at, name, is_public
		FROM workouts
		WHERE user_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`, userID, page.Skip, page.Limit)
}

func (r *WorkoutRepository) ListPublic(ctx context.Context, page repository.Page) ([]entity.Workout, error) {
	return r.query(ctx, `
		SELECT id, user_id, performed_at, name, is_public
		FROM workouts
		WHERE is_public
		ORDER BY id
		OFFSET $1 LIMIT $2
	`, page.Skip, page.Limit)
}

// query loads the matching workouts and their whole trees from a single
// snapshot, so a tree is either fully committed or absent.
func (r *WorkoutRepository) query(ctx context.Context, sql string, args ...any) (out []entity.Workout, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Workout, error) {
		var w entity.Workout
		err := row.Scan(&w.ID, &w.UserID, &w.Date, &w.Name, &w.IsPublic)
		w.Exercises = []entity.Exercise{}
		return w, err
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return []entity.Workout{}, nil
	}

	if err := loadTrees(ctx, tx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func loadTrees(ctx context.Context, tx pgx.Tx, workouts []entity.Workout) error {
	workoutIdx := make(map[int64]int, len(workouts))
	ids := make([]int64, 0, len(workouts))
	for i, w := range workouts {
		workoutIdx[w.ID] = i
		ids = append(ids, w.ID)
	}

	rows, err := tx.Query(ctx, `
		SELECT e.id, e.workout_id, e.name, s.id, s.weight, s.reps
		FROM exercises e
		LEFT JOIN sets s ON s.exercise_id = e.id
		WHERE e.workout_id = ANY($1)
		ORDER BY e.id, s.id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	// position of each exercise inside its workout's slice
	exerciseIdx := make(map[int64]int)
	for rows.Next() {
		var (
			ex     entity.Exercise
			setID  *int64
			weight *float64
			reps   *int
		)
		if err := rows.Scan(&ex.ID, &ex.WorkoutID, &ex.Name, &setID, &weight, &reps); err != nil {
			return err
		}
		w := &workouts[workoutIdx[ex.WorkoutID]]
		pos, seen := exerciseIdx[ex.ID]
		if !seen {
			ex.Sets = []entity.Set{}
			w.Exercises = append(w.Exercises, ex)
			pos = len(w.Exercises) - 1
			exerciseIdx[ex.ID] = pos
		}
		if setID != nil {
			w.Exercises[pos].Sets = append(w.Exercises[pos].Sets, entity.Set{
				ID:         *setID,
				ExerciseID: ex.ID,
				Weight:     *weight,
				Reps:       *reps,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return nil
}

var _ repository.WorkoutRepository = (*WorkoutRepository)(nil)
