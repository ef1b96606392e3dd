package repository

import (
	"context"

	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
)

// Page is an offset/limit window. Use NewPage to get clamped values.
type Page struct {
	Skip  int
	Limit int
}

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// NewPage clamps skip and limit: negative skip becomes 0, a non-positive
// limit becomes DefaultLimit and anything above MaxLimit is capped.
func NewPage(skip, limit int) Page {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Skip: skip, Limit: limit}
}

// WorkoutRepository persists the workout aggregate. Every read returns the
// whole tree (exercises and sets), never stubs.
type WorkoutRepository interface {
	// Create writes the workout, its exercises and their sets in one
	// transaction and fills in every generated id plus the workout date.
	// A zero Date means "now" on the database clock.
	Create(ctx context.Context, w *entity.Workout) error
	GetByID(ctx context.Context, id int64) (*entity.Workout, error)
	ListByOwner(ctx context.Context, userID int64, page Page) ([]entity.Workout, error)
	ListPublic(ctx context.Context, page Page) ([]entity.Workout, error)
}
